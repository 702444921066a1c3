// Package value implements the narrow value-constructor interface the
// parser uses for hex-encoded literals (spec.md §1: "Hex utilities and
// fixed-width address/byte-array value domains ... the parser consumes them
// through a narrow value-constructor interface"). It is the only place
// outside pkg/lexer that knows how an address or byte-array literal's hex
// body becomes a fixed-width value.
package value

import (
	"encoding/hex"
	"fmt"
)

// AddressLength is the fixed width, in bytes, of an account address
// (spec.md §3: "Address(32-byte)").
const AddressLength = 32

// Address is a 32-byte account address value.
type Address [AddressLength]byte

// Codec decodes the hex bodies of address and byte-array literals into
// fixed-width values. The parser depends only on this interface, never on
// a concrete hex implementation, so that the value domain can be swapped
// out (spec.md §1 lists it as an external collaborator).
type Codec interface {
	// DecodeAddress decodes a big-endian hex string (without a leading
	// "0x"/"0X") into a left-zero-padded 32-byte Address. An input
	// decoding to more than AddressLength bytes is an error.
	DecodeAddress(hexDigits string) (Address, error)
	// DecodeByteArray decodes a hex string into a raw byte slice. An
	// odd-length input is left-padded with a leading '0' nibble before
	// decoding, per spec.md §4.1.
	DecodeByteArray(hexDigits string) ([]byte, error)
}

// HexCodec is the default Codec, implemented directly on the standard
// library's encoding/hex (spec.md §1 explicitly scopes hex utilities out of
// the parser core; this is the narrow default the parser is wired to).
type HexCodec struct{}

// DefaultCodec is the Codec used by pkg/lexer unless a caller substitutes
// another implementation.
var DefaultCodec Codec = HexCodec{}

// DecodeAddress implements Codec.
func (HexCodec) DecodeAddress(hexDigits string) (Address, error) {
	var addr Address

	raw, err := hex.DecodeString(padEven(hexDigits))
	if err != nil {
		return addr, fmt.Errorf("malformed hex: %w", err)
	}

	if len(raw) > AddressLength {
		return addr, fmt.Errorf("address too long: decodes to %d bytes, want at most %d", len(raw), AddressLength)
	}

	// Left-pad with zero bytes to exactly AddressLength (spec.md §4.1).
	copy(addr[AddressLength-len(raw):], raw)

	return addr, nil
}

// DecodeByteArray implements Codec.
func (HexCodec) DecodeByteArray(hexDigits string) ([]byte, error) {
	raw, err := hex.DecodeString(padEven(hexDigits))
	if err != nil {
		return nil, fmt.Errorf("malformed hex: %w", err)
	}

	return raw, nil
}

// padEven prepends a leading '0' nibble to an odd-length hex string, per
// spec.md §4.1 ("hex body even-length; a leading 0 is prepended when odd").
func padEven(s string) string {
	if len(s)%2 != 0 {
		return "0" + s
	}

	return s
}
