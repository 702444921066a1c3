// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package lexer

import (
	"testing"

	"github.com/movelang/moveir/pkg/source"
)

func scanAll(t *testing.T, input string) []Token {
	t.Helper()

	file := source.NewFile("test", []byte(input))
	lx := NewLexer(file)

	var tokens []Token

	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}

		tokens = append(tokens, tok)

		if tok.Kind == EOF {
			return tokens
		}
	}
}

func checkKinds(t *testing.T, input string, want ...Kind) {
	t.Helper()

	tokens := scanAll(t, input)

	if len(tokens) != len(want) {
		t.Fatalf("%q: got %d tokens, want %d (%v)", input, len(tokens), len(want), tokens)
	}

	for i, tok := range tokens {
		if tok.Kind != want[i] {
			t.Errorf("%q: token %d: got kind %d, want %d", input, i, tok.Kind, want[i])
		}
	}
}

func TestLexer_Empty(t *testing.T) {
	checkKinds(t, "", EOF)
}

func TestLexer_Punctuation(t *testing.T) {
	checkKinds(t, "(){};,.:=", LParen, RParen, LBrace, RBrace, Semi, Comma, Dot, Colon, Eq, EOF)
}

func TestLexer_AmpVsAmpMut(t *testing.T) {
	checkKinds(t, "&x", Amp, Ident, EOF)
	checkKinds(t, "&mut x", AmpMut, Ident, EOF)
	checkKinds(t, "&&x", AmpAmp, Ident, EOF)
	// "&mutable" is an identifier, not "&mut" followed by "able".
	checkKinds(t, "&mutable", Amp, Ident, EOF)
}

func TestLexer_ComparisonOperators(t *testing.T) {
	checkKinds(t, "== != < > <= >=", EqEq, Neq, Lt, Gt, Le, Ge, EOF)
}

func TestLexer_Identifier(t *testing.T) {
	tokens := scanAll(t, "move_from2")
	if len(tokens) != 2 || tokens[0].Kind != Ident || tokens[0].Text != "move_from2" {
		t.Fatalf("got %v", tokens)
	}
}

func TestLexer_IntLiteral(t *testing.T) {
	tokens := scanAll(t, "1234")
	if tokens[0].Kind != Int || tokens[0].IntVal != 1234 {
		t.Fatalf("got %v", tokens)
	}
}

func TestLexer_IntOverflow(t *testing.T) {
	file := source.NewFile("test", []byte("99999999999999999999"))
	lx := NewLexer(file)

	if _, err := lx.Next(); err == nil {
		t.Fatalf("expected an overflow error")
	}
}

func TestLexer_AddressPadding(t *testing.T) {
	tokens := scanAll(t, "0x1")
	if tokens[0].Kind != AddressLit {
		t.Fatalf("got %v", tokens)
	}

	for i := 0; i < 31; i++ {
		if tokens[0].Addr[i] != 0 {
			t.Fatalf("expected zero padding, got %v", tokens[0].Addr)
		}
	}

	if tokens[0].Addr[31] != 1 {
		t.Fatalf("expected trailing byte 1, got %v", tokens[0].Addr)
	}
}

func TestLexer_AddressTooLong(t *testing.T) {
	digits := ""
	for i := 0; i < 33*2; i++ {
		digits += "a"
	}

	file := source.NewFile("test", []byte("0x"+digits))
	lx := NewLexer(file)

	if _, err := lx.Next(); err == nil {
		t.Fatalf("expected an address-too-long error")
	}
}

func TestLexer_ByteArray(t *testing.T) {
	tokens := scanAll(t, `b"a1b2"`)
	if tokens[0].Kind != ByteArrayLit {
		t.Fatalf("got %v", tokens)
	}

	want := []byte{0xa1, 0xb2}
	if len(tokens[0].Bytes) != len(want) || tokens[0].Bytes[0] != want[0] || tokens[0].Bytes[1] != want[1] {
		t.Fatalf("got %v, want %v", tokens[0].Bytes, want)
	}
}

func TestLexer_ByteArrayOddLength(t *testing.T) {
	tokens := scanAll(t, `b"1"`)
	if tokens[0].Kind != ByteArrayLit || len(tokens[0].Bytes) != 1 || tokens[0].Bytes[0] != 0x01 {
		t.Fatalf("got %v", tokens)
	}
}

func TestLexer_IdentifierStartingWithB(t *testing.T) {
	// "b" not immediately followed by '"' is a plain identifier.
	checkKinds(t, "bob", Ident, EOF)
}

func TestLexer_NextBracketed(t *testing.T) {
	file := source.NewFile("test", []byte("<balance(x) == 0 && moved>"))
	lx := NewLexer(file)

	tok, err := lx.NextBracketed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tok.Kind != Bracketed || tok.Text != "balance(x) == 0 && moved" {
		t.Fatalf("got %+v", tok)
	}

	eofTok, err := lx.Next()
	if err != nil || eofTok.Kind != EOF {
		t.Fatalf("expected EOF after bracketed body, got %+v, %v", eofTok, err)
	}
}

func TestLexer_NextBracketedRequiresOpenAngle(t *testing.T) {
	file := source.NewFile("test", []byte("nope"))
	lx := NewLexer(file)

	if _, err := lx.NextBracketed(); err == nil {
		t.Fatalf("expected an error")
	}
}
