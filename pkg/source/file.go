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
package source

import "fmt"

// File represents a named buffer of IR source text being parsed.
type File struct {
	// Filename is a caller-supplied label used only for diagnostics; it may
	// be "" for an unnamed in-memory buffer.
	Filename string
	// Text is the raw input bytes.
	Text []byte
}

// NewFile constructs a new named source buffer.
func NewFile(filename string, text []byte) *File {
	return &File{filename, text}
}

// SyntaxError constructs a syntax error over a given span of this file.
func (f *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{f, span, msg}
}

// SyntaxErrorf is SyntaxError with fmt.Sprintf-style formatting.
func (f *File) SyntaxErrorf(span Span, format string, args ...any) *SyntaxError {
	return f.SyntaxError(span, fmt.Sprintf(format, args...))
}

// Line returns the 1-indexed line and 1-indexed column of a byte offset.
func (f *File) Line(offset uint32) (line, col int) {
	line, col = 1, 1

	for i := uint32(0); i < offset && int(i) < len(f.Text); i++ {
		if f.Text[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return line, col
}

// Snippet returns the textual contents of a span, for inclusion in error
// messages.
func (f *File) Snippet(span Span) string {
	if int(span.End) > len(f.Text) {
		span.End = uint32(len(f.Text))
	}

	if span.Start > span.End {
		return ""
	}

	return string(f.Text[span.Start:span.End])
}
