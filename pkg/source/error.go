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

// SyntaxError is the single failure type the parser surfaces (spec.md §7):
// a byte span paired with a message. Sub-kinds (unexpected token, integer
// out of range, malformed hex, ...) are distinguished only by Message, not
// by separate Go types.
type SyntaxError struct {
	file *File
	span Span
	msg  string
}

// File returns the source file this error refers to.
func (e *SyntaxError) File() *File {
	return e.file
}

// Span returns the byte span of the offending token or sub-tree.
func (e *SyntaxError) Span() Span {
	return e.span
}

// Message returns the human-readable error message.
func (e *SyntaxError) Message() string {
	return e.msg
}

// Error implements the error interface, formatting as
// "filename:line:col: message" using the enclosing file's line table, or
// as "line:col: message" when the file has no name.
func (e *SyntaxError) Error() string {
	if e.file == nil {
		return e.msg
	}

	line, col := e.file.Line(e.span.Start)

	if e.file.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.file.Filename, line, col, e.msg)
	}

	return fmt.Sprintf("%d:%d: %s", line, col, e.msg)
}
