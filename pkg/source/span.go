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

// Package source provides byte-span tracking and syntax-error reporting
// shared by the lexer, parser and printer.
package source

// Span represents a half-open contiguous byte range [start,end) of the
// original input. Indices are plain values rather than slice aliases so that
// nodes can be copied freely without retaining the source buffer.
type Span struct {
	// Start is the first byte of this span in the original input.
	Start uint32
	// End is one past the final byte of this span in the original input.
	End uint32
}

// NewSpan constructs a span, checking that start <= end.
func NewSpan(start, end uint32) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end}
}

// Length returns the number of bytes covered by this span.
func (s Span) Length() uint32 {
	return s.End - s.Start
}

// Join returns the smallest span enclosing both s and other.
func (s Span) Join(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}

	end := s.End
	if other.End > end {
		end = other.End
	}

	return Span{start, end}
}
