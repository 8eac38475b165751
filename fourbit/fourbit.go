// Copyright 2019 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fourbit provides support for reading 4-bit packed genome files.
//
// A packed file holds the sequence of a single chromosome.  The first byte is
// a reserved header; every following byte stores two bases, the base at the
// even 0-based position in its high nibble and the base at the odd position
// in its low nibble.
package fourbit

import (
	"fmt"
	"strings"

	"github.com/googlegenomics/seqget/dna"
)

// HeaderSize is the number of reserved bytes preceding the packed bases.
const HeaderSize = 1

// Suffix is appended to the lower-cased chromosome name to form a file name.
const Suffix = ".dna.4bit"

// FileName returns the name of the packed file holding chromosome.
func FileName(chromosome string) string {
	return strings.ToLower(chromosome) + Suffix
}

// Span stores the 0-based, inclusive positions of a run of bases.
type Span struct {
	First, Last uint64
}

// NewSpan returns the Span covering the 1-based inclusive range start to end.
// It requires 1 <= start <= end.
func NewSpan(start, end uint32) Span {
	return Span{uint64(start) - 1, uint64(end) - 1}
}

// Len returns the number of bases in the span.
func (s Span) Len() int {
	return int(s.Last - s.First + 1)
}

// FirstByte returns the index of the packed byte holding the first base,
// relative to the end of the header.
func (s Span) FirstByte() uint64 {
	return s.First / 2
}

// LastByte returns the index of the packed byte holding the last base,
// relative to the end of the header.
func (s Span) LastByte() uint64 {
	return s.Last / 2
}

// ByteCount returns the number of packed bytes that must be read to decode
// the span.
func (s Span) ByteCount() int64 {
	return int64(s.LastByte() - s.FirstByte() + 1)
}

// Offset returns the absolute file offset of the first packed byte.
func (s Span) Offset() int64 {
	return HeaderSize + int64(s.FirstByte())
}

// String returns a human readable description of the receiver.
func (s Span) String() string {
	return fmt.Sprintf("[%d-%d]", s.First, s.Last)
}

// Unpack decodes the bases of span from packed, which must hold the
// span.ByteCount() bytes starting at span.Offset().  Reserved codes decode to
// dna.Null.
func Unpack(packed []byte, span Span) ([]byte, error) {
	if got, want := int64(len(packed)), span.ByteCount(); got != want {
		return nil, fmt.Errorf("unpacking %s: got %d packed bytes, want %d", span, got, want)
	}

	bases := make([]byte, span.Len())
	first := span.FirstByte()
	for i := range bases {
		pos := span.First + uint64(i)
		b := packed[pos/2-first]
		if pos%2 == 0 {
			b >>= 4
		}
		bases[i] = dna.DecodeNibble(b & 0x0f)
	}
	return bases, nil
}
