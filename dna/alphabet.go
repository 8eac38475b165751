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

// Package dna provides the nucleotide alphabet used by packed genome files
// and the strand, case and repeat-masking transforms applied to decoded
// sequence.
package dna

// Null is the byte produced for codes and bases outside the alphabet.
const Null = 0

// nibbleBases maps a 4-bit code to its base.  Codes 0 and 11-15 are reserved.
var nibbleBases = [16]byte{
	Null,
	'A', 'C', 'G', 'T',
	'a', 'c', 'g', 't',
	'N', 'n',
	Null, Null, Null, Null, Null,
}

var (
	complements [256]byte
	uppers      [256]byte
	lowers      [256]byte
)

func init() {
	pairs := []struct{ base, complement byte }{
		{'A', 'T'}, {'C', 'G'}, {'G', 'C'}, {'T', 'A'},
		{'a', 't'}, {'c', 'g'}, {'g', 'c'}, {'t', 'a'},
		{'N', 'N'}, {'n', 'n'},
	}
	for _, p := range pairs {
		complements[p.base] = p.complement
	}

	for _, b := range []byte("ACGTN") {
		lower := b + 'a' - 'A'
		uppers[b], uppers[lower] = b, b
		lowers[b], lowers[lower] = lower, lower
	}
}

// DecodeNibble returns the base encoded by the low 4 bits of code, or Null
// for a reserved code.
func DecodeNibble(code byte) byte {
	return nibbleBases[code&0x0f]
}

// ValidNibble reports whether the low 4 bits of code encode a base.
func ValidNibble(code byte) bool {
	return DecodeNibble(code) != Null
}

// IsLower reports whether b is a lowercase (repeat-masked) base.
func IsLower(b byte) bool {
	switch b {
	case 'a', 'c', 'g', 't', 'n':
		return true
	}
	return false
}
