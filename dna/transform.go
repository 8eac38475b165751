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

package dna

import (
	"fmt"
	"strings"
)

// Format selects the case of transformed output.
type Format int

const (
	// FormatNone keeps the case stored in the packed file.
	FormatNone Format = iota
	// FormatLower converts every base to lowercase.
	FormatLower
	// FormatUpper converts every base to uppercase.
	FormatUpper
)

func (f Format) String() string {
	switch f {
	case FormatLower:
		return "lower"
	case FormatUpper:
		return "upper"
	}
	return "none"
}

// ParseFormat returns the Format named by input.  The empty string selects
// FormatNone.
func ParseFormat(input string) (Format, error) {
	switch strings.ToLower(input) {
	case "", "none":
		return FormatNone, nil
	case "lower":
		return FormatLower, nil
	case "upper":
		return FormatUpper, nil
	}
	return FormatNone, fmt.Errorf("unsupported format %q", input)
}

// RepeatMask selects how lowercase (repeat-masked) bases are rewritten.
type RepeatMask int

const (
	// MaskNone leaves repeat-masked bases alone.
	MaskNone RepeatMask = iota
	// MaskLower keeps repeat-masked bases in lowercase.  It performs no
	// rewriting of its own but, like MaskN, disables case formatting.
	MaskLower
	// MaskN replaces every repeat-masked base with N.
	MaskN
)

func (m RepeatMask) String() string {
	switch m {
	case MaskLower:
		return "lower"
	case MaskN:
		return "n"
	}
	return "none"
}

// ParseRepeatMask returns the RepeatMask named by input.  The empty string
// selects MaskNone.
func ParseRepeatMask(input string) (RepeatMask, error) {
	switch strings.ToLower(input) {
	case "", "none":
		return MaskNone, nil
	case "lower":
		return MaskLower, nil
	case "n":
		return MaskN, nil
	}
	return MaskNone, fmt.Errorf("unsupported repeat mask %q", input)
}

// Transform applies, in order, reversal, complementation, repeat masking and
// case formatting to bases in place.  Case formatting only happens when mask
// is MaskNone.
func Transform(bases []byte, reverse, complement bool, format Format, mask RepeatMask) {
	if reverse {
		Reverse(bases)
	}
	if complement {
		Complement(bases)
	}
	if mask == MaskN {
		MaskRepeats(bases)
	}
	if mask != MaskNone {
		return
	}
	switch format {
	case FormatUpper:
		ToUpper(bases)
	case FormatLower:
		ToLower(bases)
	}
}

// Reverse reverses the order of bases in place.
func Reverse(bases []byte) {
	for i, j := 0, len(bases)-1; i < j; i, j = i+1, j-1 {
		bases[i], bases[j] = bases[j], bases[i]
	}
}

// Complement replaces every base with its Watson-Crick complement, keeping
// its case.  Bytes outside the alphabet become Null.
func Complement(bases []byte) {
	for i, b := range bases {
		bases[i] = complements[b]
	}
}

// MaskRepeats replaces every lowercase base with N.
func MaskRepeats(bases []byte) {
	for i, b := range bases {
		if IsLower(b) {
			bases[i] = 'N'
		}
	}
}

// ToUpper converts bases to uppercase.  Bytes outside the alphabet become
// Null.
func ToUpper(bases []byte) {
	for i, b := range bases {
		bases[i] = uppers[b]
	}
}

// ToLower converts bases to lowercase.  Bytes outside the alphabet become
// Null.
func ToLower(bases []byte) {
	for i, b := range bases {
		bases[i] = lowers[b]
	}
}
