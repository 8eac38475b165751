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

// Package genomics contains definitions related to Genomic data.
package genomics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ChromosomeMarker is the token every chromosome name must start with.
const ChromosomeMarker = "chr"

// ErrInvalidLocation is wrapped by every error returned from NewLocation and
// ParseLocation.
var ErrInvalidLocation = errors.New("invalid location")

// Location defines a 1-based, inclusive range of bases on a chromosome.
//
// A Location obtained from NewLocation or ParseLocation always satisfies
// 1 <= Start <= End.
type Location struct {
	Chromosome string
	Start, End uint32
}

// NewLocation returns a Location on chromosome spanning start and end, which
// may be given in either order.  The smaller value becomes the start and is
// clamped to 1.
func NewLocation(chromosome string, start, end uint32) (Location, error) {
	if !hasMarker(chromosome) {
		return Location{}, locationError("chromosome %q does not start with %q", chromosome, ChromosomeMarker)
	}
	if start > end {
		start, end = end, start
	}
	if start < 1 {
		start = 1
	}
	if end < start {
		end = start
	}
	return Location{Chromosome: chromosome, Start: start, End: end}, nil
}

// ParseLocation parses text of the form chr[:position[-position]].  The
// position separator is required; a single position yields a Location of
// length one.  Commas inside positions are ignored so that coordinates copied
// from a genome browser ("chr1:1,000-2,000") are accepted.
func ParseLocation(text string) (Location, error) {
	text = strings.TrimSpace(text)
	i := strings.IndexByte(text, ':')
	if i < 0 {
		return Location{}, locationError("%q has no position", text)
	}
	chromosome, positions := text[:i], text[i+1:]
	if !hasMarker(chromosome) {
		return Location{}, locationError("chromosome %q does not start with %q", chromosome, ChromosomeMarker)
	}

	first, second := positions, positions
	if j := strings.IndexByte(positions, '-'); j >= 0 {
		first, second = positions[:j], positions[j+1:]
	}

	start, err := parsePosition(first)
	if err != nil {
		return Location{}, locationError("parsing start of %q: %v", text, err)
	}
	end, err := parsePosition(second)
	if err != nil {
		return Location{}, locationError("parsing end of %q: %v", text, err)
	}
	return NewLocation(chromosome, start, end)
}

// Length returns the number of bases covered by loc.
func (loc Location) Length() uint32 {
	return loc.End - loc.Start + 1
}

// Mid returns the position halfway between the start and end of loc, rounded
// down.
func (loc Location) Mid() uint32 {
	return uint32((uint64(loc.Start) + uint64(loc.End)) / 2)
}

// String returns a representation of loc that can be parsed with
// ParseLocation.
func (loc Location) String() string {
	return fmt.Sprintf("%s:%d-%d", loc.Chromosome, loc.Start, loc.End)
}

func hasMarker(chromosome string) bool {
	return len(chromosome) > len(ChromosomeMarker) &&
		strings.EqualFold(chromosome[:len(ChromosomeMarker)], ChromosomeMarker)
}

func parsePosition(token string) (uint32, error) {
	n, err := strconv.ParseUint(strings.Replace(token, ",", "", -1), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

func locationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidLocation, fmt.Sprintf(format, args...))
}
