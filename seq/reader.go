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

// Package seq extracts nucleotide sequence from 4-bit packed genome files.
//
// A Reader maps a genomics.Location to a byte range of the packed file of its
// chromosome, reads exactly that range, unpacks it and applies the strand,
// repeat masking and case options requested by the caller.  A Reader holds no
// mutable state and may be shared by concurrent callers; every call opens and
// releases its own file handle.
package seq

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/googlegenomics/seqget/dna"
	"github.com/googlegenomics/seqget/fourbit"
	"github.com/googlegenomics/seqget/genomics"
)

var errReservedCode = errors.New("reserved base code")

// Options controls the post-processing applied by Reader.Decode.
type Options struct {
	// Reverse reverses the order of the decoded bases.
	Reverse bool
	// Complement replaces every base with its complement.  Together with
	// Reverse it yields the sequence of the opposite strand.
	Complement bool
	// Format selects the output case.  It is ignored unless Mask is
	// dna.MaskNone.
	Format dna.Format
	// Mask selects how repeat-masked (lowercase) bases are rewritten.
	Mask dna.RepeatMask
	// Strict makes reserved base codes in the packed file a FormatError
	// instead of decoding them to dna.Null.
	Strict bool
}

// Sequence is the result of a successful Reader.Decode.  The length of Bases
// always equals Location.Length().
type Sequence struct {
	Location genomics.Location
	Options  Options
	Bases    string
}

// Reader decodes sequence from the packed files in a Store.  Must be created
// with NewReader or NewReaderFromStore.
type Reader struct {
	store Store
}

// NewReader returns a Reader for the packed files in directory.
func NewReader(directory string) *Reader {
	return NewReaderFromStore(NewDirectoryStore(directory))
}

// NewReaderFromStore returns a Reader for the packed files in store.
func NewReaderFromStore(store Store) *Reader {
	return &Reader{store}
}

// Decode returns the bases covered by loc after applying opts.  Invalid
// locations fail with a LocationError before any file is opened.  Failing to
// read the packed file is a DatabaseError and is never retried.
func (r *Reader) Decode(ctx context.Context, loc genomics.Location, opts Options) (*Sequence, error) {
	if err := validate(loc); err != nil {
		return nil, newLocationError(err)
	}

	span := fourbit.NewSpan(loc.Start, loc.End)
	name := fourbit.FileName(loc.Chromosome)
	packed, err := r.read(ctx, name, span)
	if err != nil {
		return nil, err
	}

	bases, err := fourbit.Unpack(packed, span)
	if err != nil {
		return nil, newDatabaseError(name, err)
	}
	if opts.Strict {
		if i := bytes.IndexByte(bases, dna.Null); i >= 0 {
			return nil, newFormatError(fmt.Sprintf("%s position %d", name, uint64(loc.Start)+uint64(i)), errReservedCode)
		}
	}

	dna.Transform(bases, opts.Reverse, opts.Complement, opts.Format, opts.Mask)
	if !utf8.Valid(bases) {
		return nil, newFormatError(loc.String(), errors.New("decoded bases are not valid text"))
	}
	return &Sequence{Location: loc, Options: opts, Bases: string(bases)}, nil
}

// read returns the packed bytes of span.  The object is released before read
// returns.
func (r *Reader) read(ctx context.Context, name string, span fourbit.Span) ([]byte, error) {
	data, err := r.store.Object(name).NewRangeReader(ctx, span.Offset(), span.ByteCount())
	if err != nil {
		return nil, newDatabaseError(fmt.Sprintf("opening %s", name), err)
	}
	defer data.Close()

	packed := make([]byte, span.ByteCount())
	if _, err := io.ReadFull(data, packed); err != nil {
		return nil, newDatabaseError(fmt.Sprintf("reading %d bytes of %s at offset %d", len(packed), name, span.Offset()), err)
	}
	return packed, nil
}

func validate(loc genomics.Location) error {
	if _, err := genomics.NewLocation(loc.Chromosome, loc.Start, loc.End); err != nil {
		return err
	}
	if loc.Start < 1 || loc.Start > loc.End {
		return fmt.Errorf("%w: %s is not a normalized range", genomics.ErrInvalidLocation, loc)
	}
	return nil
}
