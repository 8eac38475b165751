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

package seq

import (
	"errors"
	"fmt"

	"github.com/googlegenomics/seqget/genomics"
)

var (
	// ErrNotFound is wrapped by store errors for packed files that do not
	// exist, such as the file of an unknown chromosome.
	ErrNotFound = errors.New("packed file not found")

	// ErrPermissionDenied is wrapped by store errors caused by missing or
	// rejected credentials.
	ErrPermissionDenied = errors.New("permission denied")
)

// Kind classifies the errors returned by this package.
type Kind int

const (
	// DatabaseError reports a failure to open, position or read a packed file.
	DatabaseError Kind = iota + 1
	// LocationError reports malformed or invalid coordinates.
	LocationError
	// FormatError reports decoded data that is not valid sequence text.
	FormatError
)

func (k Kind) String() string {
	switch k {
	case DatabaseError:
		return "DatabaseError"
	case LocationError:
		return "LocationError"
	case FormatError:
		return "FormatError"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the type of every error returned by Reader.Decode and
// ParseLocation.
type Error struct {
	Kind  Kind
	cause error
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s: %v", err.Kind, err.cause)
}

// Unwrap returns the underlying error.
func (err *Error) Unwrap() error {
	return err.cause
}

// KindOf returns the Kind of the first *Error in the chain of err.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// ParseLocation parses text as genomics.ParseLocation does, reporting
// failures as a LocationError.
func ParseLocation(text string) (genomics.Location, error) {
	loc, err := genomics.ParseLocation(text)
	if err != nil {
		return genomics.Location{}, newLocationError(err)
	}
	return loc, nil
}

func newError(kind Kind, context string, err error) error {
	return &Error{kind, fmt.Errorf("%s: %w", context, err)}
}

func newDatabaseError(context string, err error) error {
	return newError(DatabaseError, context, err)
}

func newLocationError(err error) error {
	return &Error{LocationError, err}
}

func newFormatError(context string, err error) error {
	return newError(FormatError, context, err)
}
