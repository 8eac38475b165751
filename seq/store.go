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
	"context"
	"io"
)

// Store provides access to the packed files of a genome.
type Store interface {
	// Object returns a handle to the named packed file.  The file is not
	// opened until a range is read.
	Object(name string) Object
}

// Object is a handle to a single packed file.
type Object interface {
	// NewRangeReader returns a reader for length bytes starting at the
	// absolute offset.  The caller must close the reader.
	NewRangeReader(ctx context.Context, offset, length int64) (io.ReadCloser, error)
}
