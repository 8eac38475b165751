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
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirectoryStore is a Store reading packed files from a local directory.
type DirectoryStore struct {
	dir string
}

// NewDirectoryStore returns a Store that resolves names under dir.
func NewDirectoryStore(dir string) DirectoryStore {
	return DirectoryStore{dir}
}

// Object returns a handle to the file called name inside the directory.
func (s DirectoryStore) Object(name string) Object {
	return fileObject{s.dir, name}
}

type fileObject struct {
	dir, name string
}

func (o fileObject) NewRangeReader(_ context.Context, offset, length int64) (io.ReadCloser, error) {
	if o.name != filepath.Base(o.name) {
		return nil, fmt.Errorf("%w: invalid file name %q", ErrNotFound, o.name)
	}

	f, err := os.Open(filepath.Join(o.dir, o.name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
		return nil, err
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("seeking to %d: %v", offset, err)
	}
	return &fileRangeReader{io.LimitReader(f, length), f}, nil
}

// fileRangeReader reads a portion of a file and closes the file with it.
type fileRangeReader struct {
	io.Reader
	file *os.File
}

func (r *fileRangeReader) Close() error {
	return r.file.Close()
}
