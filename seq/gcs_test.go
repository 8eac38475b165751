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
	"io"
	"net/http"
	"testing"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

func TestClassifyStorageError(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		notFound   bool
		permission bool
	}{
		{"object does not exist", storage.ErrObjectNotExist, true, false},
		{"bucket does not exist", storage.ErrBucketNotExist, true, false},
		{"not found", &googleapi.Error{Code: http.StatusNotFound}, true, false},
		{"unauthorized", &googleapi.Error{Code: http.StatusUnauthorized}, false, true},
		{"forbidden", &googleapi.Error{Code: http.StatusForbidden}, false, true},
		{"internal", &googleapi.Error{Code: http.StatusInternalServerError}, false, false},
		{"other", io.ErrUnexpectedEOF, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyStorageError(tc.err)
			if got, want := errors.Is(err, ErrNotFound), tc.notFound; got != want {
				t.Errorf("errors.Is(%v, ErrNotFound): got %v, want %v", err, got, want)
			}
			if got, want := errors.Is(err, ErrPermissionDenied), tc.permission; got != want {
				t.Errorf("errors.Is(%v, ErrPermissionDenied): got %v, want %v", err, got, want)
			}
		})
	}
}
