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

package api

import (
	"net/http"
	"strings"

	"github.com/googlegenomics/seqget/seq"
)

// NewStoreReader returns a NewReaderFunc that serves every request from
// store.
func NewStoreReader(store seq.Store) NewReaderFunc {
	reader := seq.NewReaderFromStore(store)
	return func(*http.Request) (*seq.Reader, error) {
		return reader, nil
	}
}

// NewDirectoryReader returns a NewReaderFunc that serves every request from
// the packed files in directory.
func NewDirectoryReader(directory string) NewReaderFunc {
	return NewStoreReader(seq.NewDirectoryStore(directory))
}

// NewBearerTokenReader returns a NewReaderFunc that reads packed files from
// prefix in the GCS bucket using the OAuth2 bearer token found in each
// request.
func NewBearerTokenReader(bucket, prefix string) NewReaderFunc {
	return func(req *http.Request) (*seq.Reader, error) {
		fields := strings.Split(req.Header.Get("Authorization"), " ")
		if len(fields) != 2 || fields[0] != "Bearer" || fields[1] == "" {
			return nil, errMissingOrInvalidToken
		}

		store, err := seq.NewBearerTokenGCSStore(req.Context(), fields[1], bucket, prefix)
		if err != nil {
			return nil, err
		}
		return seq.NewReaderFromStore(store), nil
	}
}
