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

// Package seqget registers the sequence service for App Engine.  Packed files
// are read from the bucket named by SEQGET_BUCKET, under the optional
// SEQGET_PREFIX, using the bearer token of each request.
package seqget

import (
	"net/http"
	"os"
	"strconv"

	"github.com/googlegenomics/seqget/api"
	"github.com/googlegenomics/seqget/seq"
	"google.golang.org/appengine"
)

const defaultMaxLength = 8 * 1024 * 1024

func init() {
	maxLength := uint64(defaultMaxLength)
	if v := os.Getenv("SEQGET_MAX_LENGTH"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			maxLength = n
		}
	}

	server := api.NewServer(newAppEngineReader(os.Getenv("SEQGET_BUCKET"), os.Getenv("SEQGET_PREFIX")), uint32(maxLength))
	http.Handle("/", server.Handler())
}

func newAppEngineReader(bucket, prefix string) api.NewReaderFunc {
	newReader := api.NewBearerTokenReader(bucket, prefix)
	return func(req *http.Request) (*seq.Reader, error) {
		return newReader(req.WithContext(appengine.NewContext(req)))
	}
}
