// Copyright 2017 Google Inc.
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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/googlegenomics/seqget/analytics"
	"github.com/googlegenomics/seqget/internal/packtest"
	"github.com/googlegenomics/seqget/seq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxLength = 1000

var testDir string

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	dir, err := packtest.WriteChromosomes(map[string]string{
		"chr1": "ACGTacgtNnGGCCttaaTC",
		"chr2": "AXGT",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write test data: %v\n", err)
		os.Exit(1)
	}
	testDir = dir
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func setupRouter(newReader NewReaderFunc) *gin.Engine {
	r := gin.New()
	NewServer(newReader, testMaxLength).Export(r)
	return r
}

func testQuery(t *testing.T, router http.Handler, url string, headers map[string]string) *httptest.ResponseRecorder {
	req, err := http.NewRequest("GET", url, nil)
	require.NoError(t, err, "parsing URL %q", url)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type sequenceBody struct {
	Sequence sequenceResponse `json:"sequence"`
}

func TestSequence(t *testing.T) {
	router := setupRouter(NewDirectoryReader(testDir))

	testCases := []struct {
		name, url string
		want      sequenceResponse
	}{
		{"forward", "/sequence/chr1:3-8", sequenceResponse{"chr1:3-8", "chr1", 3, 8, 6, "+", "GTacgt"}},
		{"reversed coordinates", "/sequence/chr1:8-3", sequenceResponse{"chr1:3-8", "chr1", 3, 8, 6, "+", "GTacgt"}},
		{"single base", "/sequence/chr1:2", sequenceResponse{"chr1:2-2", "chr1", 2, 2, 1, "+", "C"}},
		{"reverse complement", "/sequence/chr1:3-8?reverse=true&complement=1", sequenceResponse{"chr1:3-8", "chr1", 3, 8, 6, "-", "acgtAC"}},
		{"upper", "/sequence/chr1:3-8?format=upper", sequenceResponse{"chr1:3-8", "chr1", 3, 8, 6, "+", "GTACGT"}},
		{"mask n", "/sequence/chr1:3-8?mask=n&format=lower", sequenceResponse{"chr1:3-8", "chr1", 3, 8, 6, "+", "GTNNNN"}},
		{"browser coordinates", "/sequence/chr1:1,1-1,2", sequenceResponse{"chr1:11-12", "chr1", 11, 12, 2, "+", "GG"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := testQuery(t, router, tc.url, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var body sequenceBody
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tc.want, body.Sequence)
		})
	}
}

func TestSequence_FASTA(t *testing.T) {
	router := setupRouter(NewDirectoryReader(testDir))
	want := ">chr1:1-4 strand=+ repeatMasking=none\nACGT\n"

	w := testQuery(t, router, "/sequence/chr1:1-4?output=fasta", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, want, w.Body.String())

	w = testQuery(t, router, "/sequence/chr1:1-4", map[string]string{"Accept": "text/plain"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, want, w.Body.String())
}

func TestErrors(t *testing.T) {
	router := setupRouter(NewDirectoryReader(testDir))

	testCases := []struct {
		name, url string
		code      int
		error     string
	}{
		{"bad location", "/sequence/badtoken", http.StatusBadRequest, "InvalidInput"},
		{"bad position", "/sequence/chr1:100000-100t00", http.StatusBadRequest, "InvalidInput"},
		{"bad format", "/sequence/chr1:1-4?format=title", http.StatusBadRequest, "InvalidInput"},
		{"bad mask", "/sequence/chr1:1-4?mask=x", http.StatusBadRequest, "InvalidInput"},
		{"bad reverse", "/sequence/chr1:1-4?reverse=maybe", http.StatusBadRequest, "InvalidInput"},
		{"too long", "/sequence/chr1:1-1001", http.StatusBadRequest, "InvalidRange"},
		{"unknown chromosome", "/sequence/chr9:1-4", http.StatusNotFound, "NotFound"},
		{"past the end", "/sequence/chr1:15-40", http.StatusInternalServerError, "StorageError"},
		{"reserved code", "/sequence/chr2:1-4?strict=true", http.StatusInternalServerError, "CorruptData"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := testQuery(t, router, tc.url, nil)
			assert.Equal(t, tc.code, w.Code)

			body := make(map[string]interface{})
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tc.error, body["error"])
		})
	}
}

func TestReaderErrors(t *testing.T) {
	testCases := []struct {
		name  string
		err   error
		code  int
		error string
	}{
		{"missing token", errMissingOrInvalidToken, http.StatusForbidden, "PermissionDenied"},
		{"permission", fmt.Errorf("%w: no", seq.ErrPermissionDenied), http.StatusForbidden, "PermissionDenied"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "StorageError"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRouter(func(*http.Request) (*seq.Reader, error) { return nil, tc.err })
			w := testQuery(t, router, "/sequence/chr1:1-4", nil)
			assert.Equal(t, tc.code, w.Code)

			body := make(map[string]interface{})
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tc.error, body["error"])
		})
	}
}

func TestBearerTokenReader_MissingToken(t *testing.T) {
	router := setupRouter(NewBearerTokenReader("bucket", "genome"))
	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer "} {
		w := testQuery(t, router, "/sequence/chr1:1-4", map[string]string{"Authorization": header})
		assert.Equal(t, http.StatusForbidden, w.Code, "Authorization: %q", header)
	}
}

func TestHeaders(t *testing.T) {
	router := setupRouter(NewDirectoryReader(testDir))

	w := testQuery(t, router, "/sequence/chr1:1-4", map[string]string{"Origin": "https://example.org"})
	assert.Equal(t, "https://example.org", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	w = testQuery(t, router, "/sequence/chr1:1-4", map[string]string{requestIDHeader: "abc"})
	assert.Equal(t, "abc", w.Header().Get(requestIDHeader))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAnalytics(t *testing.T) {
	var hits []analytics.Hit
	router := gin.New()
	router.Use(analytics.Middleware(func(h []analytics.Hit) { hits = append(hits, h...) }))
	NewServer(NewDirectoryReader(testDir), testMaxLength).Export(router)

	testQuery(t, router, "/sequence/chr1:1-4", nil)
	testQuery(t, router, "/sequence/chr9:1-4", nil)

	require.Len(t, hits, 4)
	assert.Equal(t, analytics.SequenceRequested(), hits[0])
	assert.Equal(t, "Sequence Decoded", hits[1]["ea"])
	assert.Equal(t, "4", hits[1]["ev"])
	assert.Equal(t, analytics.SequenceFailed("NotFound"), hits[3])
}

func TestHandler(t *testing.T) {
	w := testQuery(t, NewServer(NewDirectoryReader(testDir), 0).Handler(), "/sequence/chr1:1-2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
