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

// Package analytics provides functions for sending anonymous usage data about
// the sequence service to Google Analytics.
package analytics

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/googlegenomics/seqget/genomics"
)

const (
	defaultEndpoint  = "https://www.google-analytics.com"
	defaultBatchSize = 20 // The maximum number supported by batch endpoint.

	sequenceCategory = "Sequence"
)

// Hit represents a single analytics event (called a 'hit').
type Hit map[string]string

// Event generates a new event typed hit.  The label may be empty and the
// value may be nil but category and action are required.
func Event(category, action, label string, value *int64) Hit {
	hit := Hit{
		"t":  "event",
		"ec": category,
		"ea": action,
	}
	if label != "" {
		hit["el"] = label
	}
	if value != nil {
		hit["ev"] = strconv.FormatInt(*value, 10)
	}
	return hit
}

// SequenceRequested returns the hit recorded for every incoming sequence
// request.
func SequenceRequested() Hit {
	return Event(sequenceCategory, "Sequence Request Received", "", nil)
}

// SequenceDecoded returns the hit recorded when loc was decoded.  Only the
// chromosome and the number of bases are reported.
func SequenceDecoded(loc genomics.Location) Hit {
	length := int64(loc.Length())
	return Event(sequenceCategory, "Sequence Decoded", loc.Chromosome, &length)
}

// SequenceFailed returns the hit recorded when a request fails with the named
// error.
func SequenceFailed(name string) Hit {
	return Event(sequenceCategory, "Sequence Error", name, nil)
}

// Client defines a type for communicating with Google Analytics.  To create a
// properly initialized Client instance, use NewClient.
type Client struct {
	propertyID string
	clientID   string
	endpoint   string
	batchSize  int
	http       *http.Client
}

// NewClient returns a Client that sends hits to analytics using the provided
// IDs.
func NewClient(propertyID, clientID string) *Client {
	return &Client{propertyID, clientID, defaultEndpoint, defaultBatchSize, http.DefaultClient}
}

// Send attempts to upload the provided hits to the analytics server.
func (c *Client) Send(hits []Hit) error {
	for start := 0; start < len(hits); start += c.batchSize {
		end := start + c.batchSize
		if end > len(hits) {
			end = len(hits)
		}
		if err := c.upload(hits[start:end]); err != nil {
			return fmt.Errorf("uploading hits %d-%d: %v", start, end, err)
		}
	}
	return nil
}

func (c *Client) upload(batch []Hit) error {
	var body bytes.Buffer
	for _, hit := range batch {
		payload := url.Values{
			"v":   []string{"1"},
			"tid": []string{c.propertyID},
			"cid": []string{c.clientID},
		}
		for key, value := range hit {
			payload.Add(key, value)
		}
		body.WriteString(payload.Encode())
		body.WriteByte('\n')
	}

	response, err := c.http.Post(c.endpoint+"/batch", "text/plain", &body)
	if err != nil {
		return fmt.Errorf("sending request: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected response status: %v", response.Status)
	}
	return nil
}

type contextKey int

var (
	hitsKey = contextKey(1)
)

// TrackingHandler returns a new http.Handler which wraps the provided
// handler.  The wrapper prepares the incoming request's context for use with
// the TrackerFromContext function.  When the underlying handler completes,
// the track function is invoked with any hits accumulated during the request.
func TrackingHandler(handler http.Handler, track func([]Hit)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var hits []Hit
		handler.ServeHTTP(w, req.WithContext(withHits(req.Context(), &hits)))
		track(hits)
	})
}

// Middleware is the gin equivalent of TrackingHandler.
func Middleware(track func([]Hit)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var hits []Hit
		c.Request = c.Request.WithContext(withHits(c.Request.Context(), &hits))
		c.Next()
		track(hits)
	}
}

// TrackerFromContext is intended to be used with contexts that are generated
// by TrackingHandler or Middleware.  It returns a function that buffers hits
// to be delivered to the track function provided to them.  For any other
// context the returned function discards its hits.
func TrackerFromContext(ctx context.Context) func(Hit) {
	if hits, ok := ctx.Value(hitsKey).(*[]Hit); ok {
		return func(hit Hit) { *hits = append(*hits, hit) }
	}
	return func(Hit) {}
}

func withHits(ctx context.Context, hits *[]Hit) context.Context {
	return context.WithValue(ctx, hitsKey, hits)
}
