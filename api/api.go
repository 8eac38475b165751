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

// Package api implements an HTTP service returning sequence decoded from 4-bit
// packed genome files.
//
// Sequence is requested with
//
//	GET /sequence/chr1:100-200?reverse=true&complement=true&format=upper&mask=n
//
// and returned as a JSON object, or as FASTA text when the request carries
// output=fasta or prefers text/plain.  Errors are reported as JSON objects
// with "error" and "message" fields in the style of the htsget protocol.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/googlegenomics/seqget/analytics"
	"github.com/googlegenomics/seqget/dna"
	"github.com/googlegenomics/seqget/seq"
)

const (
	sequencePath = "/sequence/:location"

	requestIDHeader = "X-Request-Id"
)

var errMissingOrInvalidToken = errors.New("missing or invalid token")

// NewReaderFunc is the type of function that constructs the seq.Reader used
// to satisfy the incoming request.
type NewReaderFunc func(*http.Request) (*seq.Reader, error)

// Server provides the sequence service.  Must be created with NewServer.
type Server struct {
	newReader NewReaderFunc
	maxLength uint32
}

// NewServer returns a new Server that calls newReader on each request.
// Requests for more than maxLength bases are rejected; a maxLength of zero
// disables the limit.
func NewServer(newReader NewReaderFunc, maxLength uint32) *Server {
	return &Server{newReader, maxLength}
}

// Export registers the sequence endpoint and its middleware with router.
func (server *Server) Export(router gin.IRoutes) {
	router.Use(forwardOrigin, requestID)
	router.GET(sequencePath, server.serveSequence)
}

// Handler returns a standalone http.Handler serving the sequence endpoint.
func (server *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	server.Export(router)
	return router
}

type sequenceResponse struct {
	Location   string `json:"location"`
	Chromosome string `json:"chromosome"`
	Start      uint32 `json:"start"`
	End        uint32 `json:"end"`
	Length     uint32 `json:"length"`
	Strand     string `json:"strand"`
	Bases      string `json:"bases"`
}

func (server *Server) serveSequence(c *gin.Context) {
	ctx := c.Request.Context()

	track := analytics.TrackerFromContext(ctx)
	track(analytics.SequenceRequested())

	loc, err := seq.ParseLocation(c.Param("location"))
	if err != nil {
		writeError(c, newInvalidInputError("parsing location", err))
		return
	}
	if server.maxLength > 0 && loc.Length() > server.maxLength {
		writeError(c, newInvalidRangeError(fmt.Errorf("%s: %d bases exceeds the limit of %d", loc, loc.Length(), server.maxLength)))
		return
	}

	opts, err := parseOptions(c)
	if err != nil {
		writeError(c, newInvalidInputError("parsing options", err))
		return
	}

	reader, err := server.newReader(c.Request)
	if err != nil {
		writeError(c, newStorageError("creating reader", err))
		return
	}

	sequence, err := reader.Decode(ctx, loc, opts)
	if err != nil {
		err = newDecodeError(err)
		if err, ok := err.(*apiError); ok {
			track(analytics.SequenceFailed(err.name))
		}
		writeError(c, err)
		return
	}
	track(analytics.SequenceDecoded(loc))

	if wantsFASTA(c) {
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.Status(http.StatusOK)
		if err := sequence.WriteFASTA(c.Writer, seq.DefaultLineWidth); err != nil {
			c.Error(fmt.Errorf("writing FASTA: %v", err))
		}
		return
	}

	strand := "+"
	if opts.Reverse && opts.Complement {
		strand = "-"
	}
	c.JSON(http.StatusOK, gin.H{"sequence": sequenceResponse{
		Location:   loc.String(),
		Chromosome: loc.Chromosome,
		Start:      loc.Start,
		End:        loc.End,
		Length:     loc.Length(),
		Strand:     strand,
		Bases:      sequence.Bases,
	}})
}

func parseOptions(c *gin.Context) (seq.Options, error) {
	var (
		opts seq.Options
		err  error
	)
	if opts.Reverse, err = parseBool(c, "reverse"); err != nil {
		return opts, err
	}
	if opts.Complement, err = parseBool(c, "complement"); err != nil {
		return opts, err
	}
	if opts.Strict, err = parseBool(c, "strict"); err != nil {
		return opts, err
	}
	if opts.Format, err = dna.ParseFormat(c.Query("format")); err != nil {
		return opts, err
	}
	if opts.Mask, err = dna.ParseRepeatMask(c.Query("mask")); err != nil {
		return opts, err
	}
	return opts, nil
}

func parseBool(c *gin.Context, name string) (bool, error) {
	value := c.Query(name)
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parsing %s: %v", name, err)
	}
	return b, nil
}

func wantsFASTA(c *gin.Context) bool {
	if output := c.Query("output"); output != "" {
		return strings.EqualFold(output, "fasta")
	}
	accept := c.GetHeader("Accept")
	return strings.HasPrefix(accept, "text/plain") || strings.HasPrefix(accept, "text/x-fasta")
}

// apiError is used to capture errors that have been defined by the service.
type apiError struct {
	name  string
	code  int
	cause error
}

func (err *apiError) Error() string {
	return fmt.Sprintf("%s (%d): %v", err.name, err.code, err.cause)
}

func newAPIError(name string, code int, context string, err error) error {
	return &apiError{name, code, fmt.Errorf("%s: %v", context, err)}
}

func newInvalidInputError(context string, err error) error {
	return newAPIError("InvalidInput", http.StatusBadRequest, context, err)
}

func newInvalidRangeError(err error) error {
	return &apiError{"InvalidRange", http.StatusBadRequest, err}
}

func newPermissionDeniedError(context string, err error) error {
	return newAPIError("PermissionDenied", http.StatusForbidden, context, err)
}

func newNotFoundError(context string, err error) error {
	return newAPIError("NotFound", http.StatusNotFound, context, err)
}

func newStorageError(context string, err error) error {
	switch {
	case err == errMissingOrInvalidToken, errors.Is(err, seq.ErrPermissionDenied):
		return newPermissionDeniedError(context, err)
	case errors.Is(err, seq.ErrNotFound):
		return newNotFoundError(context, err)
	}
	return newAPIError("StorageError", http.StatusInternalServerError, context, err)
}

// newDecodeError converts an error returned by seq.Reader.Decode.
func newDecodeError(err error) error {
	kind, _ := seq.KindOf(err)
	switch kind {
	case seq.LocationError:
		return newInvalidInputError("decoding", err)
	case seq.DatabaseError:
		return newStorageError("reading sequence", err)
	case seq.FormatError:
		return newAPIError("CorruptData", http.StatusInternalServerError, "decoding", err)
	}
	return err
}

// writeError writes either a JSON object or bare HTTP error describing err.
// A JSON object is written only when the error has a name and code defined
// by this package.
func writeError(c *gin.Context, err error) {
	if err, ok := err.(*apiError); ok {
		c.JSON(err.code, gin.H{
			"error":   err.name,
			"message": fmt.Sprintf("%s: %v", http.StatusText(err.code), err.cause),
		})
		return
	}

	c.String(http.StatusInternalServerError, "%s: %v", http.StatusText(http.StatusInternalServerError), err)
}

func forwardOrigin(c *gin.Context) {
	if origin := c.GetHeader("Origin"); origin != "" {
		c.Header("Access-Control-Allow-Origin", origin)
	}
	c.Next()
}

func requestID(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.New().String()
	}
	c.Header(requestIDHeader, id)
	c.Next()
}
