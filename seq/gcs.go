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
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GCSStore is a Store reading packed files from a Google Cloud Storage
// bucket.
type GCSStore struct {
	bucket *storage.BucketHandle
	prefix string
}

// NewGCSStore returns a Store that resolves names as objects under prefix in
// bucket.
func NewGCSStore(client *storage.Client, bucket, prefix string) *GCSStore {
	return &GCSStore{client.Bucket(bucket), prefix}
}

// NewPublicGCSStore returns a GCSStore that does not use any form of client
// authorization.  It can only read publicly-readable objects.
func NewPublicGCSStore(ctx context.Context, bucket, prefix string) (*GCSStore, error) {
	return newGCSStore(ctx, bucket, prefix, option.WithHTTPClient(http.DefaultClient))
}

// NewDefaultGCSStore returns a GCSStore that uses the application default
// credentials.
func NewDefaultGCSStore(ctx context.Context, bucket, prefix string) (*GCSStore, error) {
	source, err := google.DefaultTokenSource(ctx, storage.ScopeReadOnly)
	if err != nil {
		return nil, fmt.Errorf("finding default credentials: %v", err)
	}
	return newGCSStore(ctx, bucket, prefix, option.WithTokenSource(source))
}

// NewBearerTokenGCSStore returns a GCSStore that authorizes every request
// with the OAuth2 bearer token.
func NewBearerTokenGCSStore(ctx context.Context, token, bucket, prefix string) (*GCSStore, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{
		TokenType:   "Bearer",
		AccessToken: token,
	})
	return newGCSStore(ctx, bucket, prefix, option.WithTokenSource(source))
}

func newGCSStore(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCSStore, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %v", err)
	}
	return NewGCSStore(client, bucket, prefix), nil
}

// Object returns a handle to the object called name under the store prefix.
func (s *GCSStore) Object(name string) Object {
	return gcsObject{s.bucket.Object(path.Join(s.prefix, name))}
}

type gcsObject struct {
	*storage.ObjectHandle
}

func (o gcsObject) NewRangeReader(ctx context.Context, offset, length int64) (io.ReadCloser, error) {
	r, err := o.ObjectHandle.NewRangeReader(ctx, offset, length)
	if err != nil {
		return nil, classifyStorageError(err)
	}
	return r, nil
}

func classifyStorageError(err error) error {
	if err == storage.ErrObjectNotExist || err == storage.ErrBucketNotExist {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
	}
	return err
}
