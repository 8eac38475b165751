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

// This binary provides a sequence server that backs onto packed genome files
// in a local directory or in GCS.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/googlegenomics/seqget/analytics"
	"github.com/googlegenomics/seqget/api"
	"github.com/googlegenomics/seqget/seq"
	"github.com/pkg/profile"
)

var (
	port      = flag.Int("port", 80, "HTTP service port")
	maxLength = flag.Uint("max_length", 10*1024*1024, "maximum number of bases returned by a single request (0 for no limit)")

	directory = flag.String("directory", "", "directory that contains the .dna.4bit files")
	bucket    = flag.String("bucket", "", "GCS bucket that contains the .dna.4bit files")
	prefix    = flag.String("prefix", "", "object name prefix of the .dna.4bit files inside -bucket")

	secure    = flag.Bool("secure", false, "serve in HTTPS-only mode and forward client bearer tokens to GCS")
	httpsCert = flag.String("https_cert", "", "HTTPS certificate file")
	httpsKey  = flag.String("https_key", "", "HTTPS key file")

	cpuProfile = flag.String("cpuprofile", "", "if set, write a CPU profile into this directory")

	// Enable or disable anonymous usage tracking.
	//
	// If enabled, anonymous information about requests handled by the server is
	// logged to Google via Google Analytics.  Only chromosome names and the
	// number of bases requested are reported.
	trackUsage = flag.Bool("track_usage", false, "anonymous usage tracking")
)

func main() {
	flag.Parse()

	if *secure && (*httpsCert == "" || *httpsKey == "") {
		log.Fatalf("You must specify both -https_cert and -https_key in secure mode.")
	}
	if (*directory == "") == (*bucket == "") {
		log.Fatalf("You must specify exactly one of -directory and -bucket.")
	}
	if *secure && *bucket == "" {
		log.Fatalf("Secure mode requires -bucket.")
	}

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile)).Stop()
	}

	newReader, err := readerFromFlags(context.Background())
	if err != nil {
		log.Fatalf("Failed to create reader: %v", err)
	}

	router := gin.Default()
	if *trackUsage {
		log.Printf("Enabling anonymous usage tracking")

		client := analytics.NewClient("UA-103022118-1", uuid.New().String())
		router.Use(analytics.Middleware(func(hits []analytics.Hit) {
			if err := client.Send(hits); err != nil {
				log.Printf("Failed to send %d hits to analytics: %v", len(hits), err)
			}
		}))
	}
	api.NewServer(newReader, uint32(*maxLength)).Export(router)

	address := fmt.Sprintf(":%d", *port)
	if *secure {
		if err := http.ListenAndServeTLS(address, *httpsCert, *httpsKey, router); err != nil {
			log.Fatalf("HTTPS server returned an error: %v", err)
		}
	} else {
		if err := http.ListenAndServe(address, router); err != nil {
			log.Fatalf("HTTP server returned an error: %v", err)
		}
	}
}

func readerFromFlags(ctx context.Context) (api.NewReaderFunc, error) {
	switch {
	case *directory != "":
		log.Printf("Serving packed files from directory %q", *directory)
		return api.NewDirectoryReader(*directory), nil
	case *secure:
		log.Printf("Serving packed files from gs://%s/%s with client credentials", *bucket, *prefix)
		return api.NewBearerTokenReader(*bucket, *prefix), nil
	}

	store, err := seq.NewPublicGCSStore(ctx, *bucket, *prefix)
	if err != nil {
		return nil, err
	}
	log.Printf("Serving public packed files from gs://%s/%s", *bucket, *prefix)
	return api.NewStoreReader(store), nil
}
