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

// Package config holds the settings of the seqget command line tool.  They
// are unmarshalled from Viper, which merges the seqget.yaml config file,
// SEQGET_* environment variables and command line flags.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/googlegenomics/seqget/dna"
	"github.com/googlegenomics/seqget/seq"
	"github.com/spf13/viper"
)

// Config is the root-level settings struct.
type Config struct {
	// directory holding the .dna.4bit files
	Directory string `mapstructure:"directory"`

	// GCS bucket and object prefix holding the .dna.4bit files, used when
	// Directory is empty
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`

	// "default" for application default credentials or "public" for
	// unauthenticated access to the bucket
	Credentials string `mapstructure:"credentials"`

	Reverse    bool   `mapstructure:"reverse"`
	Complement bool   `mapstructure:"complement"`
	Format     string `mapstructure:"format"`
	Mask       string `mapstructure:"mask"`
	Strict     bool   `mapstructure:"strict"`

	// write FASTA records wrapped at LineWidth instead of bare sequence
	FASTA     bool `mapstructure:"fasta"`
	LineWidth int  `mapstructure:"line-width"`
}

// New returns the Config held by v.
func New(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %v", err)
	}
	if c.Directory == "" && c.Bucket == "" {
		return Config{}, errors.New("no directory or bucket specified")
	}
	if c.Directory != "" && c.Bucket != "" {
		return Config{}, errors.New("only one of directory and bucket may be specified")
	}
	return c, nil
}

// Options returns the decoding options selected by c.
func (c Config) Options() (seq.Options, error) {
	format, err := dna.ParseFormat(c.Format)
	if err != nil {
		return seq.Options{}, err
	}
	mask, err := dna.ParseRepeatMask(c.Mask)
	if err != nil {
		return seq.Options{}, err
	}
	return seq.Options{
		Reverse:    c.Reverse,
		Complement: c.Complement,
		Format:     format,
		Mask:       mask,
		Strict:     c.Strict,
	}, nil
}

// Store returns the store holding the packed files.
func (c Config) Store(ctx context.Context) (seq.Store, error) {
	if c.Directory != "" {
		return seq.NewDirectoryStore(c.Directory), nil
	}
	switch c.Credentials {
	case "", "default":
		return seq.NewDefaultGCSStore(ctx, c.Bucket, c.Prefix)
	case "public":
		return seq.NewPublicGCSStore(ctx, c.Bucket, c.Prefix)
	}
	return nil, fmt.Errorf("unsupported credentials %q", c.Credentials)
}
