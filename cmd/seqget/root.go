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

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/googlegenomics/seqget/config"
	"github.com/googlegenomics/seqget/seq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "seqget [flags] <location>...",
	Short: "Extract sequence from 4-bit packed genome files",
	Long: `Extract sequence from 4-bit packed genome files.

Each location has the form chr1:100-200 (1-based, inclusive) or chr1:150 for
a single base.  Settings may also be given in seqget.yaml (searched in the
current directory and $HOME/.seqget) or as SEQGET_* environment variables.`,
	Example: `  seqget -d /data/hg38 chr7:117559590-117559600
  seqget --bucket genomes --prefix hg38 -r -c --fasta chr17:43044295-43125483`,
	Args:    cobra.MinimumNArgs(1),
	Version: "0.1.0",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.New(viper.GetViper())
		if err != nil {
			return err
		}
		return run(context.Background(), c, args, cmd.OutOrStdout())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file (default is ./seqget.yaml)")
	flags.StringP("directory", "d", "", "directory that contains the .dna.4bit files")
	flags.String("bucket", "", "GCS bucket that contains the .dna.4bit files")
	flags.String("prefix", "", "object name prefix inside --bucket")
	flags.String("credentials", "default", "GCS credentials: default or public")
	flags.BoolP("reverse", "r", false, "reverse the sequence")
	flags.BoolP("complement", "c", false, "complement the sequence")
	flags.String("format", "", "output case: none, lower or upper")
	flags.String("mask", "", "repeat masking: none, lower or n")
	flags.Bool("strict", false, "fail on reserved base codes instead of writing NUL bytes")
	flags.Bool("fasta", false, "write FASTA records")
	flags.Int("line-width", seq.DefaultLineWidth, "FASTA line width (0 for a single line)")

	if err := viper.BindPFlags(flags); err != nil {
		log.Fatalf("binding flags: %v", err)
	}
}

// initConfig reads the config file and environment variables, if set.
func initConfig() {
	viper.SetEnvPrefix("seqget")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("seqget")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.seqget")
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			log.Fatalf("reading config: %v", err)
		}
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// run decodes every location in args and writes the results to w.  It stops
// at the first error.
func run(ctx context.Context, c config.Config, args []string, w io.Writer) error {
	opts, err := c.Options()
	if err != nil {
		return err
	}
	store, err := c.Store(ctx)
	if err != nil {
		return err
	}
	reader := seq.NewReaderFromStore(store)

	for _, arg := range args {
		loc, err := seq.ParseLocation(arg)
		if err != nil {
			return err
		}
		sequence, err := reader.Decode(ctx, loc, opts)
		if err != nil {
			return fmt.Errorf("decoding %s: %v", loc, err)
		}

		if c.FASTA {
			err = sequence.WriteFASTA(w, c.LineWidth)
		} else {
			_, err = fmt.Fprintln(w, sequence.Bases)
		}
		if err != nil {
			return fmt.Errorf("writing %s: %v", loc, err)
		}
	}
	return nil
}
