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

// Package packtest builds 4-bit packed genome fixtures for tests.
package packtest

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
)

// Header is the reserved byte written at the start of every fixture.
const Header = 0xa5

var codes = map[byte]byte{
	'A': 1, 'C': 2, 'G': 3, 'T': 4,
	'a': 5, 'c': 6, 'g': 7, 't': 8,
	'N': 9, 'n': 10,
}

// Encode returns the packed representation of sequence, including the
// header byte.  Bytes outside the alphabet are stored as reserved code 0.
func Encode(sequence string) []byte {
	packed := make([]byte, 1+(len(sequence)+1)/2)
	packed[0] = Header
	for i := 0; i < len(sequence); i++ {
		code := codes[sequence[i]]
		if i%2 == 0 {
			code <<= 4
		}
		packed[1+i/2] |= code
	}
	return packed
}

// WriteChromosomes writes one packed file per entry of sequences into a new
// temporary directory and returns its path.  Sequences are keyed by
// chromosome name.
func WriteChromosomes(sequences map[string]string) (string, error) {
	dir, err := ioutil.TempDir("", "packtest")
	if err != nil {
		return "", fmt.Errorf("creating directory: %v", err)
	}
	for name, sequence := range sequences {
		path := filepath.Join(dir, strings.ToLower(name)+".dna.4bit")
		if err := ioutil.WriteFile(path, Encode(sequence), 0644); err != nil {
			return "", fmt.Errorf("writing %s: %v", path, err)
		}
	}
	return dir, nil
}
