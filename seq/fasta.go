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
	"fmt"
	"io"
)

// DefaultLineWidth is the FASTA line width used by the seqget tools.
const DefaultLineWidth = 60

// WriteFASTA writes s as a single FASTA record wrapped at lineWidth bases.
// The description line follows the UCSC convention, for example
// ">chr1:100-200 strand=- repeatMasking=n".  A lineWidth <= 0 writes the bases
// on one line.
func (s *Sequence) WriteFASTA(w io.Writer, lineWidth int) error {
	strand := "+"
	if s.Options.Reverse && s.Options.Complement {
		strand = "-"
	}
	if _, err := fmt.Fprintf(w, ">%s strand=%s repeatMasking=%s\n", s.Location, strand, s.Options.Mask); err != nil {
		return err
	}

	bases := s.Bases
	if lineWidth <= 0 {
		lineWidth = len(bases)
	}
	for len(bases) > 0 {
		n := lineWidth
		if n > len(bases) {
			n = len(bases)
		}
		if _, err := fmt.Fprintf(w, "%s\n", bases[:n]); err != nil {
			return err
		}
		bases = bases[n:]
	}
	return nil
}
