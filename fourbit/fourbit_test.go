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

package fourbit

import (
	"testing"

	"github.com/googlegenomics/seqget/internal/packtest"
)

func TestFileName(t *testing.T) {
	testCases := []struct{ chromosome, want string }{
		{"chr1", "chr1.dna.4bit"},
		{"chrX", "chrx.dna.4bit"},
		{"CHRUn_GL000220", "chrun_gl000220.dna.4bit"},
	}
	for _, tc := range testCases {
		if got := FileName(tc.chromosome); got != tc.want {
			t.Errorf("FileName(%q): got %q, want %q", tc.chromosome, got, tc.want)
		}
	}
}

func TestSpan(t *testing.T) {
	testCases := []struct {
		start, end          uint32
		length              int
		firstByte, lastByte uint64
		count, offset       int64
	}{
		{1, 1, 1, 0, 0, 1, 1},
		{1, 2, 2, 0, 0, 1, 1},
		{2, 2, 1, 0, 0, 1, 1},
		{2, 3, 2, 0, 1, 2, 1},
		{3, 4, 2, 1, 1, 1, 2},
		{3, 6, 4, 1, 2, 2, 2},
		{4, 9, 6, 1, 4, 4, 2},
		{100, 200, 101, 49, 99, 51, 50},
	}

	for _, tc := range testCases {
		s := NewSpan(tc.start, tc.end)
		t.Run(s.String(), func(t *testing.T) {
			if got, want := s.Len(), tc.length; got != want {
				t.Errorf("Wrong length: got %d, want %d", got, want)
			}
			if got, want := s.FirstByte(), tc.firstByte; got != want {
				t.Errorf("Wrong first byte: got %d, want %d", got, want)
			}
			if got, want := s.LastByte(), tc.lastByte; got != want {
				t.Errorf("Wrong last byte: got %d, want %d", got, want)
			}
			if got, want := s.ByteCount(), tc.count; got != want {
				t.Errorf("Wrong byte count: got %d, want %d", got, want)
			}
			if got, want := s.Offset(), tc.offset; got != want {
				t.Errorf("Wrong offset: got %d, want %d", got, want)
			}
		})
	}
}

func TestUnpack(t *testing.T) {
	const sequence = "ACGTacgtNnTGCA"
	file := packtest.Encode(sequence)

	for start := 1; start <= len(sequence); start++ {
		for end := start; end <= len(sequence); end++ {
			s := NewSpan(uint32(start), uint32(end))
			packed := file[s.Offset() : s.Offset()+s.ByteCount()]

			got, err := Unpack(packed, s)
			if err != nil {
				t.Fatalf("Unpack(%s) returned error: %v", s, err)
			}
			if want := sequence[start-1 : end]; string(got) != want {
				t.Errorf("Unpack(%s): got %q, want %q", s, got, want)
			}
		}
	}
}

func TestUnpack_ReservedCodes(t *testing.T) {
	// 0x0b holds reserved codes 0 and 11; 0x90 holds 'N' then reserved code 0.
	got, err := Unpack([]byte{0x0b, 0x14, 0x90}, NewSpan(1, 6))
	if err != nil {
		t.Fatalf("Unpack returned error: %v", err)
	}
	if want := "\x00\x00AT" + "N\x00"; string(got) != want {
		t.Errorf("Unpack: got %q, want %q", got, want)
	}
}

func TestUnpack_WrongLength(t *testing.T) {
	if _, err := Unpack([]byte{0x12}, NewSpan(1, 3)); err == nil {
		t.Error("Unpack accepted a short buffer")
	}
}
