// Copyright 2026 The sdtune Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"fmt"
	"io"
	"os"

	"github.com/marcinbor85/gohex"
)

type Segment struct {
	Address uint32
	Data    []byte
}

// LoadIntelHexFile reads a register-space snapshot in Intel HEX format.
// Snapshots are sparse: each segment covers one contiguous register block.
func LoadIntelHexFile(filename string) ([]Segment, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadIntelHex(file)
}

// Exported for testing.
func LoadIntelHex(src io.Reader) ([]Segment, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(src); err != nil {
		return nil, err
	}

	var segments []Segment
	for _, s := range mem.GetDataSegments() {
		segments = append(segments, Segment{s.Address, s.Data})
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("Snapshot holds no data segments")
	}
	return segments, nil
}
