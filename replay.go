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

// Offline register access over a captured snapshot. Lets the phase tools
// decode and rehearse configurations without a board attached.
package sdtune

import (
	"encoding/binary"
	"fmt"

	"github.com/mmclab/sdtune/util"
)

// ReplayRegisters is a RegisterIo over an in-memory image of the
// controller's config words. Writes follow the hiword write-enable
// convention those words use on silicon: the high half of the written
// value selects which low-half bits take effect.
type ReplayRegisters struct {
	words map[Address]uint32
}

func NewReplayRegisters(segments []util.Segment) (*ReplayRegisters, error) {
	r := &ReplayRegisters{words: make(map[Address]uint32)}
	for _, seg := range segments {
		if seg.Address%4 != 0 || len(seg.Data)%4 != 0 {
			return nil, fmt.Errorf("segment at %#x is not word aligned", seg.Address)
		}
		for off := 0; off < len(seg.Data); off += 4 {
			addr := Address(seg.Address + uint32(off))
			r.words[addr] = binary.LittleEndian.Uint32(seg.Data[off:])
		}
	}
	return r, nil
}

func (r *ReplayRegisters) ReadReg(addr Address) (uint32, error) {
	word, ok := r.words[addr]
	if !ok {
		return 0, fmt.Errorf("address %#x not in snapshot", uint32(addr))
	}
	return word, nil
}

func (r *ReplayRegisters) WriteReg(addr Address, value uint32) error {
	enable := value >> 16
	r.words[addr] = (r.words[addr] &^ enable) | (value & 0xffff & enable)
	return nil
}
