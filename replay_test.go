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

package sdtune_test

import (
	"testing"

	"github.com/mmclab/sdtune"
	"github.com/mmclab/sdtune/util"
)

func TestReplayReadReg(t *testing.T) {
	regs, err := sdtune.NewReplayRegisters([]util.Segment{
		{Address: 0x100, Data: []byte{0x4a, 0x08, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00}},
	})
	if err != nil {
		t.Fatalf("NewReplayRegisters failed: %v", err)
	}
	if word, err := regs.ReadReg(0x100); err != nil || word != 0x84a {
		t.Errorf("ReadReg(0x100) = %#x, %v, want 0x84a", word, err)
	}
	if word, err := regs.ReadReg(0x104); err != nil || word != 0x3 {
		t.Errorf("ReadReg(0x104) = %#x, %v, want 0x3", word, err)
	}
	if _, err := regs.ReadReg(0x200); err == nil {
		t.Error("ReadReg outside the snapshot succeeded")
	}
}

func TestReplayRejectsMisalignedSegment(t *testing.T) {
	_, err := sdtune.NewReplayRegisters([]util.Segment{
		{Address: 0x102, Data: []byte{0x4a, 0x08, 0x00, 0x00}},
	})
	if err == nil {
		t.Error("NewReplayRegisters accepted a misaligned segment")
	}
}

func TestReplayHiwordWrite(t *testing.T) {
	regs, err := sdtune.NewReplayRegisters([]util.Segment{
		{Address: 0x100, Data: []byte{0x4a, 0x08, 0x00, 0x00}},
	})
	if err != nil {
		t.Fatalf("NewReplayRegisters failed: %v", err)
	}
	// Quadrant 3, no fine delay, onto the field at shift 1. Only the
	// enabled bits may change.
	if err := regs.WriteReg(0x100, sdtune.HiwordUpdate(0x3, 0x7ff, 1)); err != nil {
		t.Fatalf("WriteReg failed: %v", err)
	}
	if word, _ := regs.ReadReg(0x100); word != 0x6 {
		t.Errorf("word after hiword write = %#x, want 0x6", word)
	}
}

func TestReplayPhaseRoundTrip(t *testing.T) {
	regs, err := sdtune.NewReplayRegisters([]util.Segment{
		{Address: 0x100, Data: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
	})
	if err != nil {
		t.Fatalf("NewReplayRegisters failed: %v", err)
	}
	control := sdtune.NewRegisterPhaseControl(regs, sdtune.FixedClock(50000000),
		sdtune.PhaseReg{Addr: 0x100, Shift: 1},
		sdtune.PhaseReg{Addr: 0x104, Shift: 1})
	for _, degrees := range []int{0, 90, 100, 270} {
		if err := control.SetPhase(true, degrees); err != nil {
			t.Fatalf("SetPhase(%v) failed: %v", degrees, err)
		}
		if got := control.Phase(true); got != degrees {
			t.Errorf("Phase after SetPhase(%v) = %v", degrees, got)
		}
	}
}
