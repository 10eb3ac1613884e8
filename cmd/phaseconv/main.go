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

// Offline phase calculator: converts between degrees and the delay
// register encoding at a given clock rate, and decodes phases straight
// out of a captured register snapshot.
package main

import (
	"flag"
	"fmt"

	"github.com/mmclab/sdtune"
	"github.com/mmclab/sdtune/util"

	"github.com/golang/glog"
)

var (
	rateFlag     = flag.Uint("rate", 0, "Bus clock rate in Hz")
	degreesFlag  = flag.Int("degrees", -1, "Phase to encode, in degrees")
	rawFlag      = flag.Int("raw", -1, "Phase config word to decode")
	snapshotFlag = flag.String("snapshot", "", "Intel HEX register snapshot to decode from")
	addrFlag     = flag.Uint("addr", 0, "Register address within the snapshot")
	shiftFlag    = flag.Uint("shift", 0, "Bit position of the phase field")
)

func init() {
	flag.Parse()
}

func decodeSnapshot() error {
	segments, err := util.LoadIntelHexFile(*snapshotFlag)
	if err != nil {
		return fmt.Errorf("loading snapshot: %v", err)
	}
	regs, err := sdtune.NewReplayRegisters(segments)
	if err != nil {
		return err
	}
	word, err := regs.ReadReg(sdtune.Address(*addrFlag))
	if err != nil {
		return err
	}
	raw := (word >> *shiftFlag) & 0x7ff
	fmt.Printf("reg %#x = %#x, phase field %#x -> %v deg\n",
		*addrFlag, word, raw, sdtune.DecodePhase(raw, uint32(*rateFlag)))
	return nil
}

func main() {
	defer glog.Flush()

	switch {
	case *snapshotFlag != "":
		if err := decodeSnapshot(); err != nil {
			glog.Fatalf("Snapshot decode failed: %v", err)
		}
	case *rawFlag >= 0:
		fmt.Printf("%#x -> %v deg\n", *rawFlag,
			sdtune.DecodePhase(uint32(*rawFlag), uint32(*rateFlag)))
	case *degreesFlag >= 0:
		raw, err := sdtune.EncodePhase(*degreesFlag, uint32(*rateFlag))
		if err != nil {
			glog.Fatalf("Encode failed: %v", err)
		}
		fmt.Printf("%v deg -> %#x (reads back as %v deg)\n",
			*degreesFlag, raw, sdtune.DecodePhase(raw, uint32(*rateFlag)))
	default:
		glog.Fatal("Nothing to do: pass -degrees, -raw or -snapshot")
	}
}
