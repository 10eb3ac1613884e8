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

// Phase provider backed by an Si5351-class I2C clock generator. Boards
// that feed the bus clock from an external generator have no delay-line
// registers; the generator's output phase offset stands in for them.
package sdtune

import (
	"fmt"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/i2c"
)

const (
	si5351DefaultAddr uint16 = 0x60

	// CLK0_PHOFF; one register per output, consecutive.
	si5351RegPhoffBase uint8 = 165
	si5351RegPllReset  uint8 = 177

	// PLLA_RST | PLLB_RST; a reset latches new phase offsets.
	si5351PllResetBoth uint8 = 0xa0

	// The offset field is 7 bits wide.
	si5351PhoffMax = 127
)

// Si5351 shifts one generator output by programming its initial phase
// offset, counted in quarter VCO periods. The reachable phase range
// depends on the VCO-to-output ratio; requests beyond it fail rather
// than saturate, since a silently short phase would corrupt tuning.
type Si5351 struct {
	dev    i2c.Dev
	output int
	// VCO rate in Hz, fixed by the generator's PLL configuration.
	pllRate uint32
	// Output (bus) clock, re-read per operation like every other rate.
	clk Clock
}

func NewSi5351(bus i2c.Bus, addr uint16, output int, pllRate uint32, clk Clock) (*Si5351, error) {
	if output < 0 || output > 5 {
		return nil, fmt.Errorf("invalid generator output %v", output)
	}
	if pllRate == 0 {
		return nil, fmt.Errorf("generator VCO rate not set")
	}
	return &Si5351{i2c.Dev{Bus: bus, Addr: addr}, output, pllRate, clk}, nil
}

func (s *Si5351) phoffReg() uint8 {
	return si5351RegPhoffBase + uint8(s.output)
}

func (s *Si5351) readReg(reg uint8) (uint8, error) {
	var buf [1]byte
	if err := s.dev.Tx([]byte{reg}, buf[:]); err != nil {
		return 0, fmt.Errorf("generator read of reg %v: %v", reg, err)
	}
	return buf[0], nil
}

func (s *Si5351) writeReg(reg, value uint8) error {
	if err := s.dev.Tx([]byte{reg, value}, nil); err != nil {
		return fmt.Errorf("generator write of reg %v: %v", reg, err)
	}
	return nil
}

// Phase implements PhaseShifter.
func (s *Si5351) Phase() int {
	rate := s.clk.Rate()
	if rate == 0 {
		return 0
	}
	phoff, err := s.readReg(s.phoffReg())
	if err != nil {
		glog.Warningf("[si5351] phase read failed: %v", err)
		return 0
	}
	// degrees = phoff * 90 * fout / fvco
	degrees := divRoundClosest(uint64(phoff&si5351PhoffMax)*90*uint64(rate), uint64(s.pllRate))
	return int(degrees) % 360
}

// SetPhase implements PhaseShifter.
func (s *Si5351) SetPhase(degrees int) error {
	rate := s.clk.Rate()
	if rate == 0 {
		return ErrInvalidClockRate
	}
	degrees = ((degrees % 360) + 360) % 360
	// phoff = degrees * fvco / (90 * fout), in quarter VCO periods.
	phoff := divRoundClosest(uint64(degrees)*uint64(s.pllRate), 90*uint64(rate))
	if phoff > si5351PhoffMax {
		return fmt.Errorf("phase %v deg needs offset %v, beyond the generator's reach", degrees, phoff)
	}
	glog.V(1).Infof("[si5351] clk%v phase %v deg -> phoff %v", s.output, degrees, phoff)
	if err := s.writeReg(s.phoffReg(), uint8(phoff)); err != nil {
		return err
	}
	// New offsets take effect on PLL reset.
	return s.writeReg(si5351RegPllReset, si5351PllResetBoth)
}
