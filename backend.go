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

// Sample/drive phase control. Two mechanisms exist in the wild: delay-line
// registers inside the controller, and an external phase-capable clock
// generator. A device instance is configured with exactly one of them.
package sdtune

import (
	"fmt"

	"github.com/golang/glog"
)

//go:generate mockgen -destination=mocks/backend.go -package=mocks github.com/mmclab/sdtune PhaseControl
type PhaseControl interface {
	// Phase reads the configured phase in degrees for the sample clock
	// (sample true) or the drive clock (sample false). Never fails: a
	// clock with no rate reads as zero degrees.
	Phase(sample bool) int
	// SetPhase programs the phase in degrees for the chosen clock.
	SetPhase(sample bool, degrees int) error
}

// PhaseReg locates one phase config word: the register address and the bit
// position of the 11-bit field within it.
type PhaseReg struct {
	Addr  Address
	Shift uint32
}

// RegisterPhaseControl drives the controller's own delay-line registers.
// The clock rate is re-read from clk on every call; it is shared state
// owned by the clock tree.
type RegisterPhaseControl struct {
	regs   RegisterIo
	clk    Clock
	sample PhaseReg
	drive  PhaseReg
}

func NewRegisterPhaseControl(regs RegisterIo, clk Clock, sample, drive PhaseReg) *RegisterPhaseControl {
	return &RegisterPhaseControl{regs, clk, sample, drive}
}

func (p *RegisterPhaseControl) reg(sample bool) PhaseReg {
	if sample {
		return p.sample
	}
	return p.drive
}

func (p *RegisterPhaseControl) Phase(sample bool) int {
	r := p.reg(sample)
	word, err := p.regs.ReadReg(r.Addr)
	if err != nil {
		glog.Warningf("[phase] read of %#x failed: %v", uint32(r.Addr), err)
		return 0
	}
	return DecodePhase((word>>r.Shift)&phaseFieldMask, p.clk.Rate())
}

func (p *RegisterPhaseControl) SetPhase(sample bool, degrees int) error {
	raw, err := EncodePhase(degrees, p.clk.Rate())
	if err != nil {
		return err
	}
	r := p.reg(sample)
	glog.V(1).Infof("[phase] set sample=%v to %v deg (raw %#x)", sample, degrees, raw)
	if err = p.regs.WriteReg(r.Addr, HiwordUpdate(raw, phaseFieldMask, r.Shift)); err != nil {
		return fmt.Errorf("phase register write failed: %v", err)
	}
	return nil
}

// ProviderPhaseControl forwards phase control to externally owned
// phase-capable clocks, bypassing the register encoding entirely.
// Provider errors are surfaced unchanged. Boards whose drive phase is
// fixed in hardware leave drive nil; setting it then fails, reading it
// reads as zero.
type ProviderPhaseControl struct {
	sample PhaseShifter
	drive  PhaseShifter
}

func NewProviderPhaseControl(sample, drive PhaseShifter) *ProviderPhaseControl {
	return &ProviderPhaseControl{sample, drive}
}

func (p *ProviderPhaseControl) shifter(sample bool) PhaseShifter {
	if sample {
		return p.sample
	}
	return p.drive
}

func (p *ProviderPhaseControl) Phase(sample bool) int {
	s := p.shifter(sample)
	if s == nil {
		return 0
	}
	return s.Phase()
}

func (p *ProviderPhaseControl) SetPhase(sample bool, degrees int) error {
	s := p.shifter(sample)
	if s == nil {
		return fmt.Errorf("no phase mechanism for sample=%v", sample)
	}
	glog.V(1).Infof("[phase] set sample=%v to %v deg via provider", sample, degrees)
	return s.SetPhase(degrees)
}
