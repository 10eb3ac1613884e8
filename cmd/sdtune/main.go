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

// Runs sample-phase tuning against a board on the bench and writes the
// report.
package main

import (
	"flag"

	"github.com/mmclab/sdtune"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var (
	configFlag = flag.String("config", "sdtune.yaml", "Board description file")
	outputFlag = flag.String("output", "", "Report .json.gz output file")
	passesFlag = flag.Int("passes", 0, "Override the configured number of passes")
)

func init() {
	flag.Parse()
}

func buildSi5351Control(cfg *sdtune.Config, clk sdtune.Clock) (sdtune.PhaseControl, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	bus, err := i2creg.Open(cfg.Phase.Provider.I2cBus)
	if err != nil {
		return nil, err
	}
	p := cfg.Phase.Provider
	sample, err := sdtune.NewSi5351(bus, p.I2cAddr, p.Output, p.PllRate, clk)
	if err != nil {
		return nil, err
	}
	var drive sdtune.PhaseShifter
	if p.DriveOutput != nil {
		if drive, err = sdtune.NewSi5351(bus, p.I2cAddr, *p.DriveOutput, p.PllRate, clk); err != nil {
			return nil, err
		}
	}
	return sdtune.NewProviderPhaseControl(sample, drive), nil
}

func buildPhaseControl(cfg *sdtune.Config, dev sdtune.UsbDeviceInterface) (sdtune.PhaseControl, error) {
	clk := sdtune.FixedClock(cfg.Clock.Rate)
	switch cfg.Phase.Mechanism {
	case sdtune.MechanismRegister:
		mem := sdtune.NewMemory(dev)
		return sdtune.NewRegisterPhaseControl(mem, clk,
			sdtune.PhaseReg{Addr: sdtune.Address(cfg.Phase.SampleReg.Addr), Shift: cfg.Phase.SampleReg.Shift},
			sdtune.PhaseReg{Addr: sdtune.Address(cfg.Phase.DriveReg.Addr), Shift: cfg.Phase.DriveReg.Shift}), nil
	default: // provider; config validation already vetted the type
		if cfg.Phase.Provider.Type == "si5351" {
			return buildSi5351Control(cfg, clk)
		}
		var synth *sdtune.Synth
		var err error
		if cfg.Phase.Provider.Port == "bridge" {
			var usart *sdtune.Usart
			if usart, err = sdtune.NewUsart(dev, nil); err != nil {
				return nil, err
			}
			synth, err = sdtune.NewSynth(usart)
		} else {
			synth, err = sdtune.OpenSerialSynth(cfg.Phase.Provider.Port, cfg.Phase.Provider.Baud)
		}
		if err != nil {
			return nil, err
		}
		return sdtune.NewProviderPhaseControl(synth, nil), nil
	}
}

func main() {
	var err error
	defer glog.Flush()

	var cfg *sdtune.Config
	if cfg, err = sdtune.LoadConfig(*configFlag); err != nil {
		glog.Fatalf("Failed loading config: %v", err)
	}

	dev, err := sdtune.OpenBridgeUsbDevice()
	if err != nil {
		glog.Fatalf("Failed opening bridge: %v", err)
	}
	defer dev.Close()

	phases, err := buildPhaseControl(cfg, dev)
	if err != nil {
		glog.Fatalf("Failed building phase control: %v", err)
	}

	if cfg.Tuning.DrivePhase != nil {
		if err = phases.SetPhase(false, *cfg.Tuning.DrivePhase); err != nil {
			glog.Fatalf("Failed setting drive phase: %v", err)
		}
	}

	passes := cfg.Tuning.Passes
	if *passesFlag > 0 {
		passes = *passesFlag
	}

	tuner := &sdtune.Tuner{
		Phases:             phases,
		Probe:              sdtune.BridgeProbe(dev),
		NumPhases:          cfg.Tuning.NumPhases,
		DefaultSamplePhase: cfg.Tuning.DefaultSamplePhase,
	}

	report, err := sdtune.CollectReport(tuner, passes)
	if err != nil {
		glog.Fatalf("Tuning failed: %v", err)
	}

	last := report[len(report)-1]
	if last.Phase < 0 {
		glog.Warning("Final pass found no stable phase")
	} else {
		glog.Infof("Sample phase settled at %v deg (all-phases-ok: %v)",
			last.Phase, last.AllPhasesOK)
	}

	if *outputFlag != "" {
		if err = report.Save(*outputFlag); err != nil {
			glog.Fatalf("Failed saving report: %v", err)
		}
		glog.Infof("Report written to %v", *outputFlag)
	}
}
