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

// Board description consumed by the calibration tools. The values here
// come from schematics and the controller datasheet; nothing in this file
// is discovered at runtime.
package sdtune

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Clock  ClockConfig  `yaml:"clock"`
	Tuning TuningConfig `yaml:"tuning"`
	Phase  PhaseConfig  `yaml:"phase"`
}

type ClockConfig struct {
	// Bus clock rate in Hz at the moment of calibration.
	Rate uint32 `yaml:"rate"`
}

type TuningConfig struct {
	NumPhases          int `yaml:"num_phases"`
	DefaultSamplePhase int `yaml:"default_sample_phase"`
	// Drive phase applied once before tuning; nil leaves it alone.
	DrivePhase *int `yaml:"drive_phase"`
	// Number of tuning passes per report.
	Passes int `yaml:"passes"`
}

// PhaseConfig selects the phase mechanism the board actually has.
type PhaseConfig struct {
	// "register" or "provider".
	Mechanism string    `yaml:"mechanism"`
	SampleReg RegConfig `yaml:"sample_reg"`
	DriveReg  RegConfig `yaml:"drive_reg"`

	Provider ProviderConfig `yaml:"provider"`
}

type RegConfig struct {
	Addr  uint32 `yaml:"addr"`
	Shift uint32 `yaml:"shift"`
}

type ProviderConfig struct {
	// "synth" (serial console) or "si5351" (I2C).
	Type string `yaml:"type"`

	// synth
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`

	// si5351
	I2cBus  string `yaml:"i2c_bus"`
	I2cAddr uint16 `yaml:"i2c_addr"`
	PllRate uint32 `yaml:"pll_rate"`
	Output  int    `yaml:"output"`
	// Generator output feeding the drive clock; nil when the board
	// fixes the drive phase in hardware.
	DriveOutput *int `yaml:"drive_output"`
}

const (
	MechanismRegister = "register"
	MechanismProvider = "provider"
)

func (c *Config) applyDefaults() {
	if c.Tuning.NumPhases == 0 {
		c.Tuning.NumPhases = 360
	}
	if c.Tuning.Passes == 0 {
		c.Tuning.Passes = 1
	}
	if c.Phase.Mechanism == "" {
		c.Phase.Mechanism = MechanismRegister
	}
	if c.Phase.Provider.Baud == 0 {
		c.Phase.Provider.Baud = 115200
	}
	if c.Phase.Provider.I2cAddr == 0 {
		c.Phase.Provider.I2cAddr = si5351DefaultAddr
	}
}

func (c *Config) validate() error {
	if c.Tuning.NumPhases < 1 {
		return fmt.Errorf("num_phases (%v) must be positive", c.Tuning.NumPhases)
	}
	if c.Tuning.Passes < 1 {
		return fmt.Errorf("passes (%v) must be positive", c.Tuning.Passes)
	}
	switch c.Phase.Mechanism {
	case MechanismRegister:
		if c.Phase.SampleReg.Addr == 0 || c.Phase.DriveReg.Addr == 0 {
			return fmt.Errorf("register mechanism needs sample_reg and drive_reg addresses")
		}
	case MechanismProvider:
		switch c.Phase.Provider.Type {
		case "synth":
			if c.Phase.Provider.Port == "" {
				return fmt.Errorf("synth provider needs a port")
			}
		case "si5351":
			if c.Phase.Provider.PllRate == 0 {
				return fmt.Errorf("si5351 provider needs pll_rate")
			}
		default:
			return fmt.Errorf("unknown provider type %q", c.Phase.Provider.Type)
		}
	default:
		return fmt.Errorf("unknown phase mechanism %q", c.Phase.Mechanism)
	}
	return nil
}

func LoadConfig(filename string) (*Config, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("Error reading config file: %v", err)
	}
	return ParseConfig(buf)
}

// Exported for testing.
func ParseConfig(buf []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal failed: %v", err)
	}
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}
