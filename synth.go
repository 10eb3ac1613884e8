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

// Phase provider backed by a bench clock synthesizer's line-oriented
// console. The console speaks single-letter commands: 'i' identity,
// 'g' phase query, 's' phase set; replies are 'z' (ack) or 'r<value>'.
package sdtune

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/tarm/serial"
)

// SynthPort is the console transport: a plain serial port or the bridge's
// USART passthrough.
type SynthPort interface {
	io.Reader
	io.Writer
	// Clears any pending data from the read buffer.
	Flush() error
}

type Synth struct {
	port SynthPort
	rd   *bufio.Reader
}

func (s *Synth) responseLine() (string, error) {
	res, err := s.rd.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(res, "\n"), nil
}

func (s *Synth) waitForAck() error {
	res, err := s.responseLine()
	if err != nil {
		return err
	}
	if len(res) == 0 || res[0] != 'z' {
		return fmt.Errorf("ACK error %v", res)
	}
	return nil
}

func (s *Synth) checkIdentity() error {
	var err error
	if err = s.port.Flush(); err != nil {
		return fmt.Errorf("Flush failed: %v", err)
	}
	if _, err = s.port.Write([]byte{'i', '\n'}); err != nil {
		return fmt.Errorf("Failed to write identity command: %v", err)
	}
	res, err := s.responseLine()
	if err != nil {
		return fmt.Errorf("Failed to read identity response: %v", err)
	}
	if len(res) == 0 || res[0] != 'r' {
		return fmt.Errorf("Unexpected identity %v", res)
	}
	glog.V(1).Infof("[synth] identity: %v", res[1:])
	return nil
}

// Phase implements PhaseShifter. A console fault reads as zero degrees;
// the subsequent SetPhase will surface it.
func (s *Synth) Phase() int {
	if _, err := s.port.Write([]byte{'g', '\n'}); err != nil {
		glog.Warningf("[synth] phase query failed: %v", err)
		return 0
	}
	res, err := s.responseLine()
	if err != nil || len(res) == 0 || res[0] != 'r' {
		glog.Warningf("[synth] bad phase response %q: %v", res, err)
		return 0
	}
	degrees, err := strconv.Atoi(res[1:])
	if err != nil {
		glog.Warningf("[synth] unparsable phase %q", res)
		return 0
	}
	return degrees
}

// SetPhase implements PhaseShifter.
func (s *Synth) SetPhase(degrees int) error {
	degrees = ((degrees % 360) + 360) % 360
	cmd := fmt.Sprintf("s%d\n", degrees)
	if _, err := s.port.Write([]byte(cmd)); err != nil {
		return fmt.Errorf("Failed to write phase command: %v", err)
	}
	return s.waitForAck()
}

func NewSynth(port SynthPort) (*Synth, error) {
	glog.V(1).Infof("Opening synth console")
	s := &Synth{port: port, rd: bufio.NewReader(port)}
	if err := s.checkIdentity(); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenSerialSynth opens the synthesizer console on a local serial port.
func OpenSerialSynth(name string, baud int) (*Synth, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("Opening serial port %v: %v", name, err)
	}
	return NewSynth(port)
}
