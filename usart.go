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

// USART passthrough to the board's auxiliary serial header. Boards that
// route the synthesizer console through the bridge use this as the synth
// transport instead of a local serial port.
package sdtune

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang/glog"
)

type command uint16

const (
	cmdInit    command = 0x10
	cmdEnable  command = 0x11
	cmdDisable command = 0x12
	cmdNumWait command = 0x14
)

type BaudRate uint32

const (
	BaudRateLow  BaudRate = 38400
	BaudRateHigh BaudRate = 115200
)

type Parity uint8

const (
	ParityNone Parity = 0
	ParityOdd  Parity = 1
	ParityEven Parity = 2
)

type StopBits uint8

const (
	StopBitsOne StopBits = 0
	StopBitsTwo StopBits = 2
)

type DataBits uint8

const (
	DataBitsOneByte DataBits = 8
)

// Struct layout matches what cmdInit expects, so don't change this.
type UsartConfig struct {
	BaudRate BaudRate
	StopBits StopBits
	Parity   Parity
	DataBits DataBits
}

var defaultProperties = UsartConfig{
	BaudRateHigh,
	StopBitsOne,
	ParityNone,
	DataBitsOneByte,
}

var defaultTimeout = 750 * time.Millisecond

type Usart struct {
	dev     UsbDeviceInterface
	conf    UsartConfig
	timeout time.Duration
}

func (u *Usart) configWrite(cmd command, data interface{}) error {
	glog.V(1).Infof("[usart-config-write]: cmd = %v", cmd)
	return u.dev.ControlOut(ReqUsart0Config, uint16(cmd), data)
}

// Returns the number of bytes waiting to be read.
func (u *Usart) inWaiting() (int, error) {
	var err error
	var numBytes uint32
	if err = u.dev.ControlIn(ReqUsart0Config, uint16(cmdNumWait), &numBytes); err != nil {
		return 0, fmt.Errorf("cmdNumWait failed: %v", err)
	}
	return int(numBytes), nil
}

func (u *Usart) dataRead(data []byte) error {
	glog.V(1).Infof("[usart-data-read]: len = %v", len(data))
	return u.dev.ControlIn(ReqUsart0Data, 0, data)
}

func (u *Usart) dataWrite(data []byte) error {
	glog.V(1).Infof("[usart-data-write]: data =\n%s", hex.Dump(data))
	return u.dev.ControlOut(ReqUsart0Data, 0, data)
}

func NewUsart(dev UsbDeviceInterface, conf *UsartConfig) (*Usart, error) {
	var err error
	u := &Usart{dev, defaultProperties, defaultTimeout}
	if conf != nil {
		u.conf = *conf
	}
	glog.Infof("USART configuration: %v", u.conf)
	if err = u.configWrite(cmdInit, u.conf); err != nil {
		return nil, fmt.Errorf("cmdInit failed: %v", err)
	}
	if err = u.configWrite(cmdEnable, []byte{}); err != nil {
		return nil, fmt.Errorf("cmdEnable failed: %v", err)
	}
	glog.V(1).Infof("USART initialized successfully")
	return u, nil
}

// Read returns as soon as any console bytes are available, or fails after
// the timeout. Line-oriented callers sit on top of this.
func (u *Usart) Read(p []byte) (n int, err error) {
	deadline := time.Now().Add(u.timeout)
	for {
		var toRead int
		if toRead, err = u.inWaiting(); err != nil {
			return 0, fmt.Errorf("inWaiting failed: %v", err)
		}
		if toRead > len(p) {
			toRead = len(p)
		}
		if toRead > 0 {
			if err = u.dataRead(p[:toRead]); err != nil {
				return 0, fmt.Errorf("dataRead failed: %v", err)
			}
			return toRead, nil
		}
		if time.Now().After(deadline) {
			return 0, fmt.Errorf("usart read timed out")
		}
		time.Sleep(time.Millisecond)
	}
}

func (u *Usart) Write(p []byte) (n int, err error) {
	// Write in small chunks; the control endpoint caps transfer size.
	for n < len(p) {
		toWrite := len(p) - n
		if toWrite > 58 {
			toWrite = 58
		}
		if err = u.dataWrite(p[n : n+toWrite]); err != nil {
			return n, fmt.Errorf("dataWrite failed: %v", err)
		}
		n += toWrite
	}
	return n, nil
}

func (u *Usart) Flush() (err error) {
	var toRead int
	for {
		if toRead, err = u.inWaiting(); err != nil {
			return fmt.Errorf("inWaiting failed: %v", err)
		}
		if toRead == 0 {
			break
		}
		buf := make([]byte, toRead)
		if err = u.dataRead(buf); err != nil {
			return fmt.Errorf("dataRead failed: %v", err)
		}
	}
	return nil
}

func (u *Usart) Timeout() time.Duration {
	return u.timeout
}

func (u *Usart) SetTimeout(timeout time.Duration) {
	u.timeout = timeout
}
