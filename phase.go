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

// Conversion between clock phases in degrees and the host controller's
// delay-line register encoding.
package sdtune

import (
	"errors"
)

// The controller shifts a clock in coarse 90 degree quadrant steps, plus a
// chain of up to 255 fine delay elements. Each element is nominally 60ps;
// silicon spreads it over roughly 44-77ps, so an achieved phase may be off
// from the requested one by up to ~25 degrees at typical rates. That spread
// is a property of the hardware, not of this conversion.
const delayElementPsec = 60

// Phase config word fields. The word is 11 bits wide.
const (
	phaseQuadrantMask  uint32 = 0x3
	phaseDelayNumShift        = 2
	phaseDelayNumMask  uint32 = 0xff << phaseDelayNumShift
	phaseDelaySel      uint32 = 1 << 10
	phaseFieldMask     uint32 = 0x07ff
)

const maxDelayNum = 255

// ErrInvalidClockRate is returned when a phase is encoded against a clock
// whose rate is unknown (reported as zero). Decoding against such a clock
// is well defined and yields zero degrees; programming a delay against it
// is a wiring defect and must be reported.
var ErrInvalidClockRate = errors.New("sdtune: clock rate is zero")

// Rounds n/d to the nearest integer, ties rounding up.
// Both encode and decode use this one rule so the two directions agree.
func divRoundClosest(n, d uint64) uint64 {
	return (n + d/2) / d
}

// DecodePhase converts a phase config word into degrees [0, 360) at the
// given clock rate in Hz. A zero rate means no measurable phase shift is
// possible and always decodes to zero.
func DecodePhase(raw uint32, rate uint32) int {
	if rate == 0 {
		return 0
	}
	degrees := int(raw&phaseQuadrantMask) * 90
	if raw&phaseDelaySel != 0 {
		delayNum := uint64(raw&phaseDelayNumMask) >> phaseDelayNumShift
		// Degrees contributed by the chain:
		//   delayNum * elementPsec * 1e-12 * rate * 360
		// The numerator peaks at 255 * 60 * 360 * 2^32, well inside
		// uint64.
		degrees += int(divRoundClosest(delayNum*delayElementPsec*360*uint64(rate), 1000000000000))
	}
	return degrees % 360
}

// EncodePhase converts degrees into a phase config word at the given clock
// rate in Hz. Inputs outside [0, 360) are normalized first. The fine delay
// count saturates at 255 elements; at low rates a quadrant remainder can
// exceed what the delay chain covers, and the clamped word is still the
// closest the hardware can do.
func EncodePhase(degrees int, rate uint32) (uint32, error) {
	if rate == 0 {
		return 0, ErrInvalidClockRate
	}
	degrees = ((degrees % 360) + 360) % 360
	nineties := uint32(degrees / 90)
	remainder := uint64(degrees % 90)

	// Elements needed for the remainder:
	//   remainder / 360 / rate / (elementPsec * 1e-12)
	// = remainder * 1e12 / (rate * 360 * elementPsec)
	// The divisor is nonzero for every positive rate; sub-kHz clocks
	// simply saturate the chain below.
	delay := divRoundClosest(remainder*1000000000000, uint64(rate)*360*delayElementPsec)

	delayNum := uint32(delay)
	if delayNum > maxDelayNum {
		delayNum = maxDelayNum
	}

	raw := nineties | delayNum<<phaseDelayNumShift
	if delayNum != 0 {
		raw |= phaseDelaySel
	}
	return raw, nil
}
