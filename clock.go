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

// Clock abstractions consumed by the phase machinery.
package sdtune

//go:generate mockgen -destination=mocks/clock.go -package=mocks github.com/mmclab/sdtune Clock,PhaseShifter

// Clock reports the live rate of the bus clock domain. The rate is owned
// elsewhere (clock tree, rate negotiation) and is re-read on every phase
// translation rather than cached.
type Clock interface {
	// Rate in Hz. Zero means the clock has no measurable rate.
	Rate() uint32
}

// FixedClock is a Clock with a constant rate, for configs where the bus
// rate is negotiated before calibration and pinned for its duration.
type FixedClock uint32

func (c FixedClock) Rate() uint32 { return uint32(c) }

// PhaseShifter is an externally owned clock object that can report and
// shift its own output phase. Hardware variants without the internal
// delay-line registers route phase control here instead.
type PhaseShifter interface {
	// Phase in degrees [0, 360).
	Phase() int
	// SetPhase programs the output phase, in degrees. Errors are the
	// provider's own and are surfaced to callers unchanged.
	SetPhase(degrees int) error
}
