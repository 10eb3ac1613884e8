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

// Sample-phase tuning: probe a ring of candidate phases, find the widest
// run of phases that transfer reliably, and settle in its middle.
package sdtune

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
)

// ErrNoStablePhase is returned when every candidate phase failed its
// probe. The previously configured sample phase is left in effect; the
// caller owns retry policy.
var ErrNoStablePhase = errors.New("sdtune: no stable sample phase found")

// Probe performs one bus-level tuning exchange at the currently applied
// sample phase and reports whether the response came back intact. Probe
// trouble of any kind is a fail, never an error: a candidate phase that
// cannot complete an exchange is simply a bad phase.
type Probe func() bool

// Range is a contiguous run of passing candidate indices on the ring,
// possibly wrapping past the last index.
type Range struct {
	Start  int
	Length int
}

// Tuner runs tuning passes over one device's sample clock. Strictly
// sequential: each probe depends on the phase set immediately before it,
// and the owning driver layer serializes passes per device.
type Tuner struct {
	Phases    PhaseControl
	Probe     Probe
	NumPhases int
	// Fallback sample phase for the degenerate pass where every
	// candidate works and the probe cannot discriminate.
	DefaultSamplePhase int
}

// TuneResult is the outcome of a successful tuning pass.
type TuneResult struct {
	// Selected sample phase in degrees, already applied.
	Phase int
	// AllPhasesOK marks the no-discrimination outcome: every candidate
	// passed and Phase is the configured default, not a computed middle.
	AllPhasesOK bool
	// Pass/fail per candidate index, for diagnostics.
	Samples []bool
}

func (t *Tuner) phaseFor(index int) int {
	return index * 360 / t.NumPhases
}

// PassRanges extracts the maximal disjoint runs of passing indices from
// one pass's results, treating the sequence as circular: when both ends
// pass, the leading run is absorbed into the trailing one, which keeps
// the trailing start and takes the leading slot. Run's widest-range scan
// is strictly-greater, so a merged run beats plain runs of equal length.
// A fully passing ring collapses to a single ring-length range.
// Exported for testing.
func PassRanges(passed []bool) []Range {
	var ranges []Range
	for i, ok := range passed {
		if !ok {
			continue
		}
		if i > 0 && passed[i-1] {
			ranges[len(ranges)-1].Length++
		} else {
			ranges = append(ranges, Range{Start: i, Length: 1})
		}
	}
	n := len(passed)
	last := len(ranges) - 1
	if len(ranges) > 1 && ranges[0].Start == 0 &&
		ranges[last].Start+ranges[last].Length == n {
		ranges[0].Start = ranges[last].Start
		ranges[0].Length += ranges[last].Length
		ranges = ranges[:last]
	}
	return ranges
}

// Run executes one tuning pass. A phase-set failure aborts the pass
// outright; an all-fail probe pattern returns ErrNoStablePhase with the
// starting sample phase restored.
func (t *Tuner) Run() (TuneResult, error) {
	if t.NumPhases <= 0 {
		return TuneResult{}, fmt.Errorf("invalid candidate count %v", t.NumPhases)
	}
	startPhase := t.Phases.Phase(true)

	passed := make([]bool, t.NumPhases)
	for i := range passed {
		if err := t.Phases.SetPhase(true, t.phaseFor(i)); err != nil {
			return TuneResult{}, fmt.Errorf("setting candidate %v: %v", i, err)
		}
		passed[i] = t.Probe()
		glog.V(2).Infof("[tuning] candidate %v (%v deg): pass=%v", i, t.phaseFor(i), passed[i])
	}

	ranges := PassRanges(passed)
	if len(ranges) == 0 {
		glog.Warning("[tuning] all phases bad")
		if err := t.Phases.SetPhase(true, startPhase); err != nil {
			glog.Warningf("[tuning] restoring phase %v failed: %v", startPhase, err)
		}
		// Samples still carry the (all-fail) pattern for diagnostics.
		return TuneResult{Samples: passed}, ErrNoStablePhase
	}

	if ranges[0].Length == t.NumPhases {
		glog.Infof("[tuning] all phases work, using default %v deg", t.DefaultSamplePhase)
		if err := t.Phases.SetPhase(true, t.DefaultSamplePhase); err != nil {
			return TuneResult{}, fmt.Errorf("setting default phase: %v", err)
		}
		return TuneResult{Phase: t.DefaultSamplePhase, AllPhasesOK: true, Samples: passed}, nil
	}

	best := 0
	for i, r := range ranges {
		if r.Length > ranges[best].Length {
			best = i
		}
	}
	middle := (ranges[best].Start + ranges[best].Length/2) % t.NumPhases
	phase := t.phaseFor(middle)
	glog.Infof("[tuning] %v usable range(s), widest %v long, middle candidate %v (%v deg)",
		len(ranges), ranges[best].Length, middle, phase)
	if err := t.Phases.SetPhase(true, phase); err != nil {
		return TuneResult{}, fmt.Errorf("setting tuned phase: %v", err)
	}
	return TuneResult{Phase: phase, Samples: passed}, nil
}
