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

package sdtune_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/mmclab/sdtune"
)

func TestCollectReport(t *testing.T) {
	phases := &fakePhases{}
	tuner := patternTuner(phases, []bool{false, true, true, true, false, false, true, true}, 90)
	report, err := sdtune.CollectReport(tuner, 3)
	if err != nil {
		t.Fatalf("CollectReport failed: %v", err)
	}
	if len(report) != 3 {
		t.Fatalf("got %v records, want 3", len(report))
	}
	for i, rec := range report {
		if rec.Phase != 90 {
			t.Errorf("pass %v: phase = %v, want 90", i, rec.Phase)
		}
		if len(rec.Samples) != 8 {
			t.Errorf("pass %v: %v samples, want 8", i, len(rec.Samples))
		}
	}
}

func TestCollectReportRecordsFailedPasses(t *testing.T) {
	phases := &fakePhases{}
	tuner := patternTuner(phases, make([]bool, 8), 90)
	report, err := sdtune.CollectReport(tuner, 2)
	if err != nil {
		t.Fatalf("CollectReport failed: %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("got %v records, want 2", len(report))
	}
	for i, rec := range report {
		if rec.Phase != -1 {
			t.Errorf("pass %v: phase = %v, want -1 marker", i, rec.Phase)
		}
	}
}

func TestReportSaveLoadRoundTrip(t *testing.T) {
	report := sdtune.Report{
		{Phase: 90, Samples: []bool{false, true, true, false}},
		{Phase: -1, Samples: []bool{false, false, false, false}},
		{Phase: 45, AllPhasesOK: true, Samples: []bool{true, true, true, true}},
	}
	var buf bytes.Buffer
	if err := report.SaveIo(&buf); err != nil {
		t.Fatalf("SaveIo failed: %v", err)
	}
	loaded, err := sdtune.LoadReportIo(&buf)
	if err != nil {
		t.Fatalf("LoadReportIo failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, report) {
		t.Errorf("loaded report %+v differs from saved %+v", loaded, report)
	}
}

func TestReportPassRates(t *testing.T) {
	report := sdtune.Report{
		{Phase: 45, Samples: []bool{true, true, false, false}},
		{Phase: 90, Samples: []bool{true, false, false, true}},
	}
	want := []float64{1, 0.5, 0, 0.5}
	if got := report.PassRates(); !reflect.DeepEqual(got, want) {
		t.Errorf("PassRates = %v, want %v", got, want)
	}
}

func TestReportSampleMatrixDims(t *testing.T) {
	report := sdtune.Report{
		{Phase: 45, Samples: []bool{true, false, true}},
		{Phase: 90, Samples: []bool{false, false, true}},
	}
	rows, cols := report.SampleMatrix().Dims()
	if rows != 2 || cols != 3 {
		t.Errorf("SampleMatrix dims = %vx%v, want 2x3", rows, cols)
	}
}
