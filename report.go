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

// Collects tuning-pass diagnostics.
package sdtune

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PassRecord is the outcome of one tuning pass. Phase is -1 when the pass
// found no stable phase at all.
type PassRecord struct {
	Phase       int    `json:"phase"`
	AllPhasesOK bool   `json:"all_ok"`
	Samples     []bool `json:"samples"`
}

type Report []PassRecord

// CollectReport runs count tuning passes and records each outcome.
// All-fail passes are recorded and the collection continues; marginal
// links fail intermittently and the point of a sweep is to see that.
// Hard failures (phase writes) abort.
func CollectReport(t *Tuner, count int) (Report, error) {
	var report Report
	for i := 0; i < count; i++ {
		res, err := t.Run()
		if errors.Is(err, ErrNoStablePhase) {
			glog.Warningf("pass %v: no stable phase", i)
			report = append(report, PassRecord{Phase: -1, Samples: res.Samples})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("pass %v failed: %v", i, err)
		}
		report = append(report, PassRecord{res.Phase, res.AllPhasesOK, res.Samples})
	}
	return report, nil
}

// Exported for testing.
func LoadReportIo(src io.Reader) (Report, error) {
	var report Report
	zipper, err := gzip.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("gzip NewReader failed %v", err)
	}
	decoder := json.NewDecoder(zipper)
	if err = decoder.Decode(&report); err != nil {
		return nil, fmt.Errorf("JSON decoder failed %v", err)
	}
	return report, nil
}

// Loads report from file.
func LoadReport(filename string) (Report, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("Error opening report file: %v", err)
	}
	defer f.Close()
	return LoadReportIo(f)
}

// Exported for testing.
func (r Report) SaveIo(dst io.Writer) error {
	var err error
	zipper := gzip.NewWriter(dst)
	encoder := json.NewEncoder(zipper)
	if err = encoder.Encode(r); err != nil {
		return fmt.Errorf("JSON encoder failed %v", err)
	}
	if err = zipper.Close(); err != nil {
		return fmt.Errorf("gzip close failed %v", err)
	}
	return nil
}

func (r Report) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("Error creating report file: %v", err)
	}
	defer f.Close()
	return r.SaveIo(f)
}

// Collects all probe patterns in a single m (#passes) by n (#candidates)
// 0/1 matrix, one row per pass.
func (r Report) SampleMatrix() mat.Matrix {
	rows := len(r)
	cols := len(r[0].Samples)
	data := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if r[i].Samples[j] {
				data[i*cols+j] = 1
			}
		}
	}
	return mat.NewDense(rows, cols, data)
}

// PassRates reports, per candidate phase, the fraction of passes in which
// its probe succeeded.
func (r Report) PassRates() []float64 {
	m := r.SampleMatrix().(*mat.Dense)
	_, cols := m.Dims()
	rates := make([]float64, cols)
	col := make([]float64, len(r))
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)
		rates[j] = stat.Mean(col, nil)
	}
	return rates
}
