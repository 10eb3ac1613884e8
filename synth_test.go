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
	"testing"

	"github.com/mmclab/sdtune"
)

// fakeConsole scripts the synthesizer side: reads come from a canned
// response stream, writes accumulate for inspection.
type fakeConsole struct {
	responses bytes.Buffer
	commands  bytes.Buffer
	flushes   int
}

func (f *fakeConsole) Read(p []byte) (int, error)  { return f.responses.Read(p) }
func (f *fakeConsole) Write(p []byte) (int, error) { return f.commands.Write(p) }
func (f *fakeConsole) Flush() error                { f.flushes++; return nil }

func newFakeConsole(script string) *fakeConsole {
	f := &fakeConsole{}
	f.responses.WriteString(script)
	return f
}

func TestSynthSetAndGetPhase(t *testing.T) {
	// Identity reply, set ack, then the phase readback.
	port := newFakeConsole("rSYNTH-200\nz\nr315\n")
	s, err := sdtune.NewSynth(port)
	if err != nil {
		t.Fatalf("NewSynth failed: %v", err)
	}
	if port.flushes != 1 {
		t.Errorf("port flushed %v times before identity, want 1", port.flushes)
	}
	// -45 normalizes onto the ring before hitting the wire.
	if err := s.SetPhase(-45); err != nil {
		t.Fatalf("SetPhase failed: %v", err)
	}
	if got := s.Phase(); got != 315 {
		t.Errorf("Phase = %v, want 315", got)
	}
	if got := port.commands.String(); got != "i\ns315\ng\n" {
		t.Errorf("command stream = %q, want \"i\\ns315\\ng\\n\"", got)
	}
}

func TestSynthBadIdentity(t *testing.T) {
	if _, err := sdtune.NewSynth(newFakeConsole("garbage\n")); err == nil {
		t.Error("NewSynth accepted a device with the wrong identity")
	}
}

func TestSynthSetPhaseNack(t *testing.T) {
	port := newFakeConsole("rSYNTH-200\neERR out of range\n")
	s, err := sdtune.NewSynth(port)
	if err != nil {
		t.Fatalf("NewSynth failed: %v", err)
	}
	if err := s.SetPhase(90); err == nil {
		t.Error("SetPhase succeeded despite console NACK")
	}
}

func TestSynthPhaseFaultReadsZero(t *testing.T) {
	port := newFakeConsole("rSYNTH-200\nrnotanumber\n")
	s, err := sdtune.NewSynth(port)
	if err != nil {
		t.Fatalf("NewSynth failed: %v", err)
	}
	if got := s.Phase(); got != 0 {
		t.Errorf("Phase = %v on unparsable response, want 0", got)
	}
}
