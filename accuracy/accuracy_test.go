// This file is part of Reloc64.
//
// Reloc64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Reloc64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Reloc64.  If not, see <https://www.gnu.org/licenses/>.

package accuracy_test

import (
	"errors"
	"testing"

	"github.com/reloc64/reloc64/accuracy"
	"github.com/reloc64/reloc64/hardware/memory"
	"github.com/reloc64/reloc64/hardware/sid"
	"github.com/reloc64/reloc64/test"
)

// stubTracer returns canned traces keyed by init address. the map is
// never written after construction so concurrent Trace calls are fine.
type stubTracer struct {
	traces map[uint16]sid.Trace
	errs   map[uint16]error
}

func (st *stubTracer) Trace(img *memory.Image, init, play uint16, frames int) (sid.Trace, error) {
	return st.traces[init], st.errs[init]
}

// a melody on voice 1: new frequency every frame, gate on throughout.
func melody(frames int) sid.Trace {
	tr := sid.Trace{}
	for f := 0; f < frames; f++ {
		tr = append(tr,
			sid.WriteEvent{Frame: f, Register: sid.VoiceReg(0, sid.FreqLo), Value: uint8(f)},
			sid.WriteEvent{Frame: f, Register: sid.VoiceReg(0, sid.Control), Value: 0x11},
		)
	}
	return tr
}

func TestValidateIdentical(t *testing.T) {
	st := &stubTracer{traces: map[uint16]sid.Trace{
		0x1000: melody(10),
		0x4000: melody(10),
	}}

	rep := accuracy.Validate(st,
		accuracy.Run{Init: 0x1000, Play: 0x1003},
		accuracy.Run{Init: 0x4000, Play: 0x4003}, 10)

	test.Equate(t, rep.Frames, 10)
	test.Equate(t, rep.OverallMatch, float32(1.0))
	test.Equate(t, rep.FilterMatch, float32(1.0))
	for v := 0; v < sid.NumVoices; v++ {
		test.Equate(t, rep.Voices[v].FreqMatch, float32(1.0))
		test.Equate(t, rep.Voices[v].WaveformMatch, float32(1.0))
	}
	test.Equate(t, rep.PlayerMalfunction, false)
	test.Equate(t, rep.ReferenceWrites, 20)
	test.Equate(t, rep.CandidateWrites, 20)
}

func TestValidateDivergence(t *testing.T) {
	// the candidate plays the wrong frequencies from frame 5 on
	cand := melody(5)
	for f := 5; f < 10; f++ {
		cand = append(cand,
			sid.WriteEvent{Frame: f, Register: sid.VoiceReg(0, sid.FreqLo), Value: 0x7f},
			sid.WriteEvent{Frame: f, Register: sid.VoiceReg(0, sid.Control), Value: 0x11},
		)
	}

	st := &stubTracer{traces: map[uint16]sid.Trace{
		0x1000: melody(10),
		0x4000: cand,
	}}

	rep := accuracy.Validate(st,
		accuracy.Run{Init: 0x1000}, accuracy.Run{Init: 0x4000}, 10)

	test.Equate(t, rep.Voices[0].FreqMatch, float32(0.5))
	test.Equate(t, rep.Voices[0].WaveformMatch, float32(1.0))

	// the untouched voices agree throughout
	test.Equate(t, rep.Voices[1].FreqMatch, float32(1.0))
	test.Equate(t, rep.Voices[2].FreqMatch, float32(1.0))

	test.Equate(t, rep.OverallMatch, float32(0.5))
	test.Equate(t, rep.PlayerMalfunction, false)
}

func TestValidateMalfunction(t *testing.T) {
	// a silent candidate is a malfunction, not an inaccuracy
	st := &stubTracer{traces: map[uint16]sid.Trace{
		0x1000: melody(10),
	}}

	rep := accuracy.Validate(st,
		accuracy.Run{Init: 0x1000}, accuracy.Run{Init: 0x4000}, 10)

	test.Equate(t, rep.PlayerMalfunction, true)
	test.Equate(t, rep.CandidateWrites, 0)
}

func TestValidateTraceNotes(t *testing.T) {
	st := &stubTracer{
		traces: map[uint16]sid.Trace{0x1000: melody(10)},
		errs:   map[uint16]error{0x4000: errors.New("undefined opcode")},
	}

	rep := accuracy.Validate(st,
		accuracy.Run{Init: 0x1000}, accuracy.Run{Init: 0x4000}, 10)

	// a trace failure still produces a report
	test.Equate(t, len(rep.TraceNotes), 1)
	test.Equate(t, rep.TraceNotes[0], "candidate: undefined opcode")
	test.Equate(t, rep.PlayerMalfunction, true)
}
