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

// Package accuracy scores a converted player against the original by
// diffing their frame-indexed register traces. The frame number is the
// only synchronisation key; both traces are produced by identical
// frame-count emulation so there is no alignment problem to solve.
//
// Validation never fails. Whatever happens during tracing, a report is
// produced; the report is the diagnostic artifact, a 0% report included.
package accuracy

import (
	"fmt"
	"strings"
	"sync"

	"github.com/reloc64/reloc64/emulation"
	"github.com/reloc64/reloc64/hardware/memory"
	"github.com/reloc64/reloc64/hardware/sid"
)

// Run names one image and its entry points.
type Run struct {
	Image *memory.Image
	Init  uint16
	Play  uint16
}

// VoiceScore is the per-voice match fractions.
type VoiceScore struct {
	FreqMatch     float32
	WaveformMatch float32
}

// Report is the result of a validation. It is created once and never
// mutated afterwards.
type Report struct {
	Voices       [sid.NumVoices]VoiceScore
	FilterMatch  float32
	OverallMatch float32
	Frames       int

	// total register writes seen in the reference and candidate traces
	ReferenceWrites int
	CandidateWrites int

	// a candidate that barely writes to the chip at all is not playing
	// the wrong notes, it is barely executing. that is a different
	// failure and is flagged as such regardless of the match scores.
	PlayerMalfunction bool

	// trace errors are diagnostics, not failures
	TraceNotes []string
}

// the candidate write count below which, relative to the reference, the
// player is considered to be malfunctioning rather than inaccurate.
const malfunctionRatio = 0.1

// the registers that playback comparison tracks: the frequency pair and
// control register of each voice, and the filter registers.
var trackedRegisters = func() []int {
	regs := make([]int, 0, 13)
	for v := 0; v < sid.NumVoices; v++ {
		regs = append(regs,
			sid.VoiceReg(v, sid.FreqLo),
			sid.VoiceReg(v, sid.FreqHi),
			sid.VoiceReg(v, sid.Control))
	}
	regs = append(regs, sid.FilterLo, sid.FilterHi, sid.FilterResRoute, sid.FilterModeVol)
	return regs
}()

func (r Report) String() string {
	s := strings.Builder{}
	for v := range r.Voices {
		s.WriteString(fmt.Sprintf("voice %d: freq %.1f%% waveform %.1f%%\n",
			v+1, r.Voices[v].FreqMatch*100, r.Voices[v].WaveformMatch*100))
	}
	s.WriteString(fmt.Sprintf("filter: %.1f%%\n", r.FilterMatch*100))
	s.WriteString(fmt.Sprintf("overall: %.1f%% over %d frames (%d/%d writes)\n",
		r.OverallMatch*100, r.Frames, r.CandidateWrites, r.ReferenceWrites))
	if r.PlayerMalfunction {
		s.WriteString("PLAYER MALFUNCTION: candidate is barely executing\n")
	}
	return s.String()
}

// Validate traces the reference and candidate players for the same number
// of frames and diffs the traces. The two trace runs are independent and
// run concurrently.
func Validate(tracer emulation.Tracer, reference Run, candidate Run, frames int) Report {
	var refTrace, candTrace sid.Trace
	var refErr, candErr error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		refTrace, refErr = tracer.Trace(reference.Image, reference.Init, reference.Play, frames)
	}()
	go func() {
		defer wg.Done()
		candTrace, candErr = tracer.Trace(candidate.Image, candidate.Init, candidate.Play, frames)
	}()
	wg.Wait()

	rep := Report{
		Frames:          frames,
		ReferenceWrites: refTrace.WriteCount(),
		CandidateWrites: candTrace.WriteCount(),
	}
	if refErr != nil {
		rep.TraceNotes = append(rep.TraceNotes, fmt.Sprintf("reference: %v", refErr))
	}
	if candErr != nil {
		rep.TraceNotes = append(rep.TraceNotes, fmt.Sprintf("candidate: %v", candErr))
	}

	rep.PlayerMalfunction = float64(rep.CandidateWrites) < malfunctionRatio*float64(rep.ReferenceWrites)

	if frames == 0 {
		return rep
	}

	refStates := refTrace.States(frames)
	candStates := candTrace.States(frames)

	var freqHits, waveHits [sid.NumVoices]int
	filterHits := 0
	overallHits := 0

	for f := 0; f < frames; f++ {
		rs := refStates[f]
		cs := candStates[f]

		for v := 0; v < sid.NumVoices; v++ {
			if rs[sid.VoiceReg(v, sid.FreqLo)] == cs[sid.VoiceReg(v, sid.FreqLo)] &&
				rs[sid.VoiceReg(v, sid.FreqHi)] == cs[sid.VoiceReg(v, sid.FreqHi)] {
				freqHits[v]++
			}
			if rs[sid.VoiceReg(v, sid.Control)] == cs[sid.VoiceReg(v, sid.Control)] {
				waveHits[v]++
			}
		}

		if rs[sid.FilterLo] == cs[sid.FilterLo] &&
			rs[sid.FilterHi] == cs[sid.FilterHi] &&
			rs[sid.FilterResRoute] == cs[sid.FilterResRoute] &&
			rs[sid.FilterModeVol] == cs[sid.FilterModeVol] {
			filterHits++
		}

		all := true
		for _, reg := range trackedRegisters {
			if rs[reg] != cs[reg] {
				all = false
				break
			}
		}
		if all {
			overallHits++
		}
	}

	for v := 0; v < sid.NumVoices; v++ {
		rep.Voices[v].FreqMatch = float32(freqHits[v]) / float32(frames)
		rep.Voices[v].WaveformMatch = float32(waveHits[v]) / float32(frames)
	}
	rep.FilterMatch = float32(filterHits) / float32(frames)
	rep.OverallMatch = float32(overallHits) / float32(frames)

	return rep
}
