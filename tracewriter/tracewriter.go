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

// Package tracewriter renders a register trace to a WAV file. The
// rendering is a crude square-wave approximation of the chip, nothing
// like a real SID, but it is plenty for A/B listening: a conversion that
// plays the wrong notes is obvious within seconds of audio where it
// might hide in pages of trace diff.
package tracewriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/reloc64/reloc64/curated"
	"github.com/reloc64/reloc64/hardware/sid"
)

// WAVWriteError is the pattern for failures while writing the audio
// file.
const WAVWriteError = "tracewriter: %v"

const sampleRate = 44100

// PAL frame rate. the trace is frame-indexed so this is the only timing
// information the renderer needs.
const frameRate = 50

const samplesPerFrame = sampleRate / frameRate

// clock / 16777216: converts a 16-bit frequency register value to Hz
// (PAL clock)
const freqToHz = 985248.0 / 16777216.0

const gateBit = 0x01

// amplitude of one voice. three voices at full swing stay comfortably
// inside 16 bits
const voiceAmplitude = 8000

// WriteWAV renders frames of the trace to filename as 16-bit mono PCM.
func WriteWAV(filename string, trace sid.Trace, frames int) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(WAVWriteError, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, 0, frames*samplesPerFrame),
	}

	states := trace.States(frames)

	// per-voice oscillator phase carries across frames
	var phase [sid.NumVoices]float64

	for fr := 0; fr < frames; fr++ {
		st := states[fr]

		var hz [sid.NumVoices]float64
		var gate [sid.NumVoices]bool
		for v := 0; v < sid.NumVoices; v++ {
			reg := int(st[sid.VoiceReg(v, sid.FreqLo)]) | int(st[sid.VoiceReg(v, sid.FreqHi)])<<8
			hz[v] = float64(reg) * freqToHz
			gate[v] = st[sid.VoiceReg(v, sid.Control)]&gateBit == gateBit
		}

		for s := 0; s < samplesPerFrame; s++ {
			sample := 0
			for v := 0; v < sid.NumVoices; v++ {
				if !gate[v] || hz[v] == 0 {
					continue
				}
				phase[v] += hz[v] / sampleRate
				if phase[v] >= 1 {
					phase[v] -= 1
				}
				if phase[v] < 0.5 {
					sample += voiceAmplitude
				} else {
					sample -= voiceAmplitude
				}
			}
			buf.Data = append(buf.Data, sample)
		}
	}

	if err := enc.Write(buf); err != nil {
		return curated.Errorf(WAVWriteError, err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf(WAVWriteError, err)
	}

	return nil
}
