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

// Package sid names the SID register file and defines the frame-indexed
// register write trace that playback validation is built on. There is no
// sound synthesis here; for validation purposes the chip is nothing more
// than 25 write-only registers and a record of what was written to them
// and when.
package sid

// The SID register file occupies 32 bytes from Base, mirrored through the
// rest of the $D400 page. 25 registers are meaningful.
const (
	Base         = uint16(0xd400)
	MirrorTop    = uint16(0xd7ff)
	NumRegisters = 25
	NumVoices    = 3
	regsPerVoice = 7
)

// Per-voice register offsets. The register for voice v is the offset plus
// v*7.
const (
	FreqLo = iota
	FreqHi
	PulseLo
	PulseHi
	Control
	AttackDecay
	SustainRelease
)

// Filter and volume registers.
const (
	FilterLo       = 21
	FilterHi       = 22
	FilterResRoute = 23
	FilterModeVol  = 24
)

// VoiceReg returns the register index for a per-voice register offset.
func VoiceReg(voice, offset int) int {
	return voice*regsPerVoice + offset
}

// IsRegister returns true if addr falls anywhere in the SID's mirrored
// address range.
func IsRegister(addr uint16) bool {
	return addr >= Base && addr <= MirrorTop
}

// Normalize maps a mirrored SID address to its canonical register index.
// The return value is only meaningful when IsRegister(addr) is true.
func Normalize(addr uint16) int {
	return int((addr - Base) % 32)
}

// WriteEvent is a single register write, keyed by the emulated frame in
// which it happened.
type WriteEvent struct {
	Frame    int
	Register int // canonical register index, 0-24
	Value    uint8
}

// Trace is an ordered sequence of register writes.
type Trace []WriteEvent

// WriteCount returns the total number of writes in the trace.
func (tr Trace) WriteCount() int {
	return len(tr)
}

// State is the value of every SID register at the end of a frame.
type State [NumRegisters]uint8

// States folds the trace into the register state at the end of each of
// frames frames. Registers hold their value across frames until written
// again.
func (tr Trace) States(frames int) []State {
	states := make([]State, frames)

	var s State
	i := 0
	for f := 0; f < frames; f++ {
		for i < len(tr) && tr[i].Frame <= f {
			if tr[i].Register >= 0 && tr[i].Register < NumRegisters {
				s[tr[i].Register] = tr[i].Value
			}
			i++
		}
		states[f] = s
	}

	return states
}
