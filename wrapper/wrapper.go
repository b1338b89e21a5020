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

// Package wrapper emits the dispatch stub placed at the final load
// address: a fixed jump table (init/play/stop) in front of the relocated
// player, so that the target runtime has entry points at known offsets
// whatever the player's own layout.
package wrapper

import "github.com/reloc64/reloc64/hardware/sid"

// Size of the synthesized stub in bytes: three JMPs plus the silence
// routine.
const Size = 20

// Entry point offsets within the stub.
const (
	InitOffset = 0
	PlayOffset = 3
	StopOffset = 6
)

// silenceOffset is where the chip silence routine lives inside the stub.
const silenceOffset = 9

// Synthesize produces the dispatch stub for a player whose entry points
// are already at their final addresses. A stop entry of zero means the
// player has no stop routine of its own; the stop jump then targets the
// stub's silence routine, which zeroes every SID register.
//
// The output is pure function of the arguments.
func Synthesize(loadAddr uint16, initEntry uint16, playEntry uint16, stopEntry uint16) []byte {
	if stopEntry == 0 {
		stopEntry = loadAddr + silenceOffset
	}

	stub := make([]byte, 0, Size)

	jmp := func(target uint16) {
		stub = append(stub, 0x4c, byte(target), byte(target>>8))
	}

	jmp(initEntry)
	jmp(playEntry)
	jmp(stopEntry)

	// silence routine:
	//	LDA #$00
	//	LDX #$18
	//	STA $D400,X
	//	DEX
	//	BPL *-4
	//	RTS
	stub = append(stub, 0xa9, 0x00)
	stub = append(stub, 0xa2, sid.NumRegisters-1)
	stub = append(stub, 0x9d, byte(sid.Base&0xff), byte(sid.Base>>8))
	stub = append(stub, 0xca)
	stub = append(stub, 0x10, 0xfa)
	stub = append(stub, 0x60)

	return stub
}
