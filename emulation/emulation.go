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

// Package emulation defines the boundary between the conversion pipeline
// and whatever runs the music. The accuracy validator only ever sees this
// interface; the reference implementation lives in the hardware package
// but anything that can produce a frame-indexed register trace will do.
package emulation

import (
	"github.com/reloc64/reloc64/hardware/memory"
	"github.com/reloc64/reloc64/hardware/sid"
)

// Tracer runs a player image and captures its register writes.
//
// Trace calls init once (accumulator zero, selecting the first song) and
// then the play routine once per frame for frames frames. The returned
// trace may be partial if execution failed; the error says why. A partial
// trace is still a valid diagnostic artifact.
type Tracer interface {
	Trace(img *memory.Image, init, play uint16, frames int) (sid.Trace, error)
}
