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

// Package hardware assembles the CPU and the SID register file into the
// reference tracer used for playback validation.
package hardware

import (
	"github.com/reloc64/reloc64/hardware/cpu"
	"github.com/reloc64/reloc64/hardware/memory"
	"github.com/reloc64/reloc64/hardware/sid"
	"github.com/reloc64/reloc64/logger"
)

// traceBus executes against a private copy of the image and snoops writes
// into the SID's address range.
type traceBus struct {
	mem   [memory.AddressSpace]byte
	frame int
	trace sid.Trace
}

func (b *traceBus) Read(addr uint16) uint8 {
	return b.mem[addr]
}

func (b *traceBus) Write(addr uint16, v uint8) {
	if sid.IsRegister(addr) {
		b.trace = append(b.trace, sid.WriteEvent{
			Frame:    b.frame,
			Register: sid.Normalize(addr),
			Value:    v,
		})
	}
	b.mem[addr] = v
}

// Tracer implements emulation.Tracer with the in-repo CPU.
type Tracer struct{}

// NewTracer is the preferred method of initialisation for the Tracer
// type.
func NewTracer() *Tracer {
	return &Tracer{}
}

// Trace implements the emulation.Tracer interface. Self-modifying players
// are fine here; the bus copy of the image is theirs to mangle.
func (tr *Tracer) Trace(img *memory.Image, init, play uint16, frames int) (sid.Trace, error) {
	bus := &traceBus{}
	bus.mem = img.Data

	mc := cpu.NewCPU(bus)

	// init selects song zero
	mc.A = 0
	mc.X = 0
	mc.Y = 0
	if err := mc.Call(init); err != nil {
		logger.Logf("tracer", "init at %#04x failed: %v", init, err)
		return bus.trace, err
	}

	for f := 0; f < frames; f++ {
		bus.frame = f
		if err := mc.Call(play); err != nil {
			logger.Logf("tracer", "play failed in frame %d: %v", f, err)
			return bus.trace, err
		}
	}

	return bus.trace, nil
}
