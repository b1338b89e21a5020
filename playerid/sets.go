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

package playerid

import (
	"github.com/reloc64/reloc64/curated"
	"github.com/reloc64/reloc64/tables"
)

// SourceSet describes where a player keeps its embedded tables, relative
// to the address the player is loaded at. The offsets and shapes are
// fixed per player version; they come from static analysis of the player
// binaries, the same analysis that produced the fingerprints.
func SourceSet(k Kind, load uint16) (tables.Set, error) {
	switch k {
	case FutureComposer:
		// FC keeps instrument records interleaved (8 bytes per
		// instrument) and the modulation tables as interleaved pairs
		return tables.Set{
			Name: k.String(),
			Tables: []tables.Descriptor{
				{Table: tables.Instruments, Layout: tables.Layout{ElementWidth: 1, ArrayCount: 8, Interleaved: true}, Base: load + 0x0700, ElementCount: 16},
				{Table: tables.Wave, Layout: tables.Layout{ElementWidth: 1, ArrayCount: 1, Interleaved: true}, Base: load + 0x0780, ElementCount: 64},
				{Table: tables.Pulse, Layout: tables.Layout{ElementWidth: 1, ArrayCount: 2, Interleaved: true}, Base: load + 0x07c0, ElementCount: 32},
				{Table: tables.Filter, Layout: tables.Layout{ElementWidth: 1, ArrayCount: 2, Interleaved: true}, Base: load + 0x0800, ElementCount: 32},
				{Table: tables.Sequence, Layout: tables.Layout{ElementWidth: 1, ArrayCount: 1, Interleaved: true}, Base: load + 0x0840, ElementCount: 256},
			},
		}, nil

	case SoundMonitor:
		// SM already stores parallel arrays but with a gap between them
		return tables.Set{
			Name: k.String(),
			Tables: []tables.Descriptor{
				{Table: tables.Instruments, Layout: tables.Layout{ElementWidth: 1, ArrayCount: 8, Stride: 0x20, Interleaved: false}, Base: load + 0x0600, ElementCount: 16},
				{Table: tables.Wave, Layout: tables.Layout{ElementWidth: 1, ArrayCount: 1, Interleaved: false}, Base: load + 0x0720, ElementCount: 64},
				{Table: tables.Pulse, Layout: tables.Layout{ElementWidth: 1, ArrayCount: 2, Stride: 0x40, Interleaved: false}, Base: load + 0x0760, ElementCount: 32},
				{Table: tables.Filter, Layout: tables.Layout{ElementWidth: 1, ArrayCount: 2, Stride: 0x40, Interleaved: false}, Base: load + 0x0820, ElementCount: 32},
				{Table: tables.Sequence, Layout: tables.Layout{ElementWidth: 1, ArrayCount: 1, Interleaved: false}, Base: load + 0x08e0, ElementCount: 256},
			},
		}, nil
	}

	return tables.Set{}, curated.Errorf(UnknownPlayer, k)
}

// TargetSet lays the same tables out the way the target runtime expects:
// tightly packed parallel arrays, one table after another, starting at
// base. Shapes carry over from the source set so that the remap and the
// transcoder always agree.
func TargetSet(src tables.Set, base uint16) tables.Set {
	out := tables.Set{
		Name:   "target layout",
		Tables: make([]tables.Descriptor, 0, len(src.Tables)),
	}

	addr := base
	for _, d := range src.Tables {
		t := tables.Descriptor{
			Table: d.Table,
			Layout: tables.Layout{
				ElementWidth: d.Layout.ElementWidth,
				ArrayCount:   d.Layout.ArrayCount,
				Interleaved:  false,
			},
			Base:         addr,
			ElementCount: d.ElementCount,
		}
		out.Tables = append(out.Tables, t)
		addr += uint16(t.ByteSize())
	}

	return out
}
