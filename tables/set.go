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

package tables

import (
	"fmt"

	"github.com/reloc64/reloc64/curated"
)

// SetMismatch is the pattern for remapping between sets that do not carry
// the same tables.
const SetMismatch = "tables: set mismatch: %v"

// Set is the named group of table descriptors for one player kind.
type Set struct {
	Name   string
	Tables []Descriptor
}

// Lookup returns the descriptor for a table, or false if the set does not
// carry it.
func (s Set) Lookup(id ID) (Descriptor, bool) {
	for _, d := range s.Tables {
		if d.Table == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Ranges returns the address range of every table in the set, in the form
// the patch scanner consumes.
func (s Set) Ranges() []Range {
	r := make([]Range, 0, len(s.Tables))
	for _, d := range s.Tables {
		r = append(r, d.AddressRange())
	}
	return r
}

// Size returns the total byte size of every table in the set. For a
// tightly packed set this is also its extent in memory.
func (s Set) Size() int {
	n := 0
	for _, d := range s.Tables {
		n += d.ByteSize()
	}
	return n
}

// Shift returns a copy of the set with every table base moved by delta.
// Used after relocation, when the embedded tables have moved with the
// code.
func (s Set) Shift(delta int) Set {
	out := Set{Name: s.Name, Tables: make([]Descriptor, len(s.Tables))}
	copy(out.Tables, s.Tables)
	for i := range out.Tables {
		out.Tables[i].Base = uint16(int(out.Tables[i].Base) + delta)
	}
	return out
}

// Remap builds the address remap from this set's tables to the target
// set's tables. Every byte of every source table maps to the address of
// the same logical value in the target, so an instruction referencing the
// second parallel array of a table (base plus stride) remaps just as well
// as one referencing the base.
//
// Both sets must carry the same tables with the same shapes.
func (s Set) Remap(target Set) (map[uint16]uint16, error) {
	remap := make(map[uint16]uint16)

	for _, from := range s.Tables {
		to, ok := target.Lookup(from.Table)
		if !ok {
			return nil, curated.Errorf(SetMismatch,
				fmt.Sprintf("%s carries no %s table (%s does)", target.Name, from.Table, s.Name))
		}
		if from.ElementCount != to.ElementCount ||
			from.Layout.ElementWidth != to.Layout.ElementWidth ||
			from.Layout.ArrayCount != to.Layout.ArrayCount {
			return nil, curated.Errorf(SetMismatch,
				fmt.Sprintf("%s table shapes differ between %s and %s", from.Table, s.Name, target.Name))
		}

		w := int(from.Layout.ElementWidth)
		for i := 0; i < from.ElementCount; i++ {
			for k := 0; k < int(from.Layout.ArrayCount); k++ {
				src := from.Base + uint16(from.offset(i, k))
				dst := to.Base + uint16(to.offset(i, k))
				for b := 0; b < w; b++ {
					remap[src+uint16(b)] = dst + uint16(b)
				}
			}
		}
	}

	return remap, nil
}
