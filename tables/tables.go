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

// Package tables describes the byte layout of a player's music data
// tables and converts table data between layouts.
//
// Two players can agree on every value in an instrument table and still
// disagree on where each byte lives: one stores records interleaved
// (attack, decay, attack, decay, ...) and the other as parallel arrays
// (all attacks, then all decays, possibly with a gap between the arrays).
// Copying raw bytes between such players produces garbage that is
// tantalisingly close to music. Every conversion therefore declares its
// source and target shape up front; nothing in this package infers a
// layout from content.
package tables

import "fmt"

// ID identifies a table symbolically, independent of where any particular
// player keeps it.
type ID int

// The tables a player is expected to carry. Not every player has all of
// them.
const (
	Instruments ID = iota
	Wave
	Pulse
	Filter
	Arpeggio
	Sequence
	Orderlist
)

func (id ID) String() string {
	switch id {
	case Instruments:
		return "instruments"
	case Wave:
		return "wave"
	case Pulse:
		return "pulse"
	case Filter:
		return "filter"
	case Arpeggio:
		return "arpeggio"
	case Sequence:
		return "sequence"
	case Orderlist:
		return "orderlist"
	}
	return "unknown table"
}

// ParseID returns the table named by s. Names match the String() form.
func ParseID(s string) (ID, bool) {
	for id := Instruments; id <= Orderlist; id++ {
		if id.String() == s {
			return id, true
		}
	}
	return 0, false
}

// Layout describes the physical shape of a table.
//
// Interleaved (row-major): ElementCount tuples of ArrayCount values each,
// adjacent. Parallel (column-major): ArrayCount arrays of ElementCount
// values each, the k'th array starting Stride*k bytes from the base. A
// Stride of zero means the arrays are tightly packed.
type Layout struct {
	ElementWidth uint8
	ArrayCount   uint8
	Stride       uint16
	Interleaved  bool
}

func (l Layout) String() string {
	if l.Interleaved {
		return fmt.Sprintf("interleaved w=%d n=%d", l.ElementWidth, l.ArrayCount)
	}
	return fmt.Sprintf("parallel w=%d n=%d stride=%d", l.ElementWidth, l.ArrayCount, l.Stride)
}

// Descriptor pairs a Layout with the address and element count of one
// concrete table in one player.
type Descriptor struct {
	Table        ID
	Layout       Layout
	Base         uint16
	ElementCount int
}

// stride returns the effective gap between parallel arrays.
func (d Descriptor) stride() int {
	if d.Layout.Stride != 0 {
		return int(d.Layout.Stride)
	}
	return d.ElementCount * int(d.Layout.ElementWidth)
}

// offset returns the byte offset, relative to Base, of value k of element
// i.
func (d Descriptor) offset(i, k int) int {
	w := int(d.Layout.ElementWidth)
	if d.Layout.Interleaved {
		return (i*int(d.Layout.ArrayCount) + k) * w
	}
	return k*d.stride() + i*w
}

// ByteSize returns the total number of bytes the table occupies,
// including any stride gaps between parallel arrays.
func (d Descriptor) ByteSize() int {
	if d.ElementCount == 0 || d.Layout.ArrayCount == 0 {
		return 0
	}
	w := int(d.Layout.ElementWidth)
	if d.Layout.Interleaved {
		return d.ElementCount * int(d.Layout.ArrayCount) * w
	}
	return (int(d.Layout.ArrayCount)-1)*d.stride() + d.ElementCount*w
}

// Range is the address range the table occupies, as consumed by the patch
// scanner.
type Range struct {
	Table ID
	Low   uint16
	High  uint16 // inclusive
}

// AddressRange returns the inclusive address range of the table.
func (d Descriptor) AddressRange() Range {
	return Range{
		Table: d.Table,
		Low:   d.Base,
		High:  d.Base + uint16(d.ByteSize()) - 1,
	}
}
