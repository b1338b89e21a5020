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

package memory

import (
	"fmt"

	"github.com/reloc64/reloc64/curated"
)

// CodeSpan is a contiguous range of the image treated as relocatable code.
type CodeSpan struct {
	Start  uint16
	Length uint16
}

// NewCodeSpan checks the span invariant: the span must not run past the
// top of the address space.
func NewCodeSpan(start, length uint16) (CodeSpan, error) {
	if int(start)+int(length) > AddressSpace {
		return CodeSpan{}, curated.Errorf("memory: code span %#04x+%#04x runs past top of address space", start, length)
	}
	return CodeSpan{Start: start, Length: length}, nil
}

// End returns the exclusive end of the span. The return value is an int
// because a span is allowed to end exactly at the top of the address
// space.
func (sp CodeSpan) End() int {
	return int(sp.Start) + int(sp.Length)
}

// Contains returns true if addr falls inside the span.
func (sp CodeSpan) Contains(addr uint16) bool {
	return addr >= sp.Start && int(addr) < sp.End()
}

func (sp CodeSpan) String() string {
	return fmt.Sprintf("%#04x-%#04x", sp.Start, sp.End()-1)
}
