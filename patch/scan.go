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

// Package patch finds the instructions that reference a player's embedded
// data tables and redirects them to new addresses.
//
// Relocation deliberately leaves these references alone: an operand that
// points outside the span being moved belongs to whatever it points at,
// not to the code. Redirecting them is a second, separate pass with its
// own verification. Every patch knows the value it expects to replace and
// a mismatch is reported, never silently skipped; a patch list built from
// stale address assumptions must announce itself loudly rather than
// produce a player that almost works.
package patch

import (
	"fmt"

	"github.com/reloc64/reloc64/disassembly"
	"github.com/reloc64/reloc64/hardware/memory"
	"github.com/reloc64/reloc64/logger"
	"github.com/reloc64/reloc64/tables"
)

// Candidate is one instruction whose operand falls inside a table's
// address range.
type Candidate struct {
	// FileOffset is the address of the operand bytes, not of the opcode.
	FileOffset uint16

	// the operand as found. two candidates referencing the same table at
	// different byte offsets are distinct and both are retained.
	Operand uint16

	Table tables.ID

	Mnemonic string
}

func (c Candidate) String() string {
	return fmt.Sprintf("%#04x %s $%04X (%s)", c.FileOffset, c.Mnemonic, c.Operand, c.Table)
}

// ScanForTableRefs walks span and returns a candidate for every absolute
// or absolute-indexed instruction whose operand falls within one of the
// supplied table ranges. Candidates are deduplicated by file offset only.
func ScanForTableRefs(img *memory.Image, span memory.CodeSpan, ranges []tables.Range) []Candidate {
	seen := make(map[uint16]bool)
	candidates := make([]Candidate, 0, 64)

	sc := disassembly.NewScanner(img, span)
	for rec, ok := sc.Next(); ok; rec, ok = sc.Next() {
		if rec.Defn == nil || !rec.Defn.AbsoluteOperand() {
			continue
		}

		for _, r := range ranges {
			if rec.Operand < r.Low || rec.Operand > r.High {
				continue
			}
			if seen[rec.OperandAddress()] {
				break
			}
			seen[rec.OperandAddress()] = true
			candidates = append(candidates, Candidate{
				FileOffset: rec.OperandAddress(),
				Operand:    rec.Operand,
				Table:      r.Table,
				Mnemonic:   rec.Defn.Mnemonic,
			})
			break
		}
	}

	logger.Logf("patch", "%d table references found in span %s", len(candidates), span)

	return candidates
}
