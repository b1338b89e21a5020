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

package patch

import (
	"fmt"

	"github.com/reloc64/reloc64/logger"
	"github.com/reloc64/reloc64/tables"
)

// Record is a single verified pointer patch: the little-endian 16bit
// value at FileOffset is expected to be OldValue and will become
// NewValue.
type Record struct {
	FileOffset uint16
	OldValue   uint16
	NewValue   uint16
	Table      tables.ID
}

func (r Record) String() string {
	return fmt.Sprintf("%#04x $%04X -> $%04X (%s)", r.FileOffset, r.OldValue, r.NewValue, r.Table)
}

// Override is an operator-supplied patch site that the static scan cannot
// find, typically the immediate operands that set up a zero-page pointer
// before indirect addressing. The operator names the file offset holding
// the pointer value and the table it points into; the record then flows
// through the same remap and verification as any scanned candidate.
type Override struct {
	FileOffset uint16
	OldValue   uint16
	Table      tables.ID
}

// BuildRecords turns scanned candidates (plus any operator overrides)
// into patch records using the address remap produced by
// tables.Set.Remap(). Candidates whose operand has no remap entry are
// returned separately; a non-empty unmapped list means the table
// assumptions for this player are stale and the caller should not ship
// the result quietly.
func BuildRecords(candidates []Candidate, overrides []Override, remap map[uint16]uint16) ([]Record, []Candidate) {
	records := make([]Record, 0, len(candidates)+len(overrides))
	unmapped := make([]Candidate, 0)

	for _, c := range candidates {
		n, ok := remap[c.Operand]
		if !ok {
			logger.Logf("patch", "no remap for %s; leaving instruction alone", c)
			unmapped = append(unmapped, c)
			continue
		}
		records = append(records, Record{
			FileOffset: c.FileOffset,
			OldValue:   c.Operand,
			NewValue:   n,
			Table:      c.Table,
		})
	}

	for _, o := range overrides {
		n, ok := remap[o.OldValue]
		if !ok {
			logger.Logf("patch", "no remap for override at %#04x ($%04X)", o.FileOffset, o.OldValue)
			unmapped = append(unmapped, Candidate{
				FileOffset: o.FileOffset,
				Operand:    o.OldValue,
				Table:      o.Table,
				Mnemonic:   "(override)",
			})
			continue
		}
		records = append(records, Record{
			FileOffset: o.FileOffset,
			OldValue:   o.OldValue,
			NewValue:   n,
			Table:      o.Table,
		})
	}

	return records, unmapped
}
