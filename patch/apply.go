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

	"github.com/reloc64/reloc64/hardware/memory"
	"github.com/reloc64/reloc64/logger"
)

// Rejection is a patch whose pre-write verification failed, along with
// the value actually found at the file offset.
type Rejection struct {
	Record Record
	Actual uint16
}

func (r Rejection) String() string {
	return fmt.Sprintf("%#04x expected $%04X, found $%04X (%s)", r.Record.FileOffset, r.Record.OldValue, r.Actual, r.Record.Table)
}

// Result of applying a patch list.
type Result struct {
	Applied  int
	Rejected []Rejection
}

// Clean returns true if every patch applied.
func (r Result) Clean() bool {
	return len(r.Rejected) == 0
}

// Apply writes every patch record into a copy of the image. Each write is
// preceded by a read of the current value at the file offset; on a
// mismatch the patch is rejected and recorded, and the write does not
// happen. Application continues past rejections so that the caller sees
// the complete picture in one run.
//
// Every successful write marks the two operand bytes Patched in the
// provenance mask.
func Apply(img *memory.Image, records []Record) (*memory.Image, Result) {
	out := img.Copy()
	res := Result{Rejected: make([]Rejection, 0)}

	for _, r := range records {
		actual := out.Read16(r.FileOffset)
		if actual != r.OldValue {
			res.Rejected = append(res.Rejected, Rejection{Record: r, Actual: actual})
			logger.Logf("patch", "rejected: %#04x expected $%04X, found $%04X (%s)", r.FileOffset, r.OldValue, actual, r.Table)
			continue
		}
		out.Write16(r.FileOffset, r.NewValue, memory.Patched)
		res.Applied++
	}

	logger.Logf("patch", "%d patches applied, %d rejected", res.Applied, len(res.Rejected))

	return out, res
}
