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

package patch_test

import (
	"strings"
	"testing"

	"github.com/reloc64/reloc64/curated"
	"github.com/reloc64/reloc64/patch"
	"github.com/reloc64/reloc64/tables"
	"github.com/reloc64/reloc64/test"
)

func TestReadOverrides(t *testing.T) {
	input := `# zero-page pointer setups the scanner cannot see
$05c8 $16da wave
0x0700 0x1800 pulse

05d0 16f0 sequence
`

	overrides, err := patch.ReadOverrides(strings.NewReader(input))
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(overrides), 3)

	test.Equate(t, overrides[0].FileOffset, 0x05c8)
	test.Equate(t, overrides[0].OldValue, 0x16da)
	test.Equate(t, overrides[0].Table == tables.Wave, true)

	test.Equate(t, overrides[1].FileOffset, 0x0700)
	test.Equate(t, overrides[1].Table == tables.Pulse, true)

	test.Equate(t, overrides[2].OldValue, 0x16f0)
	test.Equate(t, overrides[2].Table == tables.Sequence, true)
}

func TestReadOverridesErrors(t *testing.T) {
	for _, input := range []string{
		"$05c8 $16da",             // missing table name
		"$05c8 $16da nosuchtable", // unknown table name
		"wrong $16da wave",        // bad offset
		"$05c8 $12345 wave",       // value too wide for 16 bits
	} {
		_, err := patch.ReadOverrides(strings.NewReader(input))
		test.ExpectedFailure(t, err)
		if !curated.Is(err, patch.BadOverride) {
			t.Errorf("expected override error for %q, got: %v", input, err)
		}
	}
}

func TestReadOverridesFlowThrough(t *testing.T) {
	// parsed overrides feed BuildRecords exactly like scanned candidates
	overrides, err := patch.ReadOverrides(strings.NewReader("$0700 $16da wave\n"))
	test.ExpectedSuccess(t, err)

	remap := map[uint16]uint16{0x16da: 0x4000}
	records, unmapped := patch.BuildRecords(nil, overrides, remap)

	test.Equate(t, len(records), 1)
	test.Equate(t, records[0].FileOffset, 0x0700)
	test.Equate(t, records[0].NewValue, 0x4000)
	test.Equate(t, len(unmapped), 0)
}
