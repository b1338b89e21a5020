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
	"testing"

	"github.com/reloc64/reloc64/hardware/memory"
	"github.com/reloc64/reloc64/patch"
	"github.com/reloc64/reloc64/tables"
	"github.com/reloc64/reloc64/test"
)

func TestScanForTableRefs(t *testing.T) {
	img := memory.NewImage()
	img.SetSpan(0x1000, []byte{
		0xad, 0xda, 0x16, // LDA $16DA (in range)
		0xbd, 0x00, 0xd4, // LDA $D400,X (not in range)
		0x8d, 0xdb, 0x16, // STA $16DB (in range)
		0xa5, 0x20, // LDA $20 (zero page, no absolute operand)
		0x60, // RTS
	}, memory.FromSource)
	span := memory.CodeSpan{Start: 0x1000, Length: 12}

	ranges := []tables.Range{
		{Table: tables.Wave, Low: 0x16da, High: 0x16ff},
	}

	candidates := patch.ScanForTableRefs(img, span, ranges)

	test.Equate(t, len(candidates), 2)

	test.Equate(t, candidates[0].FileOffset, 0x1001)
	test.Equate(t, candidates[0].Operand, 0x16da)
	test.Equate(t, candidates[0].Mnemonic, "LDA")
	test.Equate(t, candidates[0].Table == tables.Wave, true)

	test.Equate(t, candidates[1].FileOffset, 0x1007)
	test.Equate(t, candidates[1].Operand, 0x16db)
	test.Equate(t, candidates[1].Mnemonic, "STA")
}

func TestScanOverlappingRanges(t *testing.T) {
	img := memory.NewImage()
	img.SetSpan(0x1000, []byte{
		0xad, 0x00, 0x17, // LDA $1700
		0x60, // RTS
	}, memory.FromSource)
	span := memory.CodeSpan{Start: 0x1000, Length: 4}

	// the operand falls in both ranges; only the first match counts
	ranges := []tables.Range{
		{Table: tables.Wave, Low: 0x1700, High: 0x17ff},
		{Table: tables.Pulse, Low: 0x1680, High: 0x173f},
	}

	candidates := patch.ScanForTableRefs(img, span, ranges)

	test.Equate(t, len(candidates), 1)
	test.Equate(t, candidates[0].Table == tables.Wave, true)
}

func TestBuildRecords(t *testing.T) {
	candidates := []patch.Candidate{
		{FileOffset: 0x05c8, Operand: 0x16da, Table: tables.Wave, Mnemonic: "LDA"},
		{FileOffset: 0x05d0, Operand: 0x2fff, Table: tables.Pulse, Mnemonic: "STA"},
	}
	remap := map[uint16]uint16{0x16da: 0x4000}

	records, unmapped := patch.BuildRecords(candidates, nil, remap)

	test.Equate(t, len(records), 1)
	test.Equate(t, records[0].FileOffset, 0x05c8)
	test.Equate(t, records[0].OldValue, 0x16da)
	test.Equate(t, records[0].NewValue, 0x4000)

	// the candidate with no remap entry is reported, not dropped silently
	test.Equate(t, len(unmapped), 1)
	test.Equate(t, unmapped[0].Operand, 0x2fff)
}

func TestBuildRecordsOverrides(t *testing.T) {
	remap := map[uint16]uint16{0x16da: 0x4000}

	overrides := []patch.Override{
		{FileOffset: 0x0700, OldValue: 0x16da, Table: tables.Wave},
		{FileOffset: 0x0702, OldValue: 0x1111, Table: tables.Wave},
	}

	records, unmapped := patch.BuildRecords(nil, overrides, remap)

	test.Equate(t, len(records), 1)
	test.Equate(t, records[0].FileOffset, 0x0700)
	test.Equate(t, records[0].NewValue, 0x4000)

	test.Equate(t, len(unmapped), 1)
	test.Equate(t, unmapped[0].Mnemonic, "(override)")
}

func TestApply(t *testing.T) {
	img := memory.NewImage()
	img.Write16(0x05c8, 0x16da, memory.FromSource)

	records := []patch.Record{
		{FileOffset: 0x05c8, OldValue: 0x16da, NewValue: 0x4000, Table: tables.Wave},
	}

	out, res := patch.Apply(img, records)

	test.Equate(t, res.Applied, 1)
	test.Equate(t, res.Clean(), true)
	test.Equate(t, out.Read16(0x05c8), 0x4000)
	test.Equate(t, out.Provenance[0x05c8] == memory.Patched, true)
	test.Equate(t, out.Provenance[0x05c9] == memory.Patched, true)

	// the input image is untouched
	test.Equate(t, img.Read16(0x05c8), 0x16da)
}

func TestApplyRejection(t *testing.T) {
	img := memory.NewImage()

	// the image holds $16DB where the record expects $16DA
	img.Write16(0x05c8, 0x16db, memory.FromSource)
	img.Write16(0x0600, 0x1800, memory.FromSource)

	records := []patch.Record{
		{FileOffset: 0x05c8, OldValue: 0x16da, NewValue: 0x4000, Table: tables.Wave},
		{FileOffset: 0x0600, OldValue: 0x1800, NewValue: 0x4100, Table: tables.Pulse},
	}

	out, res := patch.Apply(img, records)

	// the mismatched patch is rejected and its bytes not written
	test.Equate(t, res.Clean(), false)
	test.Equate(t, len(res.Rejected), 1)
	test.Equate(t, res.Rejected[0].Record.FileOffset, 0x05c8)
	test.Equate(t, res.Rejected[0].Actual, 0x16db)
	test.Equate(t, out.Read16(0x05c8), 0x16db)
	test.Equate(t, out.Provenance[0x05c8] == memory.FromSource, true)

	// application continues past the rejection
	test.Equate(t, res.Applied, 1)
	test.Equate(t, out.Read16(0x0600), 0x4100)
}
