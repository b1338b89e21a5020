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

// Package relocate rewrites absolute address operands in a code span so
// that the code behaves correctly after being moved by a constant delta.
//
// Only operands that point inside the span being relocated are touched.
// An operand pointing outside the span is a reference to something that
// is not moving with the code: a hardware register, the zero page, or an
// embedded data table. Those references are exactly what the patch
// package later finds and redirects; rewriting them here would be blind
// search-and-replace, not relocation.
//
// Relocate() adjusts operands and Move() places the code at its new
// address. They are separate steps so that each can be verified on its
// own: Relocate() touches nothing but in-span operand bytes and Move()
// touches nothing but the source and destination regions.
package relocate

import (
	"fmt"

	"github.com/reloc64/reloc64/curated"
	"github.com/reloc64/reloc64/disassembly"
	"github.com/reloc64/reloc64/hardware/memory"
	"github.com/reloc64/reloc64/logger"
)

// BadDelta is the pattern for all fatal relocation configuration errors.
const BadDelta = "relocate: bad delta: %v"

// Rewrite logs a single operand adjustment.
type Rewrite struct {
	Address    uint16 // address of the instruction
	Mnemonic   string
	OldOperand uint16
	NewOperand uint16
}

func (rw Rewrite) String() string {
	return fmt.Sprintf("%#04x %s $%04X -> $%04X", rw.Address, rw.Mnemonic, rw.OldOperand, rw.NewOperand)
}

// reserved address ranges that relocated code must never land in. the
// stack page is included alongside the ranges a C64 programmer would
// name: a player relocated onto the stack cannot run.
var reserved = []struct {
	low, high uint16
	name      string
}{
	{0x0000, 0x00ff, "zero page"},
	{0x0100, 0x01ff, "stack page"},
	{0xd000, 0xdfff, "I/O"},
}

// CheckDelta verifies that moving span by delta keeps every byte of the
// code inside the address space and outside the reserved ranges. The
// returned span is the destination. A failed check is a configuration
// error; the caller supplied a bad target address and there is nothing to
// retry.
func CheckDelta(span memory.CodeSpan, delta int) (memory.CodeSpan, error) {
	start := int(span.Start) + delta
	end := start + int(span.Length)

	if start < 0 || end > memory.AddressSpace {
		return memory.CodeSpan{}, curated.Errorf(BadDelta,
			fmt.Sprintf("%+#x moves span %s outside the address space", delta, span))
	}

	dest := memory.CodeSpan{Start: uint16(start), Length: span.Length}

	for _, r := range reserved {
		if start <= int(r.high) && end-1 >= int(r.low) {
			return memory.CodeSpan{}, curated.Errorf(BadDelta,
				fmt.Sprintf("%+#x moves span %s into %s ($%04X-$%04X)", delta, span, r.name, r.low, r.high))
		}
	}

	return dest, nil
}

// Relocate scans span and rewrites every absolute or absolute-indexed
// operand that points inside the span, adding delta to it. All other
// bytes of the image are copied verbatim. The returned log holds one
// entry per rewrite.
//
// The code itself is not moved; use Move() for that.
func Relocate(img *memory.Image, span memory.CodeSpan, delta int) (*memory.Image, []Rewrite, error) {
	if _, err := CheckDelta(span, delta); err != nil {
		return nil, nil, err
	}

	out := img.Copy()
	log := make([]Rewrite, 0, 64)

	sc := disassembly.NewScanner(img, span)
	for rec, ok := sc.Next(); ok; rec, ok = sc.Next() {
		if rec.Defn == nil || !rec.Defn.AbsoluteOperand() {
			continue
		}
		if !span.Contains(rec.Operand) {
			continue
		}

		n := uint16(int(rec.Operand) + delta)
		out.Write16(rec.OperandAddress(), n, memory.Synthesized)

		log = append(log, Rewrite{
			Address:    rec.Address,
			Mnemonic:   rec.Defn.Mnemonic,
			OldOperand: rec.Operand,
			NewOperand: n,
		})
	}

	logger.Logf("relocate", "%d operands rewritten in span %s (delta %+#x)", len(log), span, delta)

	return out, log, nil
}

// Move copies the bytes of span to span.Start+delta, marking the
// destination Synthesized. The source region is left in place; callers
// that want the vacated region cleared can do so explicitly. Like
// Relocate(), Move() refuses a delta that lands code in a reserved range.
func Move(img *memory.Image, span memory.CodeSpan, delta int) (*memory.Image, error) {
	dest, err := CheckDelta(span, delta)
	if err != nil {
		return nil, err
	}

	out := img.Copy()
	err = out.SetSpan(dest.Start, img.Data[span.Start:span.End()], memory.Synthesized)
	if err != nil {
		return nil, err
	}

	return out, nil
}
