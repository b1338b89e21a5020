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

// Package disassembly walks a byte range of a memory image as a 6502
// instruction stream. Nothing is executed and flow is never followed; the
// scan proceeds strictly sequentially through the span.
//
// Undefined opcodes do not stop the scan. Retro binaries routinely
// interleave data with code and a linear scan cannot always tell the
// difference, so an undefined opcode is decoded as a single byte skip and
// logged. Downstream correctness depends only on exact decoding of the
// absolute and absolute-indexed subset of the instruction set, which the
// table in the instructions package guarantees.
package disassembly

import (
	"fmt"

	"github.com/reloc64/reloc64/hardware/cpu/instructions"
	"github.com/reloc64/reloc64/hardware/memory"
	"github.com/reloc64/reloc64/logger"
)

// Record is one decoded instruction from the scan.
type Record struct {
	// Address of the instruction in the image.
	Address uint16

	OpCode uint8

	// Defn is nil for undefined opcodes; such records are always one byte
	// long.
	Defn *instructions.Definition

	// Operand is valid only when HasOperand is true. For two byte
	// instructions the operand is the zero-extended single operand byte.
	Operand    uint16
	HasOperand bool
}

// Bytes returns the total length of the instruction in bytes.
func (r Record) Bytes() int {
	if r.Defn == nil {
		return 1
	}
	return r.Defn.Bytes
}

// OperandAddress returns the address of the first operand byte.
func (r Record) OperandAddress() uint16 {
	return r.Address + 1
}

func (r Record) String() string {
	if r.Defn == nil {
		return fmt.Sprintf("%#04x .byte %#02x", r.Address, r.OpCode)
	}

	switch r.Defn.AddressingMode {
	case instructions.Implied:
		return fmt.Sprintf("%#04x %s", r.Address, r.Defn.Mnemonic)
	case instructions.Immediate:
		return fmt.Sprintf("%#04x %s #$%02X", r.Address, r.Defn.Mnemonic, r.Operand)
	case instructions.Relative:
		return fmt.Sprintf("%#04x %s $%02X", r.Address, r.Defn.Mnemonic, r.Operand)
	case instructions.Absolute:
		return fmt.Sprintf("%#04x %s $%04X", r.Address, r.Defn.Mnemonic, r.Operand)
	case instructions.ZeroPage:
		return fmt.Sprintf("%#04x %s $%02X", r.Address, r.Defn.Mnemonic, r.Operand)
	case instructions.Indirect:
		return fmt.Sprintf("%#04x %s ($%04X)", r.Address, r.Defn.Mnemonic, r.Operand)
	case instructions.PreIndexed:
		return fmt.Sprintf("%#04x %s ($%02X,X)", r.Address, r.Defn.Mnemonic, r.Operand)
	case instructions.PostIndexed:
		return fmt.Sprintf("%#04x %s ($%02X),Y", r.Address, r.Defn.Mnemonic, r.Operand)
	case instructions.AbsoluteX:
		return fmt.Sprintf("%#04x %s $%04X,X", r.Address, r.Defn.Mnemonic, r.Operand)
	case instructions.AbsoluteY:
		return fmt.Sprintf("%#04x %s $%04X,Y", r.Address, r.Defn.Mnemonic, r.Operand)
	case instructions.ZeroPageX:
		return fmt.Sprintf("%#04x %s $%02X,X", r.Address, r.Defn.Mnemonic, r.Operand)
	case instructions.ZeroPageY:
		return fmt.Sprintf("%#04x %s $%02X,Y", r.Address, r.Defn.Mnemonic, r.Operand)
	}

	return fmt.Sprintf("%#04x %s", r.Address, r.Defn.Mnemonic)
}

// Scanner is a lazy, restartable walk over a code span. The zero value is
// not usable; use NewScanner().
type Scanner struct {
	img  *memory.Image
	span memory.CodeSpan

	// offset of the next instruction relative to span.Start
	offset int

	// number of undefined opcodes seen since the last Reset(). a high
	// count relative to the span length is a good sign the span is not
	// really code.
	illegal int
}

// NewScanner is the preferred method of initialisation for the Scanner
// type.
func NewScanner(img *memory.Image, span memory.CodeSpan) *Scanner {
	return &Scanner{img: img, span: span}
}

// Reset rewinds the scanner to the start of the span.
func (sc *Scanner) Reset() {
	sc.offset = 0
	sc.illegal = 0
}

// IllegalCount returns the number of undefined opcodes decoded so far.
func (sc *Scanner) IllegalCount() int {
	return sc.illegal
}

// Next decodes the instruction at the current offset and advances past
// it. The second return value is false once the span is exhausted.
func (sc *Scanner) Next() (Record, bool) {
	if sc.offset >= int(sc.span.Length) {
		return Record{}, false
	}

	addr := sc.span.Start + uint16(sc.offset)
	opcode := sc.img.Data[addr]

	rec := Record{
		Address: addr,
		OpCode:  opcode,
		Defn:    instructions.Lookup(opcode),
	}

	if rec.Defn == nil {
		// fail-soft: undefined opcode decodes as a single byte skip
		sc.illegal++
		logger.Logf("scanner", "undefined opcode %#02x at %#04x; skipping one byte", opcode, addr)
		sc.offset++
		return rec, true
	}

	if sc.offset+rec.Defn.Bytes > int(sc.span.Length) {
		// instruction would straddle the end of the span. almost certainly
		// trailing data; skip a byte at a time
		sc.illegal++
		logger.Logf("scanner", "%s at %#04x straddles end of span; skipping one byte", rec.Defn.Mnemonic, addr)
		rec.Defn = nil
		sc.offset++
		return rec, true
	}

	switch rec.Defn.Bytes {
	case 2:
		rec.Operand = uint16(sc.img.Data[addr+1])
		rec.HasOperand = true
	case 3:
		rec.Operand = sc.img.Read16(addr + 1)
		rec.HasOperand = true
	}

	sc.offset += rec.Defn.Bytes

	return rec, true
}
