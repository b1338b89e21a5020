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

// Package instructions defines the 6502 instruction set as data. The
// relocation passes and the validation CPU both work from the same table;
// there is exactly one definition of what each opcode looks like.
package instructions

import "fmt"

// AddressingMode describes the method of memory addressing used by an
// instruction.
type AddressingMode int

// List of supported addressing modes. Accumulator instructions are folded
// into Implied; for the purposes of scanning and relocation they are
// indistinguishable from other single byte instructions.
const (
	Implied AddressingMode = iota
	Immediate
	Relative // relative addressing is used for branch instructions
	Absolute
	ZeroPage
	Indirect    // indirect addressing (with no indexing) is only for JMP
	PreIndexed  // (ind,X)
	PostIndexed // (ind),Y
	AbsoluteX   // abs,X
	AbsoluteY   // abs,Y
	ZeroPageX   // zpg,X
	ZeroPageY   // zpg,Y only used by LDX/STX
)

func (m AddressingMode) String() string {
	switch m {
	case Implied:
		return "Implied"
	case Immediate:
		return "Immediate"
	case Relative:
		return "Relative"
	case Absolute:
		return "Absolute"
	case ZeroPage:
		return "ZeroPage"
	case Indirect:
		return "Indirect"
	case PreIndexed:
		return "PreIndexed"
	case PostIndexed:
		return "PostIndexed"
	case AbsoluteX:
		return "AbsoluteX"
	case AbsoluteY:
		return "AbsoluteY"
	case ZeroPageX:
		return "ZeroPageX"
	case ZeroPageY:
		return "ZeroPageY"
	}
	return "unknown addressing mode"
}

// EffectCategory categorises an instruction by the effect it has.
type EffectCategory int

// List of effect categories.
const (
	Read EffectCategory = iota
	Write
	RMW
	Flow
	Subroutine
	Interrupt
)

// Definition defines each instruction in the instruction set; one per
// opcode.
type Definition struct {
	OpCode         uint8
	Mnemonic       string
	Bytes          int
	Cycles         int
	AddressingMode AddressingMode
	PageSensitive  bool
	Effect         EffectCategory
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	if defn.Mnemonic == "" {
		return "undecoded instruction"
	}
	return fmt.Sprintf("%02x %s +%dbytes (%d cycles) [mode=%s effect=%d]", defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Cycles, defn.AddressingMode, defn.Effect)
}

// IsBranch returns true if instruction is a branch instruction.
func (defn Definition) IsBranch() bool {
	return defn.AddressingMode == Relative && defn.Effect == Flow
}

// AbsoluteOperand returns true if the instruction carries a 16bit
// little-endian address operand that relocation is allowed to touch.
// Indirect (JMP) operands point at a pointer rather than at code and are
// deliberately excluded; redirecting those is operator-override territory.
func (defn Definition) AbsoluteOperand() bool {
	switch defn.AddressingMode {
	case Absolute, AbsoluteX, AbsoluteY:
		return true
	}
	return false
}
