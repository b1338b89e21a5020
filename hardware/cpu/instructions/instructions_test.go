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

package instructions_test

import (
	"testing"

	"github.com/reloc64/reloc64/hardware/cpu/instructions"
	"github.com/reloc64/reloc64/test"
)

func TestTableConsistency(t *testing.T) {
	count := 0
	for op, defn := range instructions.GetDefinitions() {
		if defn == nil {
			continue
		}
		count++

		if defn.OpCode != uint8(op) {
			t.Errorf("definition at index %#02x records opcode %#02x", op, defn.OpCode)
		}
		if defn.Mnemonic == "" {
			t.Errorf("opcode %#02x has no mnemonic", op)
		}
		if defn.Bytes < 1 || defn.Bytes > 3 {
			t.Errorf("opcode %#02x has impossible byte count %d", op, defn.Bytes)
		}

		// byte counts follow from the addressing mode
		switch defn.AddressingMode {
		case instructions.Implied:
			test.Equate(t, defn.Bytes, 1)
		case instructions.Immediate, instructions.Relative,
			instructions.ZeroPage, instructions.ZeroPageX, instructions.ZeroPageY,
			instructions.PreIndexed, instructions.PostIndexed:
			if defn.Bytes != 2 {
				t.Errorf("opcode %#02x (%s) should be 2 bytes, table says %d", op, defn.Mnemonic, defn.Bytes)
			}
		case instructions.Absolute, instructions.AbsoluteX, instructions.AbsoluteY,
			instructions.Indirect:
			if defn.Bytes != 3 {
				t.Errorf("opcode %#02x (%s) should be 3 bytes, table says %d", op, defn.Mnemonic, defn.Bytes)
			}
		}
	}

	// all documented opcodes are present
	test.Equate(t, count, 151)
}

func TestLookup(t *testing.T) {
	defn := instructions.Lookup(0xad)
	test.Equate(t, defn.Mnemonic, "LDA")
	test.Equate(t, defn.Bytes, 3)
	test.Equate(t, defn.AddressingMode == instructions.Absolute, true)

	if instructions.Lookup(0x02) != nil {
		t.Error("expected nil definition for undefined opcode 0x02")
	}
}

func TestAbsoluteOperand(t *testing.T) {
	// LDA absolute, absolute-x, absolute-y
	test.Equate(t, instructions.Lookup(0xad).AbsoluteOperand(), true)
	test.Equate(t, instructions.Lookup(0xbd).AbsoluteOperand(), true)
	test.Equate(t, instructions.Lookup(0xb9).AbsoluteOperand(), true)

	// JSR absolute
	test.Equate(t, instructions.Lookup(0x20).AbsoluteOperand(), true)

	// indirect JMP carries a 16bit operand but it is a pointer location,
	// not a code address
	test.Equate(t, instructions.Lookup(0x6c).AbsoluteOperand(), false)

	// immediate and zero page
	test.Equate(t, instructions.Lookup(0xa9).AbsoluteOperand(), false)
	test.Equate(t, instructions.Lookup(0xa5).AbsoluteOperand(), false)
}

func TestIsBranch(t *testing.T) {
	test.Equate(t, instructions.Lookup(0xd0).IsBranch(), true)
	test.Equate(t, instructions.Lookup(0x10).IsBranch(), true)
	test.Equate(t, instructions.Lookup(0x4c).IsBranch(), false)
	test.Equate(t, instructions.Lookup(0x60).IsBranch(), false)
}
