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

// Package cpu is a small 6502 interpreter, just enough to run a music
// player's init and play routines for validation. It is not cycle
// accurate; playback validation is keyed by frame number, not by cycle,
// so instruction-level accuracy is all that is required.
//
// Decoding works from the same definitions table the static scanner uses.
// There is exactly one description of the instruction set in this
// codebase.
package cpu

import (
	"github.com/reloc64/reloc64/curated"
	"github.com/reloc64/reloc64/hardware/cpu/instructions"
)

// UndefinedOpCode is the pattern for execution reaching an opcode with no
// definition.
const UndefinedOpCode = "cpu: undefined opcode %#02x at %#04x"

// RunawayExecution is the pattern for a subroutine call that does not
// return within the instruction budget.
const RunawayExecution = "cpu: no return after %d instructions (PC %#04x)"

// Bus is the memory the CPU executes against. Implementations can snoop
// writes; that is how the register trace is captured.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, v uint8)
}

// StatusRegister flags.
type StatusRegister struct {
	Sign             bool
	Overflow         bool
	Break            bool
	DecimalMode      bool
	InterruptDisable bool
	Zero             bool
	Carry            bool
}

// Value returns the status register as a byte. The unused bit reads high.
func (sr StatusRegister) Value() uint8 {
	var v uint8 = 0x20
	if sr.Sign {
		v |= 0x80
	}
	if sr.Overflow {
		v |= 0x40
	}
	if sr.Break {
		v |= 0x10
	}
	if sr.DecimalMode {
		v |= 0x08
	}
	if sr.InterruptDisable {
		v |= 0x04
	}
	if sr.Zero {
		v |= 0x02
	}
	if sr.Carry {
		v |= 0x01
	}
	return v
}

// Load sets the status register from a byte.
func (sr *StatusRegister) Load(v uint8) {
	sr.Sign = v&0x80 != 0
	sr.Overflow = v&0x40 != 0
	sr.Break = v&0x10 != 0
	sr.DecimalMode = v&0x08 != 0
	sr.InterruptDisable = v&0x04 != 0
	sr.Zero = v&0x02 != 0
	sr.Carry = v&0x01 != 0
}

// CPU is the processor state. The zero value is not usable; use NewCPU().
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	Status  StatusRegister

	bus Bus
}

// magicReturn is the address Call() arranges for the final RTS to land
// on. It sits in the KERNAL ROM area where no player code can live.
const magicReturn = uint16(0xffff)

// maxInstructions bounds a single Call(). A play routine that has not
// returned after this many instructions is looping.
const maxInstructions = 2_000_000

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(bus Bus) *CPU {
	return &CPU{
		bus:    bus,
		SP:     0xfd,
		Status: StatusRegister{InterruptDisable: true},
	}
}

func (mc *CPU) read16(addr uint16) uint16 {
	return uint16(mc.bus.Read(addr)) | uint16(mc.bus.Read(addr+1))<<8
}

func (mc *CPU) fetch() uint8 {
	v := mc.bus.Read(mc.PC)
	mc.PC++
	return v
}

func (mc *CPU) fetch16() uint16 {
	lo := mc.fetch()
	hi := mc.fetch()
	return uint16(lo) | uint16(hi)<<8
}

func (mc *CPU) push(v uint8) {
	mc.bus.Write(0x0100+uint16(mc.SP), v)
	mc.SP--
}

func (mc *CPU) pop() uint8 {
	mc.SP++
	return mc.bus.Read(0x0100 + uint16(mc.SP))
}

func (mc *CPU) push16(v uint16) {
	mc.push(uint8(v >> 8))
	mc.push(uint8(v))
}

func (mc *CPU) pop16() uint16 {
	lo := mc.pop()
	hi := mc.pop()
	return uint16(lo) | uint16(hi)<<8
}

func (mc *CPU) setNZ(v uint8) {
	mc.Status.Sign = v&0x80 != 0
	mc.Status.Zero = v == 0
}

// effectiveAddress resolves the operand address for the addressing modes
// that have one. Immediate, Implied and Relative are handled by the
// callers.
func (mc *CPU) effectiveAddress(mode instructions.AddressingMode) uint16 {
	switch mode {
	case instructions.ZeroPage:
		return uint16(mc.fetch())
	case instructions.ZeroPageX:
		return uint16(mc.fetch() + mc.X)
	case instructions.ZeroPageY:
		return uint16(mc.fetch() + mc.Y)
	case instructions.Absolute:
		return mc.fetch16()
	case instructions.AbsoluteX:
		return mc.fetch16() + uint16(mc.X)
	case instructions.AbsoluteY:
		return mc.fetch16() + uint16(mc.Y)
	case instructions.Indirect:
		// the 6502 does not carry the indirect read across a page
		// boundary
		ptr := mc.fetch16()
		lo := mc.bus.Read(ptr)
		hi := mc.bus.Read((ptr & 0xff00) | uint16(uint8(ptr)+1))
		return uint16(lo) | uint16(hi)<<8
	case instructions.PreIndexed:
		zp := mc.fetch() + mc.X
		lo := mc.bus.Read(uint16(zp))
		hi := mc.bus.Read(uint16(zp + 1))
		return uint16(lo) | uint16(hi)<<8
	case instructions.PostIndexed:
		zp := mc.fetch()
		lo := mc.bus.Read(uint16(zp))
		hi := mc.bus.Read(uint16(zp + 1))
		return (uint16(lo) | uint16(hi)<<8) + uint16(mc.Y)
	}
	return 0
}

// operand resolves the value an instruction operates on, along with the
// address it came from for instructions that write back.
func (mc *CPU) operand(defn *instructions.Definition) (uint8, uint16) {
	if defn.AddressingMode == instructions.Immediate {
		return mc.fetch(), 0
	}
	addr := mc.effectiveAddress(defn.AddressingMode)
	return mc.bus.Read(addr), addr
}

func (mc *CPU) branch(taken bool) {
	offset := int8(mc.fetch())
	if taken {
		mc.PC = uint16(int(mc.PC) + int(offset))
	}
}

func (mc *CPU) adc(v uint8) {
	if mc.Status.DecimalMode {
		// decimal mode arithmetic, nybble at a time
		lo := int(mc.A&0x0f) + int(v&0x0f)
		if mc.Status.Carry {
			lo++
		}
		hi := int(mc.A>>4) + int(v>>4)
		if lo > 9 {
			lo -= 10
			hi++
		}
		mc.Status.Carry = hi > 9
		if hi > 9 {
			hi -= 10
		}
		mc.A = uint8(hi<<4 | lo)
		mc.setNZ(mc.A)
		return
	}

	sum := int(mc.A) + int(v)
	if mc.Status.Carry {
		sum++
	}
	r := uint8(sum)
	mc.Status.Carry = sum > 0xff
	mc.Status.Overflow = (mc.A^r)&(v^r)&0x80 != 0
	mc.A = r
	mc.setNZ(mc.A)
}

func (mc *CPU) sbc(v uint8) {
	if mc.Status.DecimalMode {
		lo := int(mc.A&0x0f) - int(v&0x0f)
		if !mc.Status.Carry {
			lo--
		}
		hi := int(mc.A>>4) - int(v>>4)
		if lo < 0 {
			lo += 10
			hi--
		}
		mc.Status.Carry = hi >= 0
		if hi < 0 {
			hi += 10
		}
		mc.A = uint8(hi<<4 | lo)
		mc.setNZ(mc.A)
		return
	}

	diff := int(mc.A) - int(v)
	if !mc.Status.Carry {
		diff--
	}
	r := uint8(diff)
	mc.Status.Carry = diff >= 0
	mc.Status.Overflow = (mc.A^v)&(mc.A^r)&0x80 != 0
	mc.A = r
	mc.setNZ(mc.A)
}

func (mc *CPU) compare(reg, v uint8) {
	mc.Status.Carry = reg >= v
	mc.setNZ(reg - v)
}

// Step executes a single instruction.
func (mc *CPU) Step() error {
	pc := mc.PC
	opcode := mc.fetch()

	defn := instructions.Lookup(opcode)
	if defn == nil {
		return curated.Errorf(UndefinedOpCode, opcode, pc)
	}

	switch defn.Mnemonic {
	case "LDA":
		v, _ := mc.operand(defn)
		mc.A = v
		mc.setNZ(mc.A)
	case "LDX":
		v, _ := mc.operand(defn)
		mc.X = v
		mc.setNZ(mc.X)
	case "LDY":
		v, _ := mc.operand(defn)
		mc.Y = v
		mc.setNZ(mc.Y)
	case "STA":
		mc.bus.Write(mc.effectiveAddress(defn.AddressingMode), mc.A)
	case "STX":
		mc.bus.Write(mc.effectiveAddress(defn.AddressingMode), mc.X)
	case "STY":
		mc.bus.Write(mc.effectiveAddress(defn.AddressingMode), mc.Y)

	case "TAX":
		mc.X = mc.A
		mc.setNZ(mc.X)
	case "TAY":
		mc.Y = mc.A
		mc.setNZ(mc.Y)
	case "TXA":
		mc.A = mc.X
		mc.setNZ(mc.A)
	case "TYA":
		mc.A = mc.Y
		mc.setNZ(mc.A)
	case "TSX":
		mc.X = mc.SP
		mc.setNZ(mc.X)
	case "TXS":
		mc.SP = mc.X

	case "PHA":
		mc.push(mc.A)
	case "PLA":
		mc.A = mc.pop()
		mc.setNZ(mc.A)
	case "PHP":
		sr := mc.Status
		sr.Break = true
		mc.push(sr.Value())
	case "PLP":
		mc.Status.Load(mc.pop())

	case "ADC":
		v, _ := mc.operand(defn)
		mc.adc(v)
	case "SBC":
		v, _ := mc.operand(defn)
		mc.sbc(v)
	case "CMP":
		v, _ := mc.operand(defn)
		mc.compare(mc.A, v)
	case "CPX":
		v, _ := mc.operand(defn)
		mc.compare(mc.X, v)
	case "CPY":
		v, _ := mc.operand(defn)
		mc.compare(mc.Y, v)

	case "AND":
		v, _ := mc.operand(defn)
		mc.A &= v
		mc.setNZ(mc.A)
	case "ORA":
		v, _ := mc.operand(defn)
		mc.A |= v
		mc.setNZ(mc.A)
	case "EOR":
		v, _ := mc.operand(defn)
		mc.A ^= v
		mc.setNZ(mc.A)
	case "BIT":
		v, _ := mc.operand(defn)
		mc.Status.Sign = v&0x80 != 0
		mc.Status.Overflow = v&0x40 != 0
		mc.Status.Zero = mc.A&v == 0

	case "ASL":
		if defn.AddressingMode == instructions.Implied {
			mc.Status.Carry = mc.A&0x80 != 0
			mc.A <<= 1
			mc.setNZ(mc.A)
		} else {
			v, addr := mc.operand(defn)
			mc.Status.Carry = v&0x80 != 0
			v <<= 1
			mc.bus.Write(addr, v)
			mc.setNZ(v)
		}
	case "LSR":
		if defn.AddressingMode == instructions.Implied {
			mc.Status.Carry = mc.A&0x01 != 0
			mc.A >>= 1
			mc.setNZ(mc.A)
		} else {
			v, addr := mc.operand(defn)
			mc.Status.Carry = v&0x01 != 0
			v >>= 1
			mc.bus.Write(addr, v)
			mc.setNZ(v)
		}
	case "ROL":
		carry := mc.Status.Carry
		if defn.AddressingMode == instructions.Implied {
			mc.Status.Carry = mc.A&0x80 != 0
			mc.A <<= 1
			if carry {
				mc.A |= 0x01
			}
			mc.setNZ(mc.A)
		} else {
			v, addr := mc.operand(defn)
			mc.Status.Carry = v&0x80 != 0
			v <<= 1
			if carry {
				v |= 0x01
			}
			mc.bus.Write(addr, v)
			mc.setNZ(v)
		}
	case "ROR":
		carry := mc.Status.Carry
		if defn.AddressingMode == instructions.Implied {
			mc.Status.Carry = mc.A&0x01 != 0
			mc.A >>= 1
			if carry {
				mc.A |= 0x80
			}
			mc.setNZ(mc.A)
		} else {
			v, addr := mc.operand(defn)
			mc.Status.Carry = v&0x01 != 0
			v >>= 1
			if carry {
				v |= 0x80
			}
			mc.bus.Write(addr, v)
			mc.setNZ(v)
		}

	case "INC":
		v, addr := mc.operand(defn)
		v++
		mc.bus.Write(addr, v)
		mc.setNZ(v)
	case "DEC":
		v, addr := mc.operand(defn)
		v--
		mc.bus.Write(addr, v)
		mc.setNZ(v)
	case "INX":
		mc.X++
		mc.setNZ(mc.X)
	case "INY":
		mc.Y++
		mc.setNZ(mc.Y)
	case "DEX":
		mc.X--
		mc.setNZ(mc.X)
	case "DEY":
		mc.Y--
		mc.setNZ(mc.Y)

	case "JMP":
		mc.PC = mc.effectiveAddress(defn.AddressingMode)
	case "JSR":
		addr := mc.fetch16()
		mc.push16(mc.PC - 1)
		mc.PC = addr
	case "RTS":
		mc.PC = mc.pop16() + 1
	case "RTI":
		mc.Status.Load(mc.pop())
		mc.PC = mc.pop16()
	case "BRK":
		return curated.Errorf("cpu: BRK at %#04x", pc)

	case "BPL":
		mc.branch(!mc.Status.Sign)
	case "BMI":
		mc.branch(mc.Status.Sign)
	case "BVC":
		mc.branch(!mc.Status.Overflow)
	case "BVS":
		mc.branch(mc.Status.Overflow)
	case "BCC":
		mc.branch(!mc.Status.Carry)
	case "BCS":
		mc.branch(mc.Status.Carry)
	case "BNE":
		mc.branch(!mc.Status.Zero)
	case "BEQ":
		mc.branch(mc.Status.Zero)

	case "CLC":
		mc.Status.Carry = false
	case "SEC":
		mc.Status.Carry = true
	case "CLI":
		mc.Status.InterruptDisable = false
	case "SEI":
		mc.Status.InterruptDisable = true
	case "CLV":
		mc.Status.Overflow = false
	case "CLD":
		mc.Status.DecimalMode = false
	case "SED":
		mc.Status.DecimalMode = true

	case "NOP":
		// nothing to do

	default:
		return curated.Errorf(UndefinedOpCode, opcode, pc)
	}

	return nil
}

// Call runs the subroutine at addr until it returns. The stack is
// arranged so that the routine's final RTS lands on a sentinel address.
func (mc *CPU) Call(addr uint16) error {
	mc.push16(magicReturn - 1)
	mc.PC = addr

	for i := 0; i < maxInstructions; i++ {
		if mc.PC == magicReturn {
			return nil
		}
		if err := mc.Step(); err != nil {
			return err
		}
	}

	return curated.Errorf(RunawayExecution, maxInstructions, mc.PC)
}
