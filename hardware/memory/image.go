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

// Package memory defines the 64KB address-space image that every pipeline
// stage operates on. Alongside the raw bytes the image carries a per-byte
// provenance mask recording how each byte came to hold its value.
//
// Stages never share an image. A stage that transforms an image works on a
// Copy() of its input and hands the copy downstream, so a bug in a later
// stage can never corrupt the output of an earlier one.
package memory

import "github.com/reloc64/reloc64/curated"

// AddressSpace is the number of addressable bytes in the 6502 address space.
const AddressSpace = 0x10000

// Provenance records how a byte of the image came to hold its value.
type Provenance uint8

// The provenance values form an ordering. MarkSpan() will raise the
// provenance of a byte but never lower it; a byte marked Patched stays
// Patched.
const (
	Unset Provenance = iota
	FromSource
	Synthesized
	Patched
)

func (p Provenance) String() string {
	switch p {
	case Unset:
		return "unset"
	case FromSource:
		return "from source"
	case Synthesized:
		return "synthesized"
	case Patched:
		return "patched"
	}
	return "unknown provenance"
}

// Image is a full 6502 address space plus the provenance mask.
type Image struct {
	Data       [AddressSpace]byte
	Provenance [AddressSpace]Provenance
}

// NewImage is the preferred method of initialisation for the Image type.
func NewImage() *Image {
	return &Image{}
}

// Copy produces a new Image identical to the receiver. Pipeline stages
// that transform an image must work on a copy.
func (img *Image) Copy() *Image {
	n := &Image{}
	n.Data = img.Data
	n.Provenance = img.Provenance
	return n
}

// SetSpan copies data into the image at addr and marks its provenance. An
// error is returned if the data would run past the top of the address
// space.
func (img *Image) SetSpan(addr uint16, data []byte, p Provenance) error {
	if int(addr)+len(data) > AddressSpace {
		return curated.Errorf("memory: span of %d bytes at %#04x runs past top of address space", len(data), addr)
	}
	copy(img.Data[addr:], data)
	img.MarkSpan(addr, len(data), p)
	return nil
}

// MarkSpan raises the provenance of a run of bytes. Provenance never
// lowers; marking a Patched byte as FromSource leaves it Patched.
func (img *Image) MarkSpan(addr uint16, length int, p Provenance) {
	for i := 0; i < length && int(addr)+i < AddressSpace; i++ {
		if p > img.Provenance[int(addr)+i] {
			img.Provenance[int(addr)+i] = p
		}
	}
}

// Read16 reads a little-endian 16bit value from the image.
func (img *Image) Read16(addr uint16) uint16 {
	return uint16(img.Data[addr]) | uint16(img.Data[addr+1])<<8
}

// Write16 writes a little-endian 16bit value and marks its provenance.
func (img *Image) Write16(addr uint16, v uint16, p Provenance) {
	img.Data[addr] = byte(v)
	img.Data[addr+1] = byte(v >> 8)
	img.MarkSpan(addr, 2, p)
}
