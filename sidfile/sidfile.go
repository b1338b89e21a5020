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

// Package sidfile reads the source container (PSID) and writes the
// produced image out as a plain PRG. Header parsing is fixed-offset field
// reads; the conversion core trusts the values as-is.
package sidfile

import (
	"bytes"
	"encoding/binary"

	"github.com/reloc64/reloc64/curated"
	"github.com/reloc64/reloc64/hardware/memory"
)

// NotASIDFile is the pattern for data that is not a SID container at all.
const NotASIDFile = "sidfile: not a SID file: %v"

// CorruptSIDFile is the pattern for a SID container with an impossible
// header.
const CorruptSIDFile = "sidfile: corrupt: %v"

// the smallest header any PSID version carries.
const minHeaderSize = 0x76

// Header is the metadata of a source container.
type Header struct {
	Magic      string
	Version    uint16
	CodeOffset uint16

	LoadAddress uint16
	InitAddress uint16
	PlayAddress uint16

	// CodeLength is not a header field; it is the number of data bytes
	// that followed the header
	CodeLength uint16

	Songs     uint16
	StartSong uint16

	Title    string
	Author   string
	Released string
}

func field(data []byte, offset int) string {
	s := data[offset : offset+32]
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return string(s)
}

// Parse reads a PSID/RSID container. The music data is placed in a fresh
// image at the load address with FromSource provenance.
func Parse(data []byte) (Header, *memory.Image, error) {
	if len(data) < minHeaderSize {
		return Header{}, nil, curated.Errorf(NotASIDFile, "too short for any header version")
	}

	magic := string(data[0:4])
	if magic != "PSID" && magic != "RSID" {
		return Header{}, nil, curated.Errorf(NotASIDFile, "bad magic")
	}

	hdr := Header{
		Magic:       magic,
		Version:     binary.BigEndian.Uint16(data[0x04:]),
		CodeOffset:  binary.BigEndian.Uint16(data[0x06:]),
		LoadAddress: binary.BigEndian.Uint16(data[0x08:]),
		InitAddress: binary.BigEndian.Uint16(data[0x0a:]),
		PlayAddress: binary.BigEndian.Uint16(data[0x0c:]),
		Songs:       binary.BigEndian.Uint16(data[0x0e:]),
		StartSong:   binary.BigEndian.Uint16(data[0x10:]),
		Title:       field(data, 0x16),
		Author:      field(data, 0x36),
		Released:    field(data, 0x56),
	}

	if int(hdr.CodeOffset) >= len(data) {
		return Header{}, nil, curated.Errorf(CorruptSIDFile, "data offset beyond end of file")
	}

	code := data[hdr.CodeOffset:]

	// a zero load address means the first two bytes of the data are the
	// load address, PRG style
	if hdr.LoadAddress == 0 {
		if len(code) < 2 {
			return Header{}, nil, curated.Errorf(CorruptSIDFile, "no embedded load address")
		}
		hdr.LoadAddress = binary.LittleEndian.Uint16(code)
		code = code[2:]
	}

	if int(hdr.LoadAddress)+len(code) > memory.AddressSpace {
		return Header{}, nil, curated.Errorf(CorruptSIDFile, "data runs past top of address space")
	}
	hdr.CodeLength = uint16(len(code))

	img := memory.NewImage()
	if err := img.SetSpan(hdr.LoadAddress, code, memory.FromSource); err != nil {
		return Header{}, nil, curated.Errorf(CorruptSIDFile, err)
	}

	return hdr, img, nil
}

// WritePRG serializes a span of the image as a PRG: little-endian load
// address followed by the raw bytes. This is where the core's output
// contract ends; a byte-correct image and the address it loads at.
func WritePRG(img *memory.Image, span memory.CodeSpan) []byte {
	out := make([]byte, 0, int(span.Length)+2)
	out = append(out, byte(span.Start), byte(span.Start>>8))
	out = append(out, img.Data[span.Start:span.End()]...)
	return out
}
