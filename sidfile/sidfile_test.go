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

package sidfile_test

import (
	"testing"

	"github.com/reloc64/reloc64/curated"
	"github.com/reloc64/reloc64/hardware/memory"
	"github.com/reloc64/reloc64/sidfile"
	"github.com/reloc64/reloc64/test"
)

// builds a v2 PSID container around the supplied code bytes. a zero load
// address leaves the address embedded in the code bytes, PRG style.
func testContainer(load uint16, code []byte) []byte {
	data := make([]byte, 0x7c)
	copy(data, "PSID")

	data[0x05] = 2    // version
	data[0x07] = 0x7c // data offset

	data[0x08] = byte(load >> 8)
	data[0x09] = byte(load)
	data[0x0a] = 0x10 // init $1000
	data[0x0b] = 0x00
	data[0x0c] = 0x10 // play $1003
	data[0x0d] = 0x03
	data[0x0f] = 1 // songs
	data[0x11] = 1 // start song

	copy(data[0x16:], "Commando")
	copy(data[0x36:], "Rob Hubbard")
	copy(data[0x56:], "1985 Elite")

	return append(data, code...)
}

func TestParse(t *testing.T) {
	code := []byte{0xa9, 0x00, 0x60}
	hdr, img, err := sidfile.Parse(testContainer(0x1000, code))
	test.ExpectedSuccess(t, err)

	test.Equate(t, hdr.Magic, "PSID")
	test.Equate(t, hdr.Version, 2)
	test.Equate(t, hdr.CodeOffset, 0x7c)
	test.Equate(t, hdr.LoadAddress, 0x1000)
	test.Equate(t, hdr.InitAddress, 0x1000)
	test.Equate(t, hdr.PlayAddress, 0x1003)
	test.Equate(t, hdr.CodeLength, 3)
	test.Equate(t, hdr.Songs, 1)
	test.Equate(t, hdr.StartSong, 1)
	test.Equate(t, hdr.Title, "Commando")
	test.Equate(t, hdr.Author, "Rob Hubbard")
	test.Equate(t, hdr.Released, "1985 Elite")

	test.Equate(t, img.Data[0x1000], 0xa9)
	test.Equate(t, img.Data[0x1002], 0x60)
	test.Equate(t, img.Provenance[0x1000] == memory.FromSource, true)
	test.Equate(t, img.Provenance[0x1003] == memory.Unset, true)
}

func TestParseEmbeddedLoadAddress(t *testing.T) {
	// load address zero in the header; the real address leads the code
	code := []byte{0x00, 0x20, 0xa9, 0x00, 0x60}
	hdr, img, err := sidfile.Parse(testContainer(0, code))
	test.ExpectedSuccess(t, err)

	test.Equate(t, hdr.LoadAddress, 0x2000)
	test.Equate(t, hdr.CodeLength, 3)
	test.Equate(t, img.Data[0x2000], 0xa9)
}

func TestParseNotASIDFile(t *testing.T) {
	_, _, err := sidfile.Parse([]byte("GIF89a"))
	test.ExpectedFailure(t, err)
	if !curated.Is(err, sidfile.NotASIDFile) {
		t.Errorf("expected not-a-SID-file error, got: %v", err)
	}

	data := testContainer(0x1000, []byte{0x60})
	copy(data, "MIDI")
	_, _, err = sidfile.Parse(data)
	test.ExpectedFailure(t, err)
	if !curated.Is(err, sidfile.NotASIDFile) {
		t.Errorf("expected not-a-SID-file error, got: %v", err)
	}
}

func TestParseCorrupt(t *testing.T) {
	// data offset beyond the end of the file
	data := testContainer(0x1000, nil)
	_, _, err := sidfile.Parse(data)
	test.ExpectedFailure(t, err)
	if !curated.Is(err, sidfile.CorruptSIDFile) {
		t.Errorf("expected corrupt error, got: %v", err)
	}

	// data running past the top of the address space
	data = testContainer(0xfffe, []byte{0xa9, 0x00, 0x60})
	_, _, err = sidfile.Parse(data)
	test.ExpectedFailure(t, err)
	if !curated.Is(err, sidfile.CorruptSIDFile) {
		t.Errorf("expected corrupt error, got: %v", err)
	}
}

func TestWritePRG(t *testing.T) {
	img := memory.NewImage()
	img.SetSpan(0x4000, []byte{0x4c, 0x09, 0x40}, memory.FromSource)

	prg := sidfile.WritePRG(img, memory.CodeSpan{Start: 0x4000, Length: 3})

	test.Equate(t, len(prg), 5)
	test.Equate(t, prg[0], 0x00)
	test.Equate(t, prg[1], 0x40)
	test.Equate(t, prg[2], 0x4c)
	test.Equate(t, prg[4], 0x40)
}
