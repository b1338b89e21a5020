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

package convert_test

import (
	"strings"
	"testing"

	"github.com/reloc64/reloc64/convert"
	"github.com/reloc64/reloc64/curated"
	"github.com/reloc64/reloc64/hardware"
	"github.com/reloc64/reloc64/hardware/memory"
	"github.com/reloc64/reloc64/playerid"
	"github.com/reloc64/reloc64/test"
)

// testPlayerCode builds a minimal player with the Future Composer table
// layout: init sets the volume, play reads the first wave table entry and
// writes it to the voice 1 frequency register.
//
// the code region between the routines and the tables is zero filled,
// which decodes as one-byte instructions; nothing in it carries an
// absolute operand that the relocator or the patch scanner could
// misread.
func testPlayerCode() []byte {
	code := make([]byte, 0x940)

	// jump table at the load address
	copy(code[0x00:], []byte{0x4c, 0x10, 0x10}) // JMP $1010 (init)
	copy(code[0x03:], []byte{0x4c, 0x20, 0x10}) // JMP $1020 (play)

	// init
	copy(code[0x10:], []byte{
		0xa9, 0x0f, // LDA #$0F
		0x8d, 0x18, 0xd4, // STA $D418
		0x60, // RTS
	})

	// play
	copy(code[0x20:], []byte{
		0xad, 0x80, 0x17, // LDA $1780 (wave table)
		0x8d, 0x00, 0xd4, // STA $D400
		0x60, // RTS
	})

	// first wave table entry
	code[0x780] = 0x42

	return code
}

// testContainer wraps the player code in a v2 PSID header loading at
// $1000 with init $1000 and play $1003.
func testContainer(code []byte) []byte {
	data := make([]byte, 0x7c)
	copy(data, "PSID")

	data[0x05] = 2    // version
	data[0x07] = 0x7c // data offset
	data[0x08] = 0x10 // load $1000
	data[0x0a] = 0x10 // init $1000
	data[0x0c] = 0x10 // play $1003
	data[0x0d] = 0x03
	data[0x0f] = 1 // songs
	data[0x11] = 1 // start song

	copy(data[0x16:], "Test Tune")
	copy(data[0x36:], "Nobody")
	copy(data[0x56:], "2026")

	return append(data, code...)
}

func registerTestPlayer(t *testing.T, code []byte) {
	t.Helper()
	img := memory.NewImage()
	if err := img.SetSpan(0x1000, code, memory.FromSource); err != nil {
		t.Fatal(err)
	}
	playerid.Register(playerid.Fingerprint(img, 0x1000), playerid.FutureComposer)
}

func TestConvert(t *testing.T) {
	code := testPlayerCode()
	registerTestPlayer(t, code)

	job, err := convert.NewJob("test.sid", testContainer(code),
		convert.Options{TargetLoad: 0x4000, Frames: 10})
	test.ExpectedSuccess(t, err)
	test.Equate(t, job.Kind == playerid.FutureComposer, true)
	test.Equate(t, job.Header.Title, "Test Tune")

	err = job.Run(hardware.NewTracer())
	test.ExpectedSuccess(t, err)
	test.Equate(t, job.Produced(), true)

	// the two jump table entries and the wave table load
	test.Equate(t, len(job.Rewrites), 3)

	// one table reference redirected at the packed target area
	test.Equate(t, job.Patches.Applied, 1)
	test.Equate(t, job.Patches.Clean(), true)
	test.Equate(t, len(job.Unmapped), 0)
	test.Equate(t, len(job.TableErrors), 0)

	out := job.Output

	// the dispatch stub jumps at the relocated entry points. the player
	// moved by $4000 + stub size - $1000 = $3014
	test.Equate(t, out.Data[0x4000], 0x4c)
	test.Equate(t, out.Read16(0x4001), 0x4014)
	test.Equate(t, out.Read16(0x4004), 0x4017)

	// the relocated jump table forwards to the moved routines
	test.Equate(t, out.Read16(0x4015), 0x4024)
	test.Equate(t, out.Read16(0x4018), 0x4034)

	// the play routine's wave table load was first relocated and then
	// patched to the packed table area after the player ($4954 + 128
	// bytes of instruments)
	test.Equate(t, out.Data[0x4034], 0xad)
	test.Equate(t, out.Read16(0x4035), 0x49d4)
	test.Equate(t, out.Provenance[0x4035] == memory.Patched, true)

	// the transcoded wave table content
	test.Equate(t, out.Data[0x49d4], 0x42)
	test.Equate(t, out.Provenance[0x49d4] == memory.Synthesized, true)

	// stub through player through packed tables
	test.Equate(t, job.OutputSpan.Start, 0x4000)
	test.Equate(t, job.OutputSpan.Length, 0x0b94)

	// the converted player plays back identically
	if job.Report == nil {
		t.Fatal("expected a validation report")
	}
	test.Equate(t, job.Report.OverallMatch, float32(1.0))
	test.Equate(t, job.Report.PlayerMalfunction, false)
	test.Equate(t, job.Validated(), true)

	if !strings.Contains(job.Summary(), "produced and validated") {
		t.Errorf("unexpected summary: %s", job.Summary())
	}
}

func TestConvertWithoutValidation(t *testing.T) {
	code := testPlayerCode()
	registerTestPlayer(t, code)

	job, err := convert.NewJob("test.sid", testContainer(code),
		convert.Options{TargetLoad: 0x4000})
	test.ExpectedSuccess(t, err)

	err = job.Run(hardware.NewTracer())
	test.ExpectedSuccess(t, err)

	// zero frames means produced is the best the job can do
	test.Equate(t, job.Produced(), true)
	test.Equate(t, job.Validated(), false)
	if job.Report != nil {
		t.Error("expected no validation report")
	}

	if !strings.Contains(job.Summary(), "not validated") {
		t.Errorf("unexpected summary: %s", job.Summary())
	}
}

func TestNewJobUnknownPlayer(t *testing.T) {
	// an unregistered fingerprint is a hard error; relocating an
	// unidentified player would be guesswork
	code := make([]byte, 0x940)
	copy(code, []byte{0xa9, 0x00, 0x60})

	_, err := convert.NewJob("test.sid", testContainer(code), convert.Options{TargetLoad: 0x4000})
	test.ExpectedFailure(t, err)
	if !curated.Is(err, convert.BadJob) {
		t.Errorf("expected bad job error, got: %v", err)
	}
}

func TestNewJobBadTarget(t *testing.T) {
	code := testPlayerCode()
	registerTestPlayer(t, code)

	// the player would run off the top of the address space
	_, err := convert.NewJob("test.sid", testContainer(code), convert.Options{TargetLoad: 0xf800})
	test.ExpectedFailure(t, err)
	if !curated.Is(err, convert.BadJob) {
		t.Errorf("expected bad job error, got: %v", err)
	}
}
