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

package tracewriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reloc64/reloc64/hardware/sid"
	"github.com/reloc64/reloc64/test"
	"github.com/reloc64/reloc64/tracewriter"
)

func TestWriteWAV(t *testing.T) {
	// a gated tone on voice 1 for the first half of the trace
	tr := sid.Trace{
		{Frame: 0, Register: sid.VoiceReg(0, sid.FreqLo), Value: 0x00},
		{Frame: 0, Register: sid.VoiceReg(0, sid.FreqHi), Value: 0x1c},
		{Frame: 0, Register: sid.VoiceReg(0, sid.Control), Value: 0x11},
		{Frame: 25, Register: sid.VoiceReg(0, sid.Control), Value: 0x10},
	}

	path := filepath.Join(t.TempDir(), "trace.wav")
	err := tracewriter.WriteWAV(path, tr, 50)
	test.ExpectedSuccess(t, err)

	data, err := os.ReadFile(path)
	test.ExpectedSuccess(t, err)

	// RIFF/WAVE container with one second of mono 16-bit samples
	test.Equate(t, string(data[0:4]), "RIFF")
	test.Equate(t, string(data[8:12]), "WAVE")
	if len(data) < 44100*2 {
		t.Errorf("wav file too short: %d bytes", len(data))
	}
}

func TestWriteWAVBadPath(t *testing.T) {
	err := tracewriter.WriteWAV(filepath.Join(t.TempDir(), "no", "such", "dir.wav"), sid.Trace{}, 1)
	test.ExpectedFailure(t, err)
}
