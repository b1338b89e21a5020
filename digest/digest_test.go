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

package digest_test

import (
	"testing"

	"github.com/reloc64/reloc64/digest"
	"github.com/reloc64/reloc64/hardware/sid"
	"github.com/reloc64/reloc64/test"
)

func TestTrace(t *testing.T) {
	a := sid.Trace{
		{Frame: 0, Register: 24, Value: 0x0f},
		{Frame: 1, Register: 0, Value: 0x10},
	}
	b := sid.Trace{
		{Frame: 0, Register: 24, Value: 0x0f},
		{Frame: 1, Register: 0, Value: 0x10},
	}

	// equal traces digest equally
	test.Equate(t, digest.Trace(a), digest.Trace(b))

	// sha1 in hex
	test.Equate(t, len(digest.Trace(a)), 40)
}

func TestTraceSensitivity(t *testing.T) {
	base := sid.Trace{{Frame: 1, Register: 0, Value: 0x10}}

	// any field change produces a different digest
	frame := sid.Trace{{Frame: 2, Register: 0, Value: 0x10}}
	register := sid.Trace{{Frame: 1, Register: 1, Value: 0x10}}
	value := sid.Trace{{Frame: 1, Register: 0, Value: 0x11}}

	d := digest.Trace(base)
	for _, other := range []sid.Trace{frame, register, value} {
		if digest.Trace(other) == d {
			t.Errorf("digest failed to distinguish trace %v from %v", other, base)
		}
	}
}

func TestTraceEmpty(t *testing.T) {
	// the empty trace has a digest too; it is the sha1 of no bytes
	test.Equate(t, digest.Trace(nil), "da39a3ee5e6b4b0d3255bfef95601890afd80709")
}
