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

package memory_test

import (
	"testing"

	"github.com/reloc64/reloc64/hardware/memory"
	"github.com/reloc64/reloc64/test"
)

func TestSetSpan(t *testing.T) {
	img := memory.NewImage()

	err := img.SetSpan(0x1000, []byte{0xa9, 0x00, 0x60}, memory.FromSource)
	test.ExpectedSuccess(t, err)

	test.Equate(t, img.Data[0x1000], 0xa9)
	test.Equate(t, img.Data[0x1002], 0x60)
	test.Equate(t, img.Provenance[0x1000] == memory.FromSource, true)
	test.Equate(t, img.Provenance[0x0fff] == memory.Unset, true)
	test.Equate(t, img.Provenance[0x1003] == memory.Unset, true)
}

func TestSetSpanBounds(t *testing.T) {
	img := memory.NewImage()

	err := img.SetSpan(0xffff, []byte{0x01, 0x02}, memory.FromSource)
	test.ExpectedFailure(t, err)

	err = img.SetSpan(0xfffe, []byte{0x01, 0x02}, memory.FromSource)
	test.ExpectedSuccess(t, err)
}

func TestProvenanceMonotonic(t *testing.T) {
	img := memory.NewImage()

	img.MarkSpan(0x1000, 4, memory.Patched)
	img.MarkSpan(0x1000, 4, memory.FromSource)

	// marking never lowers provenance
	test.Equate(t, img.Provenance[0x1000] == memory.Patched, true)

	img.MarkSpan(0x2000, 1, memory.FromSource)
	img.MarkSpan(0x2000, 1, memory.Synthesized)
	test.Equate(t, img.Provenance[0x2000] == memory.Synthesized, true)
}

func TestCopyIsolation(t *testing.T) {
	img := memory.NewImage()
	img.SetSpan(0x1000, []byte{0x11, 0x22}, memory.FromSource)

	cp := img.Copy()
	cp.Data[0x1000] = 0x99
	cp.MarkSpan(0x1000, 1, memory.Patched)

	test.Equate(t, img.Data[0x1000], 0x11)
	test.Equate(t, img.Provenance[0x1000] == memory.FromSource, true)
}

func TestReadWrite16(t *testing.T) {
	img := memory.NewImage()

	img.Write16(0x1000, 0x18da, memory.Synthesized)
	test.Equate(t, img.Data[0x1000], 0xda)
	test.Equate(t, img.Data[0x1001], 0x18)
	test.Equate(t, img.Read16(0x1000), 0x18da)
}

func TestCodeSpan(t *testing.T) {
	span, err := memory.NewCodeSpan(0x1000, 0x2000)
	test.ExpectedSuccess(t, err)

	test.Equate(t, span.End(), 0x3000)
	test.Equate(t, span.Contains(0x1000), true)
	test.Equate(t, span.Contains(0x2fff), true)
	test.Equate(t, span.Contains(0x3000), false)
	test.Equate(t, span.Contains(0x0fff), false)
	test.Equate(t, span.String(), "0x1000-0x2fff")
}

func TestCodeSpanInvariant(t *testing.T) {
	_, err := memory.NewCodeSpan(0xf000, 0x2000)
	test.ExpectedFailure(t, err)

	// a span ending exactly at the top of the address space is fine
	span, err := memory.NewCodeSpan(0xf000, 0x1000)
	test.ExpectedSuccess(t, err)
	test.Equate(t, span.End(), 0x10000)
}
