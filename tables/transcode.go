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

package tables

import (
	"fmt"

	"github.com/reloc64/reloc64/curated"
)

// ShapeMismatch is the pattern for transcoding preconditions: the two
// descriptors do not describe the same number and width of values.
const ShapeMismatch = "transcode: shape mismatch: %v"

// ShortData is the pattern for a source byte slice smaller than the
// source descriptor claims.
const ShortData = "transcode: short data: %v"

// Transcode converts table bytes laid out as described by from into a new
// byte slice laid out as described by to. The conversion is value
// preserving: value k of element i in the output equals value k of
// element i in the input, whatever the two layouts.
//
// Both descriptors must agree on element count, element width and array
// count. Gap bytes introduced by a target stride are zero.
func Transcode(data []byte, from Descriptor, to Descriptor) ([]byte, error) {
	if from.ElementCount != to.ElementCount {
		return nil, curated.Errorf(ShapeMismatch,
			fmt.Sprintf("%s: %d elements -> %d elements", from.Table, from.ElementCount, to.ElementCount))
	}
	if from.Layout.ElementWidth != to.Layout.ElementWidth {
		return nil, curated.Errorf(ShapeMismatch,
			fmt.Sprintf("%s: element width %d -> %d", from.Table, from.Layout.ElementWidth, to.Layout.ElementWidth))
	}
	if from.Layout.ArrayCount != to.Layout.ArrayCount {
		return nil, curated.Errorf(ShapeMismatch,
			fmt.Sprintf("%s: %d arrays -> %d arrays", from.Table, from.Layout.ArrayCount, to.Layout.ArrayCount))
	}
	if len(data) < from.ByteSize() {
		return nil, curated.Errorf(ShortData,
			fmt.Sprintf("%s: have %d bytes, layout needs %d", from.Table, len(data), from.ByteSize()))
	}

	// identity fast path. shape has already been validated
	if from.Layout == to.Layout {
		out := make([]byte, to.ByteSize())
		copy(out, data)
		return out, nil
	}

	out := make([]byte, to.ByteSize())
	w := int(from.Layout.ElementWidth)

	for i := 0; i < from.ElementCount; i++ {
		for k := 0; k < int(from.Layout.ArrayCount); k++ {
			src := from.offset(i, k)
			dst := to.offset(i, k)
			copy(out[dst:dst+w], data[src:src+w])
		}
	}

	return out, nil
}
