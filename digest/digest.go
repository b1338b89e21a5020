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

// Package digest reduces a register trace to a hash suitable for
// regression comparison. Two traces with the same digest played the same
// registers with the same values on the same frames.
package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/reloc64/reloc64/hardware/sid"
)

// Trace returns the hex digest of a register trace. The frame number is
// hashed along with each write so that identical writes on different
// frames produce different digests.
func Trace(t sid.Trace) string {
	h := sha1.New()
	buf := make([]byte, 4)
	for _, ev := range t {
		buf[0] = byte(ev.Frame)
		buf[1] = byte(ev.Frame >> 8)
		buf[2] = byte(ev.Register)
		buf[3] = ev.Value
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
