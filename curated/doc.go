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

// Package curated is the error type used throughout Reloc64. A curated
// error keeps its format pattern alongside the formatted values, so that
// callers can test for a class of error with the Is() and Has() functions
// without string comparison of the final message.
//
// Packages that want a testable error declare the pattern as a package
// level constant. For example:
//
//	const ShapeMismatch = "transcode: shape mismatch: %v"
//
//	return curated.Errorf(ShapeMismatch, detail)
//
// and a caller interested in that condition:
//
//	if curated.Has(err, tables.ShapeMismatch) {
//		...
//	}
package curated
