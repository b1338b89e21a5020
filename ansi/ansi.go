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

// Package ansi defines the small set of ANSI control sequences used when
// echoing the log and the conversion report to a terminal.
package ansi

import "fmt"

// ansi color.
const (
	colBlack   = 0
	colRed     = 1
	colGreen   = 2
	colYellow  = 3
	colBlue    = 4
	colMagenta = 5
	colCyan    = 6
	colWhite   = 7
	colDefault = 9
)

// ansi target.
const (
	targetPen       = 3
	targetBrightPen = 9
)

// ClearLine is the CSI sequence to clear the entire of the current line.
const ClearLine = "\033[2K"

// Pens is the table of colors to be used for text.
var Pens map[string]string

// DimPens is the table of dimmed colors to be used for text.
var DimPens map[string]string

// NormalPen is the CSI sequence for regular text.
var NormalPen string

func pen(target, col int) string {
	return fmt.Sprintf("\033[%d%dm", target, col)
}

func init() {
	NormalPen = "\033[0m"

	Pens = make(map[string]string)
	DimPens = make(map[string]string)

	for c, n := range map[string]int{
		"black":   colBlack,
		"red":     colRed,
		"green":   colGreen,
		"yellow":  colYellow,
		"blue":    colBlue,
		"magenta": colMagenta,
		"cyan":    colCyan,
		"white":   colWhite,
		"default": colDefault,
	} {
		Pens[c] = pen(targetBrightPen, n)
		DimPens[c] = pen(targetPen, n)
	}
}
