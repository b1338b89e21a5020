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

package logger_test

import (
	"strings"
	"testing"

	"github.com/reloc64/reloc64/ansi"
	"github.com/reloc64/reloc64/logger"
	"github.com/reloc64/reloc64/test"
)

func TestColorizerSingleLine(t *testing.T) {
	cmp := &test.CompareWriter{}
	col := logger.NewColorizer(cmp)

	_, err := col.Write([]byte("convert: one line\n"))
	test.ExpectedSuccess(t, err)

	// single-line entries pass through with no pen changes
	test.Equate(t, cmp.Compare("convert: one line\n"), true)
}

func TestColorizerContinuationLines(t *testing.T) {
	cmp := &test.CompareWriter{}
	col := logger.NewColorizer(cmp)

	_, err := col.Write([]byte("convert: first\nsecond\nthird\n"))
	test.ExpectedSuccess(t, err)

	s := cmp.String()

	// the first line is plain, continuation lines are dimmed and the pen
	// is restored afterwards
	if !strings.HasPrefix(s, "convert: first\n"+ansi.DimPens["red"]) {
		t.Errorf("continuation lines not dimmed: %q", s)
	}
	if !strings.HasSuffix(s, "third\n"+ansi.NormalPen) {
		t.Errorf("pen not restored after entry: %q", s)
	}
}

func TestColorizerEcho(t *testing.T) {
	cmp := &test.CompareWriter{}
	logger.SetEcho(logger.NewColorizer(cmp))
	defer logger.SetEcho(nil)

	logger.Log("tag", "detail")

	if !strings.Contains(cmp.String(), "tag: detail") {
		t.Errorf("echo did not pass through the colorizer: %q", cmp.String())
	}
}
