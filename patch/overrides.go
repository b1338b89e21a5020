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

package patch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reloc64/reloc64/curated"
	"github.com/reloc64/reloc64/tables"
)

// BadOverride is the pattern for an override list that cannot be parsed.
const BadOverride = "patch: override: %v"

// ReadOverrides parses an operator-supplied list of patch sites, one per
// line:
//
//	<file offset> <expected value> <table>
//
// Offsets and values are hex, with or without a leading $ or 0x marker.
// The table name matches the tables.ID String() form. Blank lines and
// lines starting with '#' are skipped.
func ReadOverrides(input io.Reader) ([]Override, error) {
	var overrides []Override

	scanner := bufio.NewScanner(input)
	num := 0
	for scanner.Scan() {
		num++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, curated.Errorf(BadOverride, fmt.Sprintf("line %d: three fields required", num))
		}

		off, err := parseHex16(fields[0])
		if err != nil {
			return nil, curated.Errorf(BadOverride, fmt.Sprintf("line %d: %v", num, err))
		}

		old, err := parseHex16(fields[1])
		if err != nil {
			return nil, curated.Errorf(BadOverride, fmt.Sprintf("line %d: %v", num, err))
		}

		id, ok := tables.ParseID(fields[2])
		if !ok {
			return nil, curated.Errorf(BadOverride, fmt.Sprintf("line %d: unknown table [%s]", num, fields[2]))
		}

		overrides = append(overrides, Override{FileOffset: off, OldValue: old, Table: id})
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(BadOverride, err)
	}

	return overrides, nil
}

func parseHex16(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "0x"), "$")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address [%s]", s)
	}
	return uint16(v), nil
}
