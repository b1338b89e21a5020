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

package convert

import (
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/reloc64/reloc64/curated"
)

// Dump writes the job's structure as a graphviz dot file. Developer aid
// for when a conversion goes wrong in a non-obvious way; the graph shows
// every rewrite, patch and table error the pipeline recorded.
func (j *Job) Dump(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(BadJob, err)
	}
	defer f.Close()

	// the memory images are too large to graph usefully
	d := *j
	d.source = nil
	d.Output = nil

	memviz.Map(f, &d)
	return nil
}
