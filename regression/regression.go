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

package regression

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/reloc64/reloc64/ansi"
	"github.com/reloc64/reloc64/curated"
	"github.com/reloc64/reloc64/database"
)

// DBFile is the default database file.
const DBFile = ".reloc64/regressionDB"

// Regressor represents the generic entry in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test. the newRegression flag records the
	// result rather than comparing it
	regress(newRegression bool) (bool, error)
}

// when starting a database session we need to register what entries we
// will find in the database.
func initDBSession(db *database.Session) error {
	return db.RegisterEntryType(traceEntryID, deserialiseTraceEntry)
}

// RegressList displays all entries in the database.
func RegressList(output io.Writer) error {
	db, err := database.StartSession(DBFile, database.ActivityReading, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressDelete removes an entry from the regression db.
func RegressDelete(output io.Writer, confirmation io.Reader, key string) error {
	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf("regression: invalid key [%s]", key)
	}

	db, err := database.StartSession(DBFile, database.ActivityModifying, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(true)

	ent, err := db.Get(v)
	if err != nil {
		return err
	}

	output.Write([]byte(fmt.Sprintf("%s\ndelete? (y/n): ", ent)))

	confirm := make([]byte, 32)
	if _, err := confirmation.Read(confirm); err != nil {
		return err
	}

	if confirm[0] == 'y' || confirm[0] == 'Y' {
		if err := db.Delete(v); err != nil {
			return err
		}
		output.Write([]byte(fmt.Sprintf("deleted test #%s from regression database\n", key)))
	}

	return nil
}

// RegressAdd adds a new regression test to the database. The test is run
// once to record the expected result.
func RegressAdd(output io.Writer, reg Regressor) error {
	if err := os.MkdirAll(filepath.Dir(DBFile), 0700); err != nil {
		return curated.Errorf("regression: %v", err)
	}

	db, err := database.StartSession(DBFile, database.ActivityCreating, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(true)

	output.Write([]byte(fmt.Sprintf("adding: %s", reg)))

	ok, err := reg.regress(true)
	if !ok || err != nil {
		output.Write([]byte(ansi.ClearLine))
		output.Write([]byte(fmt.Sprintf("\rnot added: %s\n", reg)))
		return err
	}

	output.Write([]byte(ansi.ClearLine))
	output.Write([]byte(fmt.Sprintf("\radded: %s\n", reg)))

	return db.Add(reg)
}

// RegressRun runs the tests in the regression database. An empty keys
// list means every entry.
func RegressRun(output io.Writer, verbose bool, filterKeys []string) error {
	db, err := database.StartSession(DBFile, database.ActivityReading, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	keys := make([]int, 0, len(filterKeys))
	for _, k := range filterKeys {
		v, err := strconv.Atoi(k)
		if err != nil {
			return curated.Errorf("regression: invalid key [%s]", k)
		}
		keys = append(keys, v)
	}

	numSucceed := 0
	numFail := 0
	numError := 0

	defer func() {
		output.Write([]byte(fmt.Sprintf("regression tests: %d succeed, %d fail", numSucceed, numFail)))
		if numError > 0 {
			output.Write([]byte(" [with errors]"))
		}
		output.Write([]byte("\n"))
	}()

	onSelect := func(key int, ent database.Entry) error {
		reg, ok := ent.(Regressor)
		if !ok {
			return curated.Errorf("regression: entry #%d is not a regression test", key)
		}

		output.Write([]byte(fmt.Sprintf("running: %s", reg)))

		ok, err := reg.regress(false)
		output.Write([]byte(ansi.ClearLine))

		if err != nil {
			numError++
			output.Write([]byte(fmt.Sprintf("\r  ERROR: %s\n", reg)))
			if verbose {
				output.Write([]byte(fmt.Sprintf("%s\n", err)))
			}
		} else if !ok {
			numFail++
			output.Write([]byte(fmt.Sprintf("\rfailure: %s\n", reg)))
		} else {
			numSucceed++
			output.Write([]byte(fmt.Sprintf("\rsucceed: %s\n", reg)))
		}

		return nil
	}

	_, err = db.SelectKeys(onSelect, keys...)
	return err
}
