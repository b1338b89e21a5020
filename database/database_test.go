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

package database_test

import (
	"path/filepath"
	"testing"

	"github.com/reloc64/reloc64/database"
	"github.com/reloc64/reloc64/test"
)

type noteEntry struct {
	text string
}

func (e noteEntry) ID() string {
	return "note"
}

func (e noteEntry) String() string {
	return e.text
}

func (e noteEntry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{e.text}, nil
}

func (e noteEntry) CleanUp() error {
	return nil
}

func registerNote(db *database.Session) error {
	return db.RegisterEntryType("note", func(fields []string) (database.Entry, error) {
		return noteEntry{text: fields[0]}, nil
	})
}

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(path, database.ActivityCreating, registerNote)
	test.ExpectedSuccess(t, err)

	test.ExpectedSuccess(t, db.Add(noteEntry{text: "first"}))
	test.ExpectedSuccess(t, db.Add(noteEntry{text: "second"}))
	test.Equate(t, db.NumEntries(), 2)

	test.ExpectedSuccess(t, db.EndSession(true))

	// reopen and check the entries survived
	db, err = database.StartSession(path, database.ActivityReading, registerNote)
	test.ExpectedSuccess(t, err)
	defer db.EndSession(false)

	test.Equate(t, db.NumEntries(), 2)

	ent, err := db.Get(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ent.String(), "first")

	ent, err = db.Get(1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ent.String(), "second")

	_, err = db.Get(99)
	test.ExpectedFailure(t, err)
}

func TestSessionDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(path, database.ActivityCreating, registerNote)
	test.ExpectedSuccess(t, err)

	test.ExpectedSuccess(t, db.Add(noteEntry{text: "keep"}))
	test.ExpectedSuccess(t, db.Add(noteEntry{text: "drop"}))
	test.ExpectedSuccess(t, db.Delete(1))
	test.ExpectedSuccess(t, db.EndSession(true))

	db, err = database.StartSession(path, database.ActivityReading, registerNote)
	test.ExpectedSuccess(t, err)
	defer db.EndSession(false)

	test.Equate(t, db.NumEntries(), 1)

	ent, err := db.Get(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ent.String(), "keep")
}

func TestSessionCommitToReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(path, database.ActivityCreating, registerNote)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, db.EndSession(true))

	db, err = database.StartSession(path, database.ActivityReading, registerNote)
	test.ExpectedSuccess(t, err)

	err = db.EndSession(true)
	test.ExpectedFailure(t, err)
}

func TestList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(path, database.ActivityCreating, registerNote)
	test.ExpectedSuccess(t, err)
	defer db.EndSession(false)

	cmp := &test.CompareWriter{}

	test.ExpectedSuccess(t, db.List(cmp))
	test.Equate(t, cmp.Compare("database is empty\n"), true)
	cmp.Clear()

	test.ExpectedSuccess(t, db.Add(noteEntry{text: "first"}))
	test.ExpectedSuccess(t, db.Add(noteEntry{text: "second"}))

	test.ExpectedSuccess(t, db.List(cmp))
	test.Equate(t, cmp.Compare("000 first\n001 second\nTotal: 2\n"), true)
}

func TestUnrecognisedEntryType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(path, database.ActivityCreating, registerNote)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, db.Add(noteEntry{text: "first"}))
	test.ExpectedSuccess(t, db.EndSession(true))

	// reopening without registering the entry type fails
	_, err = database.StartSession(path, database.ActivityReading, func(db *database.Session) error {
		return nil
	})
	test.ExpectedFailure(t, err)
}
