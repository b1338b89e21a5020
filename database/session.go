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

package database

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/reloc64/reloc64/curated"
)

// Activity is used to specify the general activity of the database session.
type Activity int

// Valid activities.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

// Session keeps track of a database session.
type Session struct {
	dbfile   *os.File
	activity Activity

	entries    map[int]Entry
	entryTypes map[string]deserialiser
}

// StartSession starts/initialises a new DB session. The init argument is
// the function to call once the database file has been opened, before any
// entries are read.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		activity:   activity,
		entryTypes: make(map[string]deserialiser),
	}

	flags := os.O_RDONLY
	if activity != ActivityReading {
		flags = os.O_RDWR
		if activity == ActivityCreating {
			flags |= os.O_CREATE
		}
	}

	var err error
	db.dbfile, err = os.OpenFile(path, flags, 0600)
	if err != nil {
		return nil, curated.Errorf("database: %v", err)
	}

	// closing of db.dbfile requires a call to EndSession()

	if err := init(db); err != nil {
		return nil, err
	}

	if err := db.readDBFile(); err != nil {
		return nil, err
	}

	return db, nil
}

// EndSession closes the database.
func (db *Session) EndSession(commitChanges bool) error {
	if commitChanges {
		if db.activity == ActivityReading {
			return curated.Errorf("database: cannot commit to a read-only session")
		}

		if err := db.dbfile.Truncate(0); err != nil {
			return curated.Errorf("database: %v", err)
		}
		if _, err := db.dbfile.Seek(0, io.SeekStart); err != nil {
			return curated.Errorf("database: %v", err)
		}

		for _, key := range db.SortedKeyList() {
			ent := db.entries[key]

			ser, err := ent.Serialise()
			if err != nil {
				return err
			}

			s := strings.Builder{}
			s.WriteString(recordHeader(key, ent.ID()))
			for i := 0; i < len(ser); i++ {
				s.WriteString(fieldSep)
				s.WriteString(ser[i])
			}
			s.WriteString(entrySep)

			if _, err := db.dbfile.WriteString(s.String()); err != nil {
				return curated.Errorf("database: %v", err)
			}
		}
	}

	if db.dbfile != nil {
		err := db.dbfile.Close()
		db.dbfile = nil
		if err != nil {
			return curated.Errorf("database: %v", err)
		}
	}

	return nil
}

func (db *Session) readDBFile() error {
	// clobbers the contents of db.entries
	db.entries = make(map[int]Entry, len(db.entries))

	if _, err := db.dbfile.Seek(0, io.SeekStart); err != nil {
		return curated.Errorf("database: %v", err)
	}

	buffer, err := io.ReadAll(db.dbfile)
	if err != nil {
		return curated.Errorf("database: %v", err)
	}

	lines := strings.Split(string(buffer), entrySep)

	for i := 0; i < len(lines); i++ {
		lines[i] = strings.TrimSpace(lines[i])
		if len(lines[i]) == 0 {
			continue
		}

		fields := strings.Split(lines[i], fieldSep)
		if len(fields) < numLeaderFields {
			return curated.Errorf("database: %v", fmt.Sprintf("truncated entry at line %d", i+1))
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return curated.Errorf("database: %v", fmt.Sprintf("invalid key [%s] at line %d", fields[leaderFieldKey], i+1))
		}

		if _, ok := db.entries[key]; ok {
			return curated.Errorf("database: %v", fmt.Sprintf("duplicate key [%d] at line %d", key, i+1))
		}

		init, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return curated.Errorf("database: %v", fmt.Sprintf("unrecognised entry type [%s]", fields[leaderFieldID]))
		}

		ent, err := init(fields[numLeaderFields:])
		if err != nil {
			return err
		}

		db.entries[key] = ent
	}

	return nil
}

// SortedKeyList returns a sorted list of database keys.
func (db Session) SortedKeyList() []int {
	keyList := make([]int, 0, len(db.entries))
	for k := range db.entries {
		keyList = append(keyList, k)
	}
	sort.Ints(keyList)
	return keyList
}
