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

// SelectAll entries in the database in key order. onSelect can be nil.
//
// Iteration stops at the first error from onSelect; the error is returned
// along with the entry that caused it.
func (db Session) SelectAll(onSelect func(int, Entry) error) (Entry, error) {
	var entry Entry

	if onSelect == nil {
		onSelect = func(_ int, _ Entry) error { return nil }
	}

	for _, key := range db.SortedKeyList() {
		entry = db.entries[key]
		if err := onSelect(key, entry); err != nil {
			return entry, err
		}
	}

	return entry, nil
}

// SelectKeys matches entries with the specified key(s). An empty keys list
// matches every entry. onSelect can be nil.
func (db Session) SelectKeys(onSelect func(int, Entry) error, keys ...int) (Entry, error) {
	if len(keys) == 0 {
		return db.SelectAll(onSelect)
	}

	var entry Entry

	if onSelect == nil {
		onSelect = func(_ int, _ Entry) error { return nil }
	}

	for _, key := range keys {
		ent, err := db.Get(key)
		if err != nil {
			return entry, err
		}
		entry = ent
		if err := onSelect(key, entry); err != nil {
			return entry, err
		}
	}

	return entry, nil
}
