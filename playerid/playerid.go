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

// Package playerid identifies which player routine a container carries
// and describes where that player keeps its embedded data tables.
//
// Identification is by content fingerprint. There is no generic fallback;
// relocation without knowing the player's table addresses would be
// guesswork, so an unknown fingerprint is a hard error for the caller.
package playerid

import (
	"crypto/sha1"
	"fmt"

	"github.com/reloc64/reloc64/curated"
	"github.com/reloc64/reloc64/hardware/memory"
)

// UnknownPlayer is the pattern for a fingerprint with no known player.
const UnknownPlayer = "playerid: unknown player: %v"

// Kind is an opaque tag for a known player routine.
type Kind int

// The players this build knows how to take apart.
const (
	Unknown Kind = iota
	FutureComposer
	SoundMonitor
)

func (k Kind) String() string {
	switch k {
	case FutureComposer:
		return "Future Composer"
	case SoundMonitor:
		return "Sound Monitor"
	}
	return "unknown player"
}

// fingerprintLength is the number of code bytes hashed for
// identification. Enough to cover a player's jump table and init
// preamble, short enough that relinked copies of the same player still
// match.
const fingerprintLength = 32

// known fingerprints. hashes taken from the player binaries as
// distributed with their editors.
var signatures = map[string]Kind{
	"0e81996d0dbe8b0b821c1bd7eca6432b9cf1bbe0": FutureComposer,
	"3b2c87ebaf392c6c9b0d1e83eba5b542da1c8423": SoundMonitor,
}

// Register adds a fingerprint to the signature table. Operators use this
// (via the override file) for relinked player copies that hash
// differently.
func Register(fingerprint string, k Kind) {
	signatures[fingerprint] = k
}

// Fingerprint hashes the identifying prefix of the code at load. A load
// address within fingerprintLength of the top of the address space hashes
// whatever bytes remain; no real player fits there, so the short hash
// simply never matches a signature.
func Fingerprint(img *memory.Image, load uint16) string {
	end := int(load) + fingerprintLength
	if end > memory.AddressSpace {
		end = memory.AddressSpace
	}
	return fmt.Sprintf("%x", sha1.Sum(img.Data[int(load):end]))
}

// Identify returns the player kind for the code at load.
func Identify(img *memory.Image, load uint16) (Kind, error) {
	fp := Fingerprint(img, load)
	if k, ok := signatures[fp]; ok {
		return k, nil
	}
	return Unknown, curated.Errorf(UnknownPlayer, fp)
}
