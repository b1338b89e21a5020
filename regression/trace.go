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
	"os"
	"strconv"

	"github.com/reloc64/reloc64/convert"
	"github.com/reloc64/reloc64/curated"
	"github.com/reloc64/reloc64/database"
	"github.com/reloc64/reloc64/digest"
	"github.com/reloc64/reloc64/hardware"
	"github.com/reloc64/reloc64/wrapper"
)

const traceEntryID = "trace"

const (
	traceFieldFile int = iota
	traceFieldTargetLoad
	traceFieldFrames
	traceFieldDigest
	numTraceFields
)

// TraceEntry is a regression test that converts a container and compares
// the register trace digest of the converted player against the recorded
// value.
type TraceEntry struct {
	File       string
	TargetLoad uint16
	Frames     int
	Digest     string
}

func deserialiseTraceEntry(fields []string) (database.Entry, error) {
	if len(fields) != numTraceFields {
		return nil, curated.Errorf("regression: trace: wrong number of fields")
	}

	reg := &TraceEntry{
		File:   fields[traceFieldFile],
		Digest: fields[traceFieldDigest],
	}

	load, err := strconv.ParseUint(fields[traceFieldTargetLoad], 16, 16)
	if err != nil {
		return nil, curated.Errorf("regression: trace: invalid target load [%s]", fields[traceFieldTargetLoad])
	}
	reg.TargetLoad = uint16(load)

	reg.Frames, err = strconv.Atoi(fields[traceFieldFrames])
	if err != nil {
		return nil, curated.Errorf("regression: trace: invalid frame count [%s]", fields[traceFieldFrames])
	}

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg TraceEntry) ID() string {
	return traceEntryID
}

func (reg TraceEntry) String() string {
	return fmt.Sprintf("[%s] %s to %#04x over %d frames", reg.ID(), reg.File, reg.TargetLoad, reg.Frames)
}

// Serialise implements the database.Entry interface.
func (reg *TraceEntry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		reg.File,
		fmt.Sprintf("%04x", reg.TargetLoad),
		strconv.Itoa(reg.Frames),
		reg.Digest,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (reg TraceEntry) CleanUp() error {
	return nil
}

// regress converts the container and digests the converted player's
// trace. With newRegression the digest is recorded; otherwise it is
// compared against the recorded value.
func (reg *TraceEntry) regress(newRegression bool) (bool, error) {
	data, err := os.ReadFile(reg.File)
	if err != nil {
		return false, curated.Errorf("regression: %v", err)
	}

	job, err := convert.NewJob(reg.File, data, convert.Options{TargetLoad: reg.TargetLoad})
	if err != nil {
		return false, err
	}

	tracer := hardware.NewTracer()
	if err := job.Run(tracer); err != nil {
		return false, err
	}

	trace, err := tracer.Trace(job.Output, reg.TargetLoad+wrapper.InitOffset, reg.TargetLoad+wrapper.PlayOffset, reg.Frames)
	if err != nil {
		return false, curated.Errorf("regression: %v", err)
	}

	d := digest.Trace(trace)

	if newRegression {
		reg.Digest = d
		return true, nil
	}

	return d == reg.Digest, nil
}
