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

// Package convert runs the whole conversion pipeline over one container:
// parse, identify, relocate, transcode tables, patch pointers, synthesize
// the dispatch stub and validate the result.
//
// The pipeline distinguishes two levels of success. "Produced" means a
// byte-correct image exists. "Validated" means that image was run and its
// register trace matches the original. The final report never conflates
// the two.
package convert

import (
	"fmt"

	"github.com/reloc64/reloc64/accuracy"
	"github.com/reloc64/reloc64/curated"
	"github.com/reloc64/reloc64/emulation"
	"github.com/reloc64/reloc64/hardware/memory"
	"github.com/reloc64/reloc64/logger"
	"github.com/reloc64/reloc64/patch"
	"github.com/reloc64/reloc64/playerid"
	"github.com/reloc64/reloc64/relocate"
	"github.com/reloc64/reloc64/sidfile"
	"github.com/reloc64/reloc64/tables"
	"github.com/reloc64/reloc64/wrapper"
)

// BadJob is the pattern for configuration errors caught before the
// pipeline runs.
const BadJob = "convert: %v"

// Options for a conversion job.
type Options struct {
	// TargetLoad is where the dispatch stub goes; the relocated player
	// follows immediately after it.
	TargetLoad uint16

	// Frames to emulate during validation. Zero skips validation
	// entirely; the job can then only ever reach the "produced"
	// confidence level.
	Frames int

	// operator-supplied patch sites for references the static scan
	// cannot see
	Overrides []patch.Override
}

// Job is one container conversion. Create with NewJob(), run with Run(),
// then read the result fields.
type Job struct {
	Name   string
	Header sidfile.Header
	Kind   playerid.Kind

	opts   Options
	source *memory.Image
	span   memory.CodeSpan // player code in the source image
	delta  int

	// results
	Output     *memory.Image
	OutputSpan memory.CodeSpan
	Rewrites   []relocate.Rewrite
	Patches    patch.Result
	Unmapped   []patch.Candidate

	// transcode failures are isolated per table; a failed table is
	// reported here and the rest of the pipeline continues without it
	TableErrors []error

	Report *accuracy.Report
}

// NewJob parses and identifies the container and checks the relocation
// configuration. Everything that can be rejected before touching any
// bytes is rejected here.
func NewJob(name string, data []byte, opts Options) (*Job, error) {
	hdr, img, err := sidfile.Parse(data)
	if err != nil {
		return nil, curated.Errorf(BadJob, err)
	}

	kind, err := playerid.Identify(img, hdr.LoadAddress)
	if err != nil {
		return nil, curated.Errorf(BadJob, err)
	}

	span, err := memory.NewCodeSpan(hdr.LoadAddress, hdr.CodeLength)
	if err != nil {
		return nil, curated.Errorf(BadJob, err)
	}

	j := &Job{
		Name:   name,
		Header: hdr,
		Kind:   kind,
		opts:   opts,
		source: img,
		span:   span,
	}

	// the player lands directly after the dispatch stub
	j.delta = int(opts.TargetLoad) + wrapper.Size - int(hdr.LoadAddress)

	if _, err := relocate.CheckDelta(span, j.delta); err != nil {
		return nil, curated.Errorf(BadJob, err)
	}

	return j, nil
}

// Produced returns true if the job has emitted an output image.
func (j *Job) Produced() bool {
	return j.Output != nil
}

// Validated returns true if the output image was traced and played back
// cleanly: no malfunction, no rejected patches and a full frame match.
func (j *Job) Validated() bool {
	return j.Report != nil && !j.Report.PlayerMalfunction &&
		j.Patches.Clean() && j.Report.OverallMatch >= 0.999
}

// Run executes the pipeline. The returned error covers pipeline
// breakdowns only; rejected patches, failed tables and poor accuracy are
// reported in the job's result fields, not as errors.
func (j *Job) Run(tracer emulation.Tracer) error {
	srcSet, err := playerid.SourceSet(j.Kind, j.Header.LoadAddress)
	if err != nil {
		return curated.Errorf(BadJob, err)
	}

	// relocate: rewrite in-span operands, then move the code
	img, rewrites, err := relocate.Relocate(j.source, j.span, j.delta)
	if err != nil {
		return err
	}
	j.Rewrites = rewrites

	img, err = relocate.Move(img, j.span, j.delta)
	if err != nil {
		return err
	}

	movedSpan := memory.CodeSpan{Start: uint16(int(j.span.Start) + j.delta), Length: j.span.Length}

	// the embedded tables moved with the code
	movedSet := srcSet.Shift(j.delta)

	// the new table area starts directly after the relocated player
	tgtBase := uint16(movedSpan.End())
	tgtSet := playerid.TargetSet(movedSet, tgtBase)

	// transcode each table from the source image into the target layout.
	// a table that fails to transcode is skipped and reported; the
	// isolation lets an operator inject one table at a time when
	// diagnosing a bad conversion
	for _, from := range srcSet.Tables {
		to, _ := tgtSet.Lookup(from.Table)
		raw := j.source.Data[from.Base : int(from.Base)+from.ByteSize()]

		out, err := tables.Transcode(raw, from, to)
		if err != nil {
			j.TableErrors = append(j.TableErrors, err)
			logger.Logf("convert", "%s: table %s not transcoded: %v", j.Name, from.Table, err)
			continue
		}
		if err := img.SetSpan(to.Base, out, memory.Synthesized); err != nil {
			j.TableErrors = append(j.TableErrors, err)
			continue
		}
	}

	// redirect every table reference in the relocated code at the new
	// table area
	remap, err := movedSet.Remap(tgtSet)
	if err != nil {
		return curated.Errorf(BadJob, err)
	}

	candidates := patch.ScanForTableRefs(img, movedSpan, movedSet.Ranges())
	records, unmapped := patch.BuildRecords(candidates, j.opts.Overrides, remap)
	j.Unmapped = unmapped

	img, j.Patches = patch.Apply(img, records)

	// dispatch stub in front of the player
	stub := wrapper.Synthesize(j.opts.TargetLoad,
		uint16(int(j.Header.InitAddress)+j.delta),
		uint16(int(j.Header.PlayAddress)+j.delta),
		0)
	if err := img.SetSpan(j.opts.TargetLoad, stub, memory.Synthesized); err != nil {
		return err
	}

	j.Output = img
	j.OutputSpan = memory.CodeSpan{
		Start:  j.opts.TargetLoad,
		Length: uint16(int(tgtBase) - int(j.opts.TargetLoad) + tgtSet.Size()),
	}

	logger.Logf("convert", "%s: produced %s (%d rewrites, %d/%d patches)",
		j.Name, j.OutputSpan, len(j.Rewrites), j.Patches.Applied, len(records))

	if j.opts.Frames > 0 {
		rep := accuracy.Validate(tracer,
			accuracy.Run{Image: j.source, Init: j.Header.InitAddress, Play: j.Header.PlayAddress},
			accuracy.Run{Image: j.Output, Init: j.opts.TargetLoad + wrapper.InitOffset, Play: j.opts.TargetLoad + wrapper.PlayOffset},
			j.opts.Frames)
		j.Report = &rep
	}

	return nil
}

// Summary is the one-line result for the job, keeping the two confidence
// levels apart.
func (j *Job) Summary() string {
	if !j.Produced() {
		return fmt.Sprintf("%s: no output produced", j.Name)
	}
	if j.Report == nil {
		return fmt.Sprintf("%s: produced (not validated)", j.Name)
	}
	if j.Validated() {
		return fmt.Sprintf("%s: produced and validated (%.1f%%)", j.Name, j.Report.OverallMatch*100)
	}
	if j.Report.PlayerMalfunction {
		return fmt.Sprintf("%s: produced but MALFUNCTIONING (%d/%d writes)",
			j.Name, j.Report.CandidateWrites, j.Report.ReferenceWrites)
	}
	return fmt.Sprintf("%s: produced but inaccurate (%.1f%%, %d patches rejected)",
		j.Name, j.Report.OverallMatch*100, len(j.Patches.Rejected))
}
