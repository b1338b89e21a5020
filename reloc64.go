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

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/reloc64/reloc64/convert"
	"github.com/reloc64/reloc64/hardware"
	"github.com/reloc64/reloc64/logger"
	"github.com/reloc64/reloc64/modalflag"
	"github.com/reloc64/reloc64/patch"
	"github.com/reloc64/reloc64/regression"
	"github.com/reloc64/reloc64/sidfile"
	"github.com/reloc64/reloc64/statsview"
	"github.com/reloc64/reloc64/tracewriter"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("CONVERT", "BATCH", "REGRESS", "TRACE")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "CONVERT":
		err = convertMode(md)
	case "BATCH":
		err = batchMode(md)
	case "REGRESS":
		err = regressMode(md)
	case "TRACE":
		err = traceMode(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// parse a 16-bit address given in hex, with or without a leading marker.
func parseAddress(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "0x"), "$")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address [%s]", s)
	}
	return uint16(v), nil
}

func convertMode(md *modalflag.Modes) error {
	md.NewMode()

	target := md.AddString("to", "1000", "load address of the converted player (hex)")
	frames := md.AddInt("frames", 500, "number of frames to emulate for validation (0 to skip)")
	outFile := md.AddString("o", "", "output file (defaults to input name with .prg extension)")
	overridesFile := md.AddString("overrides", "", "file of operator patch sites (offset value table, one per line)")
	dump := md.AddString("dump", "", "write pipeline state as a graphviz file")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(logger.NewColorizer(os.Stdout))
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("exactly one SID file required for %s mode", md)
	}
	file := md.GetArg(0)

	targetLoad, err := parseAddress(*target)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	var overrides []patch.Override
	if *overridesFile != "" {
		f, err := os.Open(*overridesFile)
		if err != nil {
			return err
		}
		overrides, err = patch.ReadOverrides(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	job, err := convert.NewJob(file, data, convert.Options{TargetLoad: targetLoad, Frames: *frames, Overrides: overrides})
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s by %s (%s)\n", file, job.Header.Title, job.Header.Author, job.Kind)

	if err := job.Run(hardware.NewTracer()); err != nil {
		return err
	}

	fmt.Println(job.Summary())
	if job.Report != nil {
		fmt.Print(job.Report)
	}
	for _, c := range job.Unmapped {
		fmt.Printf("unmapped table reference: %s %#04x at file offset %#04x\n", c.Mnemonic, c.Operand, c.FileOffset)
	}
	for _, r := range job.Patches.Rejected {
		fmt.Printf("rejected patch at file offset %#04x: expected %#04x found %#04x\n",
			r.Record.FileOffset, r.Record.OldValue, r.Actual)
	}

	if *dump != "" {
		if err := job.Dump(*dump); err != nil {
			return err
		}
	}

	out := *outFile
	if out == "" {
		out = strings.TrimSuffix(file, ".sid") + ".prg"
	}

	return os.WriteFile(out, sidfile.WritePRG(job.Output, job.OutputSpan), 0644)
}

func batchMode(md *modalflag.Modes) error {
	md.NewMode()

	target := md.AddString("to", "1000", "load address of the converted players (hex)")
	frames := md.AddInt("frames", 500, "number of frames to emulate for validation (0 to skip)")
	workers := md.AddInt("workers", 4, "number of concurrent conversions")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("at least one SID file required for %s mode", md)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(md.Output)
		} else {
			fmt.Println("* statsview not available in this build")
		}
	}

	targetLoad, err := parseAddress(*target)
	if err != nil {
		return err
	}

	results := convert.Batch(md.RemainingArgs(), convert.Options{TargetLoad: targetLoad, Frames: *frames}, *workers)

	numValidated := 0
	numProduced := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Printf("%s: %v\n", res.File, res.Err)
			continue
		}
		fmt.Println(res.Job.Summary())
		if res.Job.Produced() {
			numProduced++
			out := strings.TrimSuffix(res.File, ".sid") + ".prg"
			if err := os.WriteFile(out, sidfile.WritePRG(res.Job.Output, res.Job.OutputSpan), 0644); err != nil {
				return err
			}
		}
		if res.Job.Validated() {
			numValidated++
		}
	}

	fmt.Printf("batch: %d produced, %d validated (of %d)\n", numProduced, numValidated, len(results))

	return nil
}

type yesReader struct{}

func (*yesReader) Read(p []byte) (n int, err error) {
	p[0] = 'y'
	return 1, nil
}

func regressMode(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()

		verbose := md.AddBool("verbose", false, "output more detail (eg. error messages)")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		return regression.RegressRun(md.Output, *verbose, md.RemainingArgs())

	case "LIST":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		if len(md.RemainingArgs()) != 0 {
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}

		return regression.RegressList(md.Output)

	case "DELETE":
		md.NewMode()

		answerYes := md.AddBool("yes", false, "answer yes to confirmation")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("database key required for %s mode", md)
		case 1:
			var confirmation io.Reader
			if *answerYes {
				confirmation = &yesReader{}
			} else {
				confirmation = os.Stdin
			}
			return regression.RegressDelete(md.Output, confirmation, md.GetArg(0))
		default:
			return fmt.Errorf("only one entry can be deleted at a time")
		}

	case "ADD":
		md.NewMode()

		target := md.AddString("to", "1000", "load address of the converted player (hex)")
		frames := md.AddInt("frames", 500, "number of frames to trace")

		md.AdditionalHelp(
			`The regression test to be added is the path to a SID file. The file is converted
and traced once to record the expected register digest; subsequent runs repeat the
conversion and compare digests.`)

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		if len(md.RemainingArgs()) != 1 {
			return fmt.Errorf("exactly one SID file required for %s mode", md)
		}

		targetLoad, err := parseAddress(*target)
		if err != nil {
			return err
		}

		return regression.RegressAdd(md.Output, &regression.TraceEntry{
			File:       md.GetArg(0),
			TargetLoad: targetLoad,
			Frames:     *frames,
		})
	}

	return nil
}

func traceMode(md *modalflag.Modes) error {
	md.NewMode()

	frames := md.AddInt("frames", 500, "number of frames to emulate")
	wavFile := md.AddString("wav", "", "render the trace to a WAV file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("exactly one SID file required for %s mode", md)
	}
	file := md.GetArg(0)

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	hdr, img, err := sidfile.Parse(data)
	if err != nil {
		return err
	}

	trace, err := hardware.NewTracer().Trace(img, hdr.InitAddress, hdr.PlayAddress, *frames)
	if err != nil {
		return err
	}

	if *wavFile != "" {
		return tracewriter.WriteWAV(*wavFile, trace, *frames)
	}

	for _, ev := range trace {
		fmt.Printf("%5d  %2d  %02x\n", ev.Frame, ev.Register, ev.Value)
	}
	fmt.Printf("%d writes over %d frames\n", trace.WriteCount(), *frames)

	return nil
}
