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
	"sync"

	"github.com/reloc64/reloc64/curated"
	"github.com/reloc64/reloc64/hardware"
	"github.com/reloc64/reloc64/logger"
)

// BatchResult pairs one input file with whatever the pipeline made of it.
type BatchResult struct {
	File string
	Job  *Job
	Err  error
}

// Batch converts many containers concurrently. Each worker carries its
// own tracer; jobs never share emulator state. Results come back in the
// same order as the input files.
func Batch(files []string, opts Options, workers int) []BatchResult {
	if workers < 1 {
		workers = 1
	}

	results := make([]BatchResult, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracer := hardware.NewTracer()
			for i := range jobs {
				results[i] = runOne(files[i], opts, tracer)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func runOne(file string, opts Options, tracer *hardware.Tracer) BatchResult {
	res := BatchResult{File: file}

	data, err := os.ReadFile(file)
	if err != nil {
		res.Err = curated.Errorf(BadJob, err)
		return res
	}

	job, err := NewJob(file, data, opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Job = job

	if err := job.Run(tracer); err != nil {
		res.Err = err
		return res
	}

	logger.Log("convert", job.Summary())
	return res
}
