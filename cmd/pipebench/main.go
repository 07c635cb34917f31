// Copyright 2025 go-looppipe Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command pipebench runs the demo kernels under different loop-scheduling
// hints and verifies that the hints change timing, never results.
//
// Usage:
//
//	pipebench                          # transpose-fold, safelen 1 vs n
//	pipebench -demo shifted-sum        # concurrency cap sweep
//	pipebench -demo all -n 256 -seed 7
//	pipebench -target serial           # force the inline reference schedule
//
// Each demo prints per-variant kernel time and throughput, then a final
// PASSED or FAILED line. Exit code 0 means every variant matched, 1 means a
// verification mismatch, 2 means no execution target could be acquired.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tebeka/atexit"

	"github.com/ajroetker/go-looppipe/looppipe"
	"github.com/ajroetker/go-looppipe/looppipe/contrib/shiftsum"
	"github.com/ajroetker/go-looppipe/looppipe/contrib/transposefold"
)

var (
	demo    = flag.String("demo", "transpose-fold", "Demo to run: transpose-fold, shifted-sum or all")
	side    = flag.Int("n", transposefold.DemoSide, "Matrix side length for the transpose-fold demo")
	iters   = flag.Int("iters", shiftsum.DemoIters, "Outer iteration count for the shifted-sum demo")
	seed    = flag.Int64("seed", 1, "Seed for the random input data")
	target  = flag.String("target", "", "Execution target: auto, serial (alias emulator) or workers (default: honor "+looppipe.TargetEnv+")")
	workers = flag.Int("workers", 0, "Worker count for the workers target (default: honor "+looppipe.WorkersEnv+", then GOMAXPROCS)")
	verbose = flag.Bool("v", false, "Enable debug logging")
)

const (
	exitPass          = 0
	exitMismatch      = 1
	exitUnrecoverable = 2
)

func main() {
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	eng, err := newEngine()
	if err != nil {
		log.Error().Err(err).Msg("no execution target available")
		if errors.Is(err, looppipe.ErrTargetUnavailable) {
			fmt.Fprintln(os.Stderr, "Pick a target this build can drive: auto, serial (alias emulator) or workers.")
			fmt.Fprintln(os.Stderr, "The serial target is always available and needs no worker pool.")
		}
		atexit.Exit(exitUnrecoverable)
	}
	atexit.Register(eng.Close)
	log.Debug().Msg(eng.Describe())

	rng := rand.New(rand.NewSource(*seed))

	var code int
	switch *demo {
	case "transpose-fold":
		code = runTransposeFold(eng, rng)
	case "shifted-sum":
		code = runShiftedSum(eng, rng)
	case "all":
		code = runTransposeFold(eng, rng)
		if c := runShiftedSum(eng, rng); c > code {
			code = c
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown demo %q\n\n", *demo)
		flag.Usage()
		code = exitUnrecoverable
	}
	atexit.Exit(code)
}

// newEngine builds the engine from flags when any are set, otherwise from the
// environment.
func newEngine() (*looppipe.Engine, error) {
	if *target == "" && *workers == 0 {
		return looppipe.FromEnv()
	}

	cfg := looppipe.DefaultConfig()
	if *target != "" {
		t, err := looppipe.ParseTarget(*target)
		if err != nil {
			return nil, err
		}
		cfg.Target = t
	}
	cfg.Workers = *workers
	return looppipe.New(cfg)
}

// runTransposeFold times the kernel under the most conservative hint and the
// largest truthful one, then bit-compares the outputs.
func runTransposeFold(eng *looppipe.Engine, rng *rand.Rand) int {
	n := *side
	input := make([]float32, n*n)
	for i := range input {
		input[i] = rng.Float32()
	}

	conservative, code := foldOnce(eng, input, n, looppipe.MinSafelen)
	if code != exitPass {
		return code
	}
	aggressive, code := foldOnce(eng, input, n, looppipe.Safelen(n))
	if code != exitPass {
		return code
	}

	if err := transposefold.Verify(aggressive.Output, conservative.Output); err != nil {
		log.Debug().Err(err).Msg("first difference")
		fmt.Println("FAILED: The results are incorrect")
		return exitMismatch
	}
	fmt.Println("PASSED: The results are correct")
	return exitPass
}

func foldOnce(eng *looppipe.Engine, input []float32, n int, d looppipe.Safelen) (transposefold.Result[float32], int) {
	res, err := transposefold.Run(eng, input, n, d)
	if err != nil {
		log.Error().Err(err).Msg("transpose-fold run failed")
		return res, exitUnrecoverable
	}
	fmt.Printf("safelen: %d -- kernel time : %v\n", d, res.Elapsed)
	fmt.Printf("Throughput for kernel with safelen %d: %.0f KB/s\n", d, res.KBPerSec())
	return res, exitPass
}

// runShiftedSum sweeps the concurrency cap and verifies every variant against
// the golden reference.
func runShiftedSum(eng *looppipe.Engine, rng *rand.Rand) int {
	input := make([]int32, shiftsum.DemoSize)
	for i := range input {
		input[i] = rng.Int31n(shiftsum.DemoMaxValue)
	}
	shift := rng.Int31n(shiftsum.DemoMaxValue)

	want := shiftsum.Golden(input, shift, *iters)
	log.Debug().Int32("golden", want).Msg("reference total computed")

	failed := false
	for _, conc := range []looppipe.Concurrency{0, 1, 2, 4, 8, 16} {
		res, err := shiftsum.Sum(eng, input, shift, *iters, conc)
		if err != nil {
			log.Error().Err(err).Msg("shifted-sum run failed")
			return exitUnrecoverable
		}
		fmt.Printf("Max concurrency %d kernel time : %v\n", conc, res.Elapsed)
		fmt.Printf("Throughput for kernel with max_concurrency %d: %.3f MIPS\n", conc, res.MIPS())
		if res.Sum != want {
			fmt.Printf("Max concurrency %d: mismatch: %d != %d\n", conc, res.Sum, want)
			failed = true
		}
	}

	if failed {
		fmt.Println("FAILED: The results are incorrect")
		return exitMismatch
	}
	fmt.Println("PASSED: The results are correct")
	return exitPass
}
