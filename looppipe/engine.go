package looppipe

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Environment variables consulted by FromEnv. They override the default
// configuration the same way a device-selection switch picks an execution
// target at startup.
const (
	// TargetEnv names the execution target: "auto", "serial" (alias
	// "emulator"), or "workers".
	TargetEnv = "LOOPPIPE_TARGET"

	// WorkersEnv overrides the worker count for the workers target.
	WorkersEnv = "LOOPPIPE_WORKERS"
)

// Config describes the engine to create.
type Config struct {
	// Target selects the execution strategy. TargetAuto resolves when the
	// engine is created and never changes afterwards.
	Target Target

	// Workers is the pool size for TargetWorkers. Zero or negative means
	// GOMAXPROCS. Ignored by TargetSerial.
	Workers int
}

// DefaultConfig returns the configuration used when nothing is overridden:
// automatic target resolution with a GOMAXPROCS-sized pool.
func DefaultConfig() Config {
	return Config{Target: TargetAuto}
}

// Engine runs hinted loops on a resolved execution target. Engines are safe
// for concurrent use; each Pipelined or Capped call coordinates its own
// barrier state.
type Engine struct {
	target  Target
	workers int

	// workC feeds the persistent workers. Nil on the serial target.
	workC     chan windowTask
	closeOnce sync.Once
	closed    atomic.Bool
}

// New creates an engine for the configured target. TargetAuto picks workers
// when more than one CPU is available and serial otherwise. An unrecognized
// target yields ErrTargetUnavailable.
func New(cfg Config) (*Engine, error) {
	target := cfg.Target
	if target == TargetAuto {
		target = TargetSerial
		if runtime.GOMAXPROCS(0) > 1 {
			target = TargetWorkers
		}
	}

	switch target {
	case TargetSerial:
		return &Engine{target: TargetSerial, workers: 1}, nil

	case TargetWorkers:
		workers := cfg.Workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		e := &Engine{
			target:  TargetWorkers,
			workers: workers,
			// Buffer enough for every worker to have pending work.
			workC: make(chan windowTask, workers*2),
		}
		for range workers {
			go e.worker()
		}
		return e, nil
	}

	return nil, fmt.Errorf("%w: target code %d", ErrTargetUnavailable, int(cfg.Target))
}

// FromEnv creates an engine from DefaultConfig with LOOPPIPE_TARGET and
// LOOPPIPE_WORKERS applied on top. Unknown target names surface as
// ErrTargetUnavailable.
func FromEnv() (*Engine, error) {
	cfg := DefaultConfig()

	if v := os.Getenv(TargetEnv); v != "" {
		target, err := ParseTarget(v)
		if err != nil {
			return nil, err
		}
		cfg.Target = target
	}

	if v := os.Getenv(WorkersEnv); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil || workers < 0 {
			return nil, fmt.Errorf("looppipe: invalid %s value %q", WorkersEnv, v)
		}
		cfg.Workers = workers
	}

	return New(cfg)
}

// Target returns the resolved execution target.
func (e *Engine) Target() Target {
	return e.target
}

// Workers returns the number of workers backing the engine. Serial engines
// report 1.
func (e *Engine) Workers() int {
	return e.workers
}

// Close shuts the worker pool down. Pending work completes first. Closing a
// serial engine or closing twice is a no-op; a closed engine keeps working,
// it just runs every loop inline. Close must not be called concurrently with
// an in-flight Pipelined or Capped call; let running loops return first.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		if e.workC != nil {
			close(e.workC)
		}
	})
}

// inline reports whether loops must run on the calling goroutine.
func (e *Engine) inline() bool {
	return e.target == TargetSerial || e.closed.Load()
}

// Describe returns a one-line description of the engine and the host it runs
// on, including the CPU features relevant to kernel throughput.
func (e *Engine) Describe() string {
	desc := fmt.Sprintf("%s target, %d workers, %s/%s", e.target, e.workers, runtime.GOOS, runtime.GOARCH)
	if feats := cpuFeatures(); len(feats) > 0 {
		desc += " (" + strings.Join(feats, " ") + ")"
	}
	return desc
}
