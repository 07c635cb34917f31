package looppipe

import (
	"errors"
	"fmt"
	"strings"
)

// Target selects the execution strategy backing an Engine.
type Target int

const (
	// TargetAuto resolves to TargetWorkers when more than one CPU is
	// available, TargetSerial otherwise. Resolution happens once, at engine
	// creation.
	TargetAuto Target = iota

	// TargetSerial runs every loop inline on the calling goroutine. It is the
	// in-process equivalent of an emulator device: always available, never
	// concurrent, useful as the reference schedule.
	TargetSerial

	// TargetWorkers runs hinted loops on a pool of persistent worker
	// goroutines spawned when the engine is created.
	TargetWorkers
)

// String returns a human-readable name for the target.
func (t Target) String() string {
	switch t {
	case TargetAuto:
		return "auto"
	case TargetSerial:
		return "serial"
	case TargetWorkers:
		return "workers"
	default:
		return "unknown"
	}
}

// ErrTargetUnavailable reports that no engine could be created for the
// requested execution target. There is no fallback path: callers treat it as
// fatal for the run.
var ErrTargetUnavailable = errors.New("looppipe: execution target unavailable")

// ParseTarget maps a target name from configuration or the environment to a
// Target. "emulator" is accepted as an alias for "serial". Unknown names
// return ErrTargetUnavailable, so pointing LOOPPIPE_TARGET at hardware this
// build cannot drive (say, "fpga") fails the same way a missing device does.
func ParseTarget(name string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "auto":
		return TargetAuto, nil
	case "serial", "emulator":
		return TargetSerial, nil
	case "workers":
		return TargetWorkers, nil
	}
	return 0, fmt.Errorf("%w: no target named %q", ErrTargetUnavailable, name)
}
