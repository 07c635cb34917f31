package looppipe

// Safelen is a dependence-distance hint for a pipelined loop. A value d asserts
// that no two iterations whose indices differ by less than d ever write the same
// memory location, so the engine may execute any d consecutive iterations
// concurrently. The hint is advisory: results are identical for every valid
// value, only the schedule (and therefore the run time) changes.
//
// Safelen(1) is the most conservative hint and always safe; it yields a fully
// serial schedule. The largest truthful value is a property of the loop body:
// for a kernel whose same-cell accesses are exactly n iterations apart, any
// value up to n is valid and n is the most aggressive.
type Safelen int

// MinSafelen is the most conservative dependence distance. Engines clamp
// smaller values up to it.
const MinSafelen Safelen = 1

// Concurrency caps how many outer iterations of a capped loop run at once.
// Each in-flight iteration typically owns one private scratch buffer, so the
// cap bounds resident scratch memory the same way the FPGA max_concurrency
// attribute bounds private copies of a loop's local arrays. Zero leaves the
// choice to the engine (its worker count). Like Safelen, the cap never changes
// results, only run time and memory footprint.
type Concurrency int
