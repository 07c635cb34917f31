//go:build arm64

package looppipe

import "golang.org/x/sys/cpu"

func cpuFeatures() []string {
	var feats []string
	// ASIMD (NEON) is part of the ARMv8-A base architecture, so this is
	// effectively always present.
	if cpu.ARM64.HasASIMD {
		feats = append(feats, "neon")
	}
	if cpu.ARM64.HasSVE {
		feats = append(feats, "sve")
	}
	return feats
}
