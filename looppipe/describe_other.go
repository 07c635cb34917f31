//go:build !amd64 && !arm64

package looppipe

func cpuFeatures() []string {
	// No feature detail for other architectures yet.
	return nil
}
