//go:build !amd64 && !arm64

package hwy

func init() {
	// Other architectures fall back to scalar mode.
	setScalarMode()
}

// HasFMA returns false: no fused multiply-add detection on this architecture.
func HasFMA() bool {
	return false
}
