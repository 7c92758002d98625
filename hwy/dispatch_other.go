//go:build !amd64 && !arm64

package hwy

func init() {
	// Other architectures use 16-byte emulated vectors.
	setScalarMode()
}
