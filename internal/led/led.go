// Package led drives addressable RGB strips.
// The real implementation writes NRZ-encoded frames over SPI using periph.io.
package led

import "github.com/sweeney/tinyml-panel/internal/logic"

// Strip is a strip of RGB pixels that is always filled with a single color.
type Strip interface {
	// Fill sets every pixel to c and latches the frame.
	Fill(c logic.RGB) error

	// Close turns the strip off and releases resources.
	Close() error
}

// DefaultPixels is the pixel count of the panel strips.
const DefaultPixels = 8

// frame builds a raw RGB frame of n pixels of color c.
func frame(n int, c logic.RGB) []byte {
	buf := make([]byte, 3*n)
	for i := 0; i < n; i++ {
		buf[3*i] = c.R
		buf[3*i+1] = c.G
		buf[3*i+2] = c.B
	}
	return buf
}
