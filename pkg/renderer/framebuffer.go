package renderer

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Framebuffer holds packed 24-bit RGB pixels (R<<16 | G<<8 | B), row-major
// from the top row down
type Framebuffer struct {
	Width  int
	Height int
	Pixels []uint32
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// Set stores a packed pixel at column x, row y
func (fb *Framebuffer) Set(x, y int, packed uint32) {
	fb.Pixels[y*fb.Width+x] = packed
}

// At returns the packed pixel at column x, row y
func (fb *Framebuffer) At(x, y int) uint32 {
	return fb.Pixels[y*fb.Width+x]
}

// PackColor scales a display-ready color in [0,1] to 8 bits per channel and
// packs it as R<<16 | G<<8 | B. Out-of-range channels saturate.
func PackColor(c core.Vec3) uint32 {
	c = c.Multiply(255.99).Clamp(0, 255)
	return uint32(c.X)<<16 | uint32(c.Y)<<8 | uint32(c.Z)
}

// UnpackColor splits a packed pixel into its 8-bit channels
func UnpackColor(packed uint32) (r, g, b uint8) {
	return uint8(packed >> 16), uint8(packed >> 8), uint8(packed)
}
