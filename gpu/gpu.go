// Package gpu implements the optional graphics sink (spec.md 4.L/6): a
// 729x729 framebuffer fed by the CPU's EGPU control block protocol.
// Grounded on the teacher's ui.go texture-quad pipeline (go-gl/gl,
// go-gl/glfw/v3.3/glfw) -- the same shader pair and per-frame texture
// upload, generalized from "upload whatever the PPU rendered this frame"
// to "upload whatever vm.Machine replayed from the vector buffer this
// step".
package gpu

import (
	"image"
	"image/color"
)

// Size is the framebuffer's width and height in pixels, 3^6.
const Size = 729

const center = Size / 2

// Framebuffer is the render target a Sink rasterizes into; it implements
// vm.Sink's DrawLine method.
type Framebuffer struct {
	img   *image.RGBA
	dirty bool
}

// New returns a black Size x Size framebuffer.
func New() *Framebuffer {
	return &Framebuffer{img: image.NewRGBA(image.Rect(0, 0, Size, Size))}
}

// channel maps a trit-valued colour channel ({-1,0,+1}) to its 8-bit
// intensity, spec.md 6's {0, 128, 255} table.
func channel(v int64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 0:
		return 255
	default:
		return 128
	}
}

// pixel centres a signed coordinate on the framebuffer and clamps it to
// the visible range. The spec names the coordinate's trit width but not
// its overflow behaviour when a program draws outside the 729x729 frame;
// clamping (rather than wrapping) is the resolution recorded in
// DESIGN.md.
func pixel(v int64) int {
	p := int(v) + center
	if p < 0 {
		return 0
	}
	if p > Size-1 {
		return Size - 1
	}
	return p
}

// DrawLine rasterizes one vector-buffer record: a line from (x0,y0) to
// (x1,y1), y axis inverted, in the colour given by the trit-valued r,g,b
// triple (spec.md 6).
func (f *Framebuffer) DrawLine(x0, y0, x1, y1, r, g, b int64) {
	c := color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}
	px0, py0 := pixel(x0), Size-1-pixel(y0)
	px1, py1 := pixel(x1), Size-1-pixel(y1)
	bresenham(f.img, px0, py0, px1, py1, c)
	f.dirty = true
}

// Image returns the framebuffer's current contents.
func (f *Framebuffer) Image() *image.RGBA { return f.img }

// TakeDirty reports whether the framebuffer changed since the last call
// and clears the flag -- the same ready-then-cleared protocol
// NesConsole.Frame() uses for its own dirty bit.
func (f *Framebuffer) TakeDirty() bool {
	d := f.dirty
	f.dirty = false
	return d
}

// bresenham draws a line with the standard integer Bresenham algorithm.
func bresenham(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.SetRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
