package gpu

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFramebufferIsBlackAndClean(t *testing.T) {
	fb := New()
	assert.False(t, fb.TakeDirty())
	assert.Equal(t, Size, fb.Image().Rect.Dx())
	assert.Equal(t, Size, fb.Image().Rect.Dy())
	assert.Equal(t, color.RGBA{}, fb.Image().RGBAAt(0, 0))
}

func TestDrawLineMarksDirty(t *testing.T) {
	fb := New()
	fb.DrawLine(0, 0, 10, 0, 1, -1, 0)
	assert.True(t, fb.TakeDirty())
	assert.False(t, fb.TakeDirty(), "TakeDirty should clear the flag")
}

func TestChannelMapsTritsToIntensities(t *testing.T) {
	assert.Equal(t, uint8(0), channel(-1))
	assert.Equal(t, uint8(128), channel(0))
	assert.Equal(t, uint8(255), channel(1))
}

func TestDrawLineColoursEndpoint(t *testing.T) {
	fb := New()
	// x=0,y=0 maps to the framebuffer centre; colour (+1,-1,0).
	fb.DrawLine(0, 0, 0, 0, 1, -1, 0)
	got := fb.Image().RGBAAt(center, Size-1-center)
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 128, A: 255}, got)
}

func TestPixelClampsOutOfRange(t *testing.T) {
	assert.Equal(t, 0, pixel(-1_000_000))
	assert.Equal(t, Size-1, pixel(1_000_000))
	assert.Equal(t, center, pixel(0))
}
