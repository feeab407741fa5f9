package renderer

import (
	"image/color"
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

func TestChannelToByte(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected uint8
	}{
		{"black", 0, 0},
		{"negative clamps", -0.5, 0},
		{"white", 1, 255},
		{"overexposed clamps", 4, 255},
		{"quarter is half after gamma", 0.25, 127},
		{"NaN is black", math32.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := channelToByte(tt.input); got != tt.expected {
				t.Errorf("channelToByte(%f) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestToImage_Layout(t *testing.T) {
	// 2x2 buffer, row 0 at the top
	buffer := []core.Vec3{
		{X: 1}, {Y: 1},
		{Z: 1}, {X: 1, Y: 1, Z: 1},
	}
	img := ToImage(buffer, 2, 2)

	tests := []struct {
		x, y     int
		expected color.RGBA
	}{
		{0, 0, color.RGBA{255, 0, 0, 255}},
		{1, 0, color.RGBA{0, 255, 0, 255}},
		{0, 1, color.RGBA{0, 0, 255, 255}},
		{1, 1, color.RGBA{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.expected {
			t.Errorf("Pixel (%d,%d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
		}
	}
}
