package renderer

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// ToImage converts a row-major linear color buffer (row 0 at the top) into an
// 8-bit RGBA image with gamma 2 correction
func ToImage(buffer []core.Vec3, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, vec3ToColor(buffer[y*width+x]))
		}
	}
	return img
}

// vec3ToColor converts a linear color to an opaque RGBA color
func vec3ToColor(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: channelToByte(c.X),
		G: channelToByte(c.Y),
		B: channelToByte(c.Z),
		A: 255,
	}
}

// channelToByte applies gamma 2 and truncates to [0, 255]. NaN maps to 0.
func channelToByte(v float32) uint8 {
	if math32.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(255 * math32.Sqrt(v))
}
