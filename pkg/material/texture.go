package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// TextureKind selects the texture variant
type TextureKind uint8

const (
	TextureConstant TextureKind = iota
	TextureCheckered
)

// checkerFrequency scales world coordinates before the sine product
const checkerFrequency = 10.0

// Texture maps a surface point to a color
type Texture struct {
	Kind TextureKind
	Odd  core.Vec3 // Constant color, or the checker color where the sine product is negative
	Even core.Vec3 // Checker color where the sine product is non-negative
}

// NewSolidColor creates a constant-color texture
func NewSolidColor(color core.Vec3) Texture {
	return Texture{Kind: TextureConstant, Odd: color}
}

// NewCheckerTexture creates a procedural 3D checkerboard alternating between odd and even
func NewCheckerTexture(odd, even core.Vec3) Texture {
	return Texture{Kind: TextureCheckered, Odd: odd, Even: even}
}

// Value returns the texture color at the given point
func (t Texture) Value(point core.Vec3) core.Vec3 {
	switch t.Kind {
	case TextureCheckered:
		p := point.Multiply(checkerFrequency)
		sines := math32.Sin(p.X) * math32.Sin(p.Y) * math32.Sin(p.Z)
		if sines < 0 {
			return t.Odd
		}
		return t.Even
	default:
		return t.Odd
	}
}
