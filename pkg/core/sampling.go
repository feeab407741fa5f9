package core

import (
	"math/rand"
)

// RandomVec3 returns a vector with each component uniform in [0, 1)
func RandomVec3(random *rand.Rand) Vec3 {
	return NewVec3(random.Float32(), random.Float32(), random.Float32())
}

// RandomInUnitSphere generates a random point strictly inside the unit ball by rejection sampling
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		// Generate random point in [-1,1]³ cube
		p := RandomVec3(random).Multiply(2).AddScalar(-1)
		if p.Dot(p) < 1.0 {
			return p
		}
	}
}

// RandomInUnitDisk generates a random point strictly inside the unit disk in the XY plane (for depth of field)
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		p := NewVec3(2*random.Float32()-1, 2*random.Float32()-1, 0)
		if p.Dot(p) < 1.0 {
			return p
		}
	}
}
