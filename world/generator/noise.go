package generator

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseField is a deterministic pseudo-random scalar field over 2D/3D world
// coordinates. Two fields built from the same seed are interchangeable, so
// every concurrent generation gets its own instance without affecting the
// produced terrain.
type NoiseField struct {
	seed  int64
	noise opensimplex.Noise
}

// NewNoiseField creates a noise field for the seed passed.
func NewNoiseField(seed int64) *NoiseField {
	return &NoiseField{seed: seed, noise: opensimplex.New(seed)}
}

// Seed returns the seed the field was built with.
func (n *NoiseField) Seed() int64 {
	return n.seed
}

// Sample2D returns a fractal noise value in [-1, 1] for the world column
// (x, z). freq scales the coordinates of the first octave; each further
// octave doubles the frequency and halves the amplitude.
func (n *NoiseField) Sample2D(x, z float64, freq float64, octaves int) float64 {
	if octaves < 1 {
		octaves = 1
	}
	var sum, norm float64
	amp := 1.0
	for i := 0; i < octaves; i++ {
		sum += n.noise.Eval2(x*freq, z*freq) * amp
		norm += amp
		amp /= 2
		freq *= 2
	}
	return sum / norm
}

// Sample3D returns a fractal noise value in [-1, 1] for the world position
// (x, y, z).
func (n *NoiseField) Sample3D(x, y, z float64, freq float64, octaves int) float64 {
	if octaves < 1 {
		octaves = 1
	}
	var sum, norm float64
	amp := 1.0
	for i := 0; i < octaves; i++ {
		sum += n.noise.Eval3(x*freq, y*freq, z*freq) * amp
		norm += amp
		amp /= 2
		freq *= 2
	}
	return sum / norm
}
