package generator

import "testing"

func TestNoiseFieldDeterministic(t *testing.T) {
	a := NewNoiseField(42)
	b := NewNoiseField(42)
	for i := 0; i < 64; i++ {
		x, z := float64(i*13), float64(i*7-100)
		if a.Sample2D(x, z, 1.0/64, 4) != b.Sample2D(x, z, 1.0/64, 4) {
			t.Fatalf("two fields with the same seed disagree at (%v, %v)", x, z)
		}
		if a.Sample3D(x, 20, z, 1.0/24, 2) != b.Sample3D(x, 20, z, 1.0/24, 2) {
			t.Fatalf("3D samples with the same seed disagree at (%v, %v)", x, z)
		}
	}
}

func TestNoiseFieldRange(t *testing.T) {
	n := NewNoiseField(7)
	for x := -50; x <= 50; x += 3 {
		for z := -50; z <= 50; z += 3 {
			v := n.Sample2D(float64(x), float64(z), 1.0/32, 4)
			if v < -1 || v > 1 {
				t.Fatalf("Sample2D(%d, %d) = %v outside [-1, 1]", x, z, v)
			}
			w := n.Sample3D(float64(x), 30, float64(z), 1.0/32, 3)
			if w < -1 || w > 1 {
				t.Fatalf("Sample3D(%d, %d) = %v outside [-1, 1]", x, z, w)
			}
		}
	}
}

func TestNoiseFieldSeedsDiffer(t *testing.T) {
	a := NewNoiseField(1)
	b := NewNoiseField(2)
	same := true
	for i := 0; i < 16 && same; i++ {
		x := float64(i * 17)
		if a.Sample2D(x, -x, 1.0/64, 3) != b.Sample2D(x, -x, 1.0/64, 3) {
			same = false
		}
	}
	if same {
		t.Fatalf("fields with different seeds produced identical samples")
	}
}
