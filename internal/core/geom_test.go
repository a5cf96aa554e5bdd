package core

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		overlapX bool
		overlap  bool
	}{
		{
			name:     "overlapping boxes",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 5, Y: 5, W: 10, H: 10},
			overlapX: true,
			overlap:  true,
		},
		{
			name:     "touching edges",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 10, Y: 0, W: 10, H: 10},
			overlapX: false,
			overlap:  false,
		},
		{
			name:     "same column, apart vertically",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 2, Y: 20, W: 4, H: 4},
			overlapX: true,
			overlap:  false,
		},
		{
			name:     "fractional overlap",
			a:        Box{X: 35, Y: 185, W: 30, H: 30},
			b:        Box{X: 64.5, Y: 0, W: 60, H: 200},
			overlapX: true,
			overlap:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.OverlapsX(tc.b); got != tc.overlapX {
				t.Errorf("OverlapsX() = %v, expected %v", got, tc.overlapX)
			}
			if got := tc.a.Overlaps(tc.b); got != tc.overlap {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.overlap)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.overlap {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.overlap)
			}
		})
	}
}
