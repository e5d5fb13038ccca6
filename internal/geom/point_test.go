package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnap(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want Point
	}{
		{"origin", 0, 0, Pt(0, 0)},
		{"exact grid point", 300, 200, Pt(300, 200)},
		{"rounds down below midpoint", 149, 0, Pt(100, 0)},
		{"rounds up at midpoint", 150, 0, Pt(200, 0)},
		{"rounds up above midpoint", 151, 0, Pt(200, 0)},
		{"negative rounds toward nearest", -149, -151, Pt(-100, -200)},
		{"negative midpoint", -150, 0, Pt(-200, 0)},
		{"mixed axes", 249.9, -50.1, Pt(200, -100)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Snap(tc.x, tc.y))
		})
	}
}

func TestSnapPoint(t *testing.T) {
	assert.Equal(t, Pt(100, 0), SnapPoint(Pt(120, 49)))
	assert.Equal(t, Pt(200, -100), SnapPoint(Pt(170, -90)))
	assert.Equal(t, Pt(0, 0), SnapPoint(Pt(0, 0)))
}

func TestAdd(t *testing.T) {
	p := Pt(100, 200)
	assert.Equal(t, Pt(300, 100), p.Add(200, -100))
	// Add returns a new value; the receiver is untouched.
	assert.Equal(t, Pt(100, 200), p)
}

func TestPointAsMapKey(t *testing.T) {
	seen := map[Point]int{}
	seen[Pt(100, 200)]++
	seen[Pt(100, 200)]++
	seen[Pt(200, 100)]++

	assert.Equal(t, 2, seen[Pt(100, 200)], "equal coordinates must collide")
	assert.Equal(t, 1, seen[Pt(200, 100)])
}
