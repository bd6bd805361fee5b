package gcode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngularDistance(t *testing.T) {
	tests := []struct {
		a, b float64
		cw   bool
		want float64
	}{
		{180, 0, true, 180},
		{180, 0, false, 180},
		{180, 90, true, 90},
		{180, 90, false, 270},
		{-90, 0, true, 270},
		{-90, 0, false, 90},
		{10, 10, true, 360},
	}
	for _, test := range tests {
		got := angularDistance(test.a, test.b, test.cw)
		assert.InDelta(t, test.want, got, 1e-9, "%v -> %v cw=%v", test.a, test.b, test.cw)
	}
}

func TestArcGeometry(t *testing.T) {
	tests := []struct {
		line       string
		cw         bool
		cx, cy     float64
		sweep      float64
		toX, toY   float64
		wantLength float64
	}{
		{"G2 X10 Y0 I5 J0", true, 5, 0, 180, 10, 0, 5 * math.Pi},
		{"G2 X5 Y5 I5 J0", true, 5, 0, 90, 5, 5, 2.5 * math.Pi},
		{"G3 X5 Y5 I5 J0", false, 5, 0, 270, 5, 5, 7.5 * math.Pi},
		{"G2 X5 Y5 R5", true, 5, 0, 90, 5, 5, 2.5 * math.Pi},
		{"G2 X5 Y5 R-5", true, 0, 5, 270, 5, 5, 7.5 * math.Pi},
		{"G3 X5 Y5 R5", false, 0, 5, 90, 5, 5, 2.5 * math.Pi},
		// R shorter than half the chord draws the half circle over it.
		{"G2 X2 Y0 R0.5", true, 1, 0, 180, 2, 0, math.Pi},
	}
	for _, test := range tests {
		c := Parse(test.line)
		a := c.Arc(0, 0, test.toX, test.toY, c.IsCW(false))
		assert.Equal(t, test.cw, a.CW, test.line)
		assert.InDelta(t, test.cx, a.CenterX, 1e-9, test.line)
		assert.InDelta(t, test.cy, a.CenterY, 1e-9, test.line)
		assert.InDelta(t, test.sweep, a.Sweep, 1e-9, test.line)
		assert.InDelta(t, test.wantLength, a.Length(), 1e-9, test.line)
		x, y := a.Point(1)
		assert.InDelta(t, test.toX, x, 1e-9, test.line)
		assert.InDelta(t, test.toY, y, 1e-9, test.line)
		x, y = a.Point(0)
		assert.InDelta(t, 0, x, 1e-9, test.line)
		assert.InDelta(t, 0, y, 1e-9, test.line)
	}
}
