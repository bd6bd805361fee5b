package gcode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlpha(t *testing.T) {
	r := PowerRange{Range{10, 200}}
	assert.Equal(t, uint8(127), Alpha(105, r))
	assert.Equal(t, uint8(0), Alpha(10, r))
	assert.Equal(t, uint8(255), Alpha(200, r))
	assert.Equal(t, uint8(0), Alpha(-50, r))
	assert.Equal(t, uint8(255), Alpha(1000, r))
	assert.Equal(t, uint8(255), Alpha(1e20, r))
	assert.Equal(t, uint8(0), Alpha(-1e20, r))
	assert.Equal(t, uint8(255), Alpha(105, PowerRange{NewRange()}))
	assert.Equal(t, uint8(255), Alpha(105, PowerRange{Range{100, 100}}))
}

func TestSegments(t *testing.T) {
	p := program(t, `
G90
M5 S0
G0 X10
G0 X10
M3 S100
G1 Y10
G1 X0 S50
G2 X0 Y0 I0 J-5
`)
	s := Analyze(p)
	segs := Segments(p, s.Range.Power)
	require.Len(t, segs, 4)

	assert.True(t, segs[0].First)
	assert.False(t, segs[0].Laser)
	assert.Equal(t, [4]float64{0, 0, 10, 0}, [4]float64{segs[0].FromX, segs[0].FromY, segs[0].ToX, segs[0].ToY})

	assert.False(t, segs[1].First)
	assert.True(t, segs[1].Laser)
	assert.Equal(t, uint8(255), segs[1].Alpha)
	assert.Equal(t, "G1 Y10", segs[1].Command.String())

	assert.Equal(t, uint8(127), segs[2].Alpha)
	assert.Nil(t, segs[2].Arc)

	arc := segs[3].Arc
	require.NotNil(t, arc)
	assert.True(t, arc.CW)
	assert.InDelta(t, 0, arc.CenterX, 1e-9)
	assert.InDelta(t, 5, arc.CenterY, 1e-9)
	assert.InDelta(t, 5, arc.Radius, 1e-9)
	assert.InDelta(t, 90, arc.Start, 1e-9)
	assert.InDelta(t, 180, arc.Sweep, 1e-9)
	assert.InDelta(t, 5*math.Pi, segs[3].Length(), 1e-9)

	var total float64
	for _, seg := range segs {
		total += seg.Length()
	}
	assert.InDelta(t, s.Travel(), total, 1e-9)
}

func TestSegmentsWithoutPower(t *testing.T) {
	p := program(t, "G90\nM3\nG1 X1\n")
	segs := Segments(p, Analyze(p).Range.Power)
	require.Len(t, segs, 1)
	assert.Equal(t, uint8(255), segs[0].Alpha)
}
