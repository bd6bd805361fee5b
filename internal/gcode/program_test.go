package gcode

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `; engraving job
G21
G90

F1000
G0 X0 Y0
M5 S0
   M3
G1 X1.000 S100 F500
X2.500 S40
(comment only)
$H
M5
G0 Y0.100 F1000
G2 X3 Y3 R1.5
G4 P0.5
`

func TestRead(t *testing.T) {
	p, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	want := []string{
		"G21",
		"G90",
		"F1000",
		"G0 X0 Y0",
		"M5 S0",
		"M3",
		"G1 X1.000 S100 F500",
		"X2.500 S40",
		"M5",
		"G0 Y0.100 F1000",
		"G2 X3 Y3 R1.5",
		"G4 P0.5",
	}
	var got []string
	for _, c := range p.Commands() {
		got = append(got, c.String())
	}
	assert.Equal(t, want, got)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "job.gcode")
	require.NoError(t, p.SaveFile(path))

	q := LoadFile(path)
	require.Equal(t, p.Len(), q.Len())
	for i := 0; i < p.Len(); i++ {
		a, b := p.At(i), q.At(i)
		assert.Equal(t, a.String(), b.String())
		assert.Equal(t, a.Motion, b.Motion)
		assert.Equal(t, [8]Word{a.X, a.Y, a.I, a.J, a.R, a.F, a.S, a.P}, [8]Word{b.X, b.Y, b.I, b.J, b.R, b.F, b.S, b.P})
		assert.Equal(t, a.modes, b.modes)
	}
	assert.Equal(t, Analyze(p), Analyze(q))
}

func TestLoadMissingFile(t *testing.T) {
	p := LoadFile(filepath.Join(t.TempDir(), "missing.gcode"))
	require.NotNil(t, p)
	assert.Zero(t, p.Len())
	s := Analyze(p)
	assert.Zero(t, s.Travel())
	assert.False(t, s.Range.Drawing.Valid())
}

func TestSaveFileError(t *testing.T) {
	p := NewProgram(Parse("G90"))
	err := p.SaveFile(filepath.Join(t.TempDir(), "no", "such", "dir", "job.gcode"))
	assert.Error(t, err)
}

func TestProgramString(t *testing.T) {
	p := NewProgram(Parse("G90"), Parse(" M3 "))
	p.AppendLine("; nothing")
	p.AppendLine("G1 X1")
	assert.Equal(t, "G90\nM3\nG1 X1\n", p.String())
	p.Reset()
	assert.Zero(t, p.Len())
}
