package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lasergcode/internal/gcode"
)

func TestRunCompile(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 2))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	src.SetGray(1, 0, color.Gray{Y: 0})
	src.SetGray(2, 1, color.Gray{Y: 0})

	dir := t.TempDir()
	job := DefaultJob()
	job.Resolution = 1
	opts := options{
		input:   writePNG(t, src),
		output:  filepath.Join(dir, "out.gcode"),
		preview: filepath.Join(dir, "out.png"),
		job:     job,
	}
	require.NoError(t, run(opts))

	prog := gcode.LoadFile(opts.output)
	require.Greater(t, prog.Len(), 5)
	assert.Equal(t, "G21", prog.At(0).String())
	s := gcode.Analyze(prog)
	assert.Equal(t, gcode.Range{Min: 0, Max: 4}, s.Range.Drawing.X)
	assert.Equal(t, float64(job.MaxPower), s.Range.Power.Max)

	f, err := os.Open(opts.preview)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, job.Preview.Width, img.Bounds().Dx())
}

func TestRunAnalyze(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.gcode")
	require.NoError(t, os.WriteFile(path, []byte("G90\nM3 S10\nG1 X10 Y0 F600\nM5\n"), 0o644))
	require.NoError(t, run(options{analyze: path, report: true, job: DefaultJob()}))
}

func TestRunErrors(t *testing.T) {
	job := DefaultJob()
	job.Resolution = 0
	err := run(options{input: "x.png", job: job})
	assert.ErrorContains(t, err, "invalid job")

	err = run(options{analyze: filepath.Join(t.TempDir(), "none.gcode"), job: DefaultJob()})
	assert.ErrorContains(t, err, "no commands")

	gif := filepath.Join(t.TempDir(), "image.gif")
	require.NoError(t, os.WriteFile(gif, []byte("GIF89a"), 0o644))
	err = run(options{input: gif, job: DefaultJob()})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReport(t *testing.T) {
	p, err := gcode.Read(strings.NewReader("G90\nM3 S10\nG1 X10 Y0 F600\nM5\nG0 X0 Y0\n"))
	require.NoError(t, err)
	out := Report("job.gcode", p, gcode.Analyze(p))
	assert.Contains(t, out, "job.gcode")
	assert.Contains(t, out, "Commands")
	assert.Contains(t, out, "10.000 mm in 1s")
	assert.Contains(t, out, "0.000 .. 10.000")
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "n/a", formatRange(gcode.NewRange()))
	r := gcode.NewRange()
	r.Update(2)
	r.Update(-1.5)
	assert.Equal(t, "-1.500 .. 2.000", formatRange(r))
}
