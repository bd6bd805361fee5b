// Package raster compiles grayscale bitmaps into laser engraving programs.
//
// Each image line is scanned in alternating directions. Consecutive pixels
// of equal power are merged into one move, and lines holding only
// background are skipped.
package raster

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"lasergcode/internal/gcode"
)

type Direction int

const (
	// Horizontal scans along X and steps along Y.
	Horizontal Direction = iota
	// Vertical scans along Y and steps along X. Pixel lookup is mirrored
	// on both axes to match the vertical mounting of the head.
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return "Direction(" + strconv.Itoa(int(d)) + ")"
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "h", "0":
		return Horizontal, nil
	case "vertical", "v", "1", "2":
		return Vertical, nil
	}
	return 0, fmt.Errorf("raster: unknown scan direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Params controls the compiled program.
type Params struct {
	// Resolution in pixels per length unit.
	Resolution float64
	OriginX    float64
	OriginY    float64
	// MarkSpeed is the feed while engraving, TravelSpeed the feed over
	// background and between lines, in units per minute.
	MarkSpeed   int
	TravelSpeed int
	MinPower    int
	MaxPower    int
	LaserOn     string
	LaserOff    string
	Direction   Direction
	// LongForm repeats the motion word on every segment.
	LongForm bool
}

func (p Params) Validate() error {
	var errs []error
	if !(p.Resolution > 0) {
		errs = append(errs, fmt.Errorf("resolution must be positive, got %v", p.Resolution))
	}
	if p.MarkSpeed <= 0 || p.TravelSpeed <= 0 {
		errs = append(errs, fmt.Errorf("speeds must be positive, got mark %d travel %d", p.MarkSpeed, p.TravelSpeed))
	}
	if p.MinPower < 0 || p.MaxPower < p.MinPower {
		errs = append(errs, fmt.Errorf("invalid power range [%d, %d]", p.MinPower, p.MaxPower))
	}
	if strings.TrimSpace(p.LaserOn) == "" || strings.TrimSpace(p.LaserOff) == "" {
		errs = append(errs, errors.New("laser on and off directives are required"))
	}
	if p.Direction != Horizontal && p.Direction != Vertical {
		errs = append(errs, fmt.Errorf("invalid direction %v", p.Direction))
	}
	return errors.Join(errs...)
}

// Power maps a brightness onto [min, max]: white engraves at min, black at
// max.
func Power(brightness uint8, min, max int) int {
	v := float64(255-int(brightness)) * float64(max-min) / 255
	return int(math.Round(v)) + min
}

// form tracks whether the next segment has to carry its motion word.
type form int

const (
	needFullForm form = iota
	canUseShortForm
)

type compiler struct {
	p     Params
	prog  *gcode.Program
	form  form
	speed int
}

// run is a stretch of equal power along a line, ending at the pixel
// boundary end.
type run struct {
	power int
	end   int
}

// Compile converts src into an engraving program. Lines are processed from
// the last image row (or column) to the first.
func Compile(src Source, p Params) *gcode.Program {
	c := &compiler{p: p, prog: new(gcode.Program)}
	c.header()
	sc := newScanner(src, p.Direction)
	forward := true
	var runs []run
	for line := 0; line < sc.lines; line++ {
		runs = sc.runs(runs[:0], line, forward, p.MinPower, p.MaxPower)
		if !background(runs, p.MinPower) {
			c.emit(p.LaserOn)
			for _, r := range runs {
				c.segment(sc.axis, sc.origin(p), r)
			}
			c.emit(p.LaserOff)
			forward = !forward
		}
		c.advance(sc.step, sc.stepOrigin(p), line+1)
	}
	return c.prog
}

func background(runs []run, min int) bool {
	return len(runs) == 0 || len(runs) == 1 && runs[0].power == min
}

func (c *compiler) emit(line string) {
	c.prog.Append(gcode.Parse(line))
}

func (c *compiler) header() {
	c.emit("G21")
	c.emit("G90")
	c.emit("F" + strconv.Itoa(c.p.TravelSpeed))
	c.emit("G0 X" + coord(c.p.OriginX) + " Y" + coord(c.p.OriginY))
	c.emit(c.p.LaserOff + " S" + strconv.Itoa(c.p.MinPower))
	c.speed = c.p.TravelSpeed
	c.form = needFullForm
}

func (c *compiler) segment(axis string, origin float64, r run) {
	speed := c.p.MarkSpeed
	if r.power == c.p.MinPower {
		speed = c.p.TravelSpeed
	}
	var b strings.Builder
	if c.form == needFullForm || c.p.LongForm {
		b.WriteString("G1 ")
	}
	b.WriteString(axis)
	b.WriteString(coord(origin + float64(r.end)/c.p.Resolution))
	b.WriteString(" S")
	b.WriteString(strconv.Itoa(r.power))
	if speed != c.speed {
		b.WriteString(" F")
		b.WriteString(strconv.Itoa(speed))
		c.speed = speed
	}
	c.emit(b.String())
	c.form = canUseShortForm
}

func (c *compiler) advance(axis string, origin float64, line int) {
	c.emit("G0 " + axis + coord(origin+float64(line)/c.p.Resolution) + " F" + strconv.Itoa(c.p.TravelSpeed))
	c.speed = c.p.TravelSpeed
	c.form = needFullForm
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// scanner walks the pixels of src line by line.
type scanner struct {
	src    Source
	dir    Direction
	lines  int
	length int
	axis   string
	step   string
}

func newScanner(src Source, dir Direction) scanner {
	s := scanner{src: src, dir: dir}
	w, h := src.Width(), src.Height()
	switch dir {
	case Vertical:
		s.lines, s.length = w, h
		s.axis, s.step = "Y", "X"
	default:
		s.lines, s.length = h, w
		s.axis, s.step = "X", "Y"
	}
	return s
}

func (s scanner) origin(p Params) float64 {
	if s.dir == Vertical {
		return p.OriginY
	}
	return p.OriginX
}

func (s scanner) stepOrigin(p Params) float64 {
	if s.dir == Vertical {
		return p.OriginX
	}
	return p.OriginY
}

// intensity returns the pixel at position pos of the given line.
func (s scanner) intensity(line, pos int) uint8 {
	h := s.src.Height()
	if s.dir == Vertical {
		// Columns run left to right, each scanned bottom up.
		return s.src.Intensity(line, h-1-pos)
	}
	return s.src.Intensity(pos, h-1-line)
}

// runs appends the power runs of line in scan order.
func (s scanner) runs(dst []run, line int, forward bool, min, max int) []run {
	n := s.length
	if n == 0 {
		return dst
	}
	power := func(pos int) int {
		return Power(s.intensity(line, pos), min, max)
	}
	if forward {
		cur := power(0)
		for pos := 1; pos < n; pos++ {
			if pw := power(pos); pw != cur {
				dst = append(dst, run{power: cur, end: pos})
				cur = pw
			}
		}
		return append(dst, run{power: cur, end: n})
	}
	cur := power(n - 1)
	for pos := n - 2; pos >= 0; pos-- {
		if pw := power(pos); pw != cur {
			dst = append(dst, run{power: cur, end: pos + 1})
			cur = pw
		}
	}
	return append(dst, run{power: cur, end: 0})
}
