// Package gcode parses, replays and stores the line oriented motion programs
// driven to a laser engraver.
package gcode

import (
	"strconv"
	"strings"
	"time"
)

// Word is a single command operand. An absent word is distinct from a word
// with value zero.
type Word struct {
	Value float64
	Set   bool
}

func word(v float64) Word {
	return Word{Value: v, Set: true}
}

type Motion int

const (
	// MotionNone marks a line without a motion word; the motion mode of
	// the previous commands stays in effect.
	MotionNone Motion = iota
	Rapid
	Linear
	ArcCW
	ArcCCW
)

func (m Motion) String() string {
	switch m {
	case Rapid:
		return "G0"
	case Linear:
		return "G1"
	case ArcCW:
		return "G2"
	case ArcCCW:
		return "G3"
	}
	return "none"
}

func (m Motion) arc() bool {
	return m == ArcCW || m == ArcCCW
}

type modal uint16

const (
	modalAbsolute modal = 1 << iota
	modalRelative
	modalLaserOn
	modalLaserOff
	modalPause
	modalInches
	modalMillimeters
	modalPlaneXY
	modalPlaneZX
	modalPlaneYZ
)

// Offset is the cumulative travel and time of a program right after a
// command has executed. It is written by Analyze.
type Offset struct {
	Distance float64
	Time     time.Duration
}

// Command is one parsed program line.
type Command struct {
	Motion Motion

	X, Y Word
	I, J Word
	R    Word
	F    Word
	S    Word
	P    Word

	modes  modal
	words  int
	text   string
	offset Offset
}

// Parse parses a single program line. Unknown letters, malformed numbers
// and comments are skipped; a line without any recognised word yields a
// command for which Empty reports true.
func Parse(line string) *Command {
	line = strings.TrimSpace(line)
	c := &Command{text: line}
	s := stripComments(line)
	for i := 0; i < len(s); {
		letter := upper(s[i])
		if letter < 'A' || letter > 'Z' {
			i++
			continue
		}
		k := i + 1
		for k < len(s) && (s[k] == ' ' || s[k] == '\t') {
			k++
		}
		j := k
		for j < len(s) && strings.IndexByte("+-.0123456789", s[j]) >= 0 {
			j++
		}
		if j == k {
			i++
			continue
		}
		v, err := strconv.ParseFloat(s[k:j], 64)
		i = j
		if err != nil {
			continue
		}
		c.set(letter, v)
	}
	return c
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func stripComments(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	if !strings.Contains(line, "(") {
		return line
	}
	var b strings.Builder
	depth := 0
	for i := 0; i < len(line); i++ {
		switch ch := line[i]; {
		case ch == '(':
			depth++
		case ch == ')' && depth > 0:
			depth--
		case depth == 0:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func (c *Command) set(letter byte, v float64) {
	switch letter {
	case 'G':
		c.setG(v)
	case 'M':
		switch v {
		case 3, 4:
			c.modes |= modalLaserOn
		case 5:
			c.modes |= modalLaserOff
		}
	case 'X':
		c.X = word(v)
	case 'Y':
		c.Y = word(v)
	case 'I':
		c.I = word(v)
	case 'J':
		c.J = word(v)
	case 'R':
		c.R = word(v)
	case 'F':
		c.F = word(v)
	case 'S':
		c.S = word(v)
	case 'P':
		c.P = word(v)
	default:
		return
	}
	c.words++
}

func (c *Command) setG(v float64) {
	switch v {
	case 0:
		c.Motion = Rapid
	case 1:
		c.Motion = Linear
	case 2:
		c.Motion = ArcCW
	case 3:
		c.Motion = ArcCCW
	case 4:
		c.modes |= modalPause
	case 17:
		c.modes |= modalPlaneXY
	case 18:
		c.modes |= modalPlaneZX
	case 19:
		c.modes |= modalPlaneYZ
	case 20:
		c.modes |= modalInches
	case 21:
		c.modes |= modalMillimeters
	case 90:
		c.modes |= modalAbsolute
	case 91:
		c.modes |= modalRelative
	}
}

// Empty reports whether the line carried no recognised word.
func (c *Command) Empty() bool { return c.words == 0 }

func (c *Command) IsMovement() bool { return c.X.Set || c.Y.Set }

// IsLinearMovement and IsArcMovement classify the line by its own motion
// word. A line relying on the modal motion is linear here; use
// ProgramState.IsArc for the motion it actually performs.
func (c *Command) IsLinearMovement() bool { return c.IsMovement() && !c.IsArcMovement() }

func (c *Command) IsArcMovement() bool { return c.IsMovement() && c.Motion.arc() }

func (c *Command) IsLaserOn() bool { return c.modes&modalLaserOn != 0 }

func (c *Command) IsLaserOff() bool { return c.modes&modalLaserOff != 0 }

func (c *Command) IsAbsoluteCoord() bool { return c.modes&modalAbsolute != 0 }

func (c *Command) IsRelativeCoord() bool { return c.modes&modalRelative != 0 }

func (c *Command) IsPause() bool { return c.modes&modalPause != 0 }

func (c *Command) IsInches() bool { return c.modes&modalInches != 0 }

func (c *Command) IsMillimeters() bool { return c.modes&modalMillimeters != 0 }

// Plane returns the plane selection word of the line, 17, 18 or 19, or 0
// when the line selects no plane.
func (c *Command) Plane() int {
	switch {
	case c.modes&modalPlaneXY != 0:
		return 17
	case c.modes&modalPlaneZX != 0:
		return 18
	case c.modes&modalPlaneYZ != 0:
		return 19
	}
	return 0
}

// Target resolves the end point of the command from the current position.
// Relative coordinates are added to the current position, absent
// coordinates keep it.
func (c *Command) Target(curX, curY float64, absolute bool) (x, y float64) {
	x, y = curX, curY
	if c.X.Set {
		if absolute {
			x = c.X.Value
		} else {
			x += c.X.Value
		}
	}
	if c.Y.Set {
		if absolute {
			y = c.Y.Value
		} else {
			y += c.Y.Value
		}
	}
	return x, y
}

// TrueMovement reports whether the command moves away from the current
// position.
func (c *Command) TrueMovement(curX, curY float64, absolute bool) bool {
	x, y := c.Target(curX, curY, absolute)
	return x != curX || y != curY
}

// IsCW reports the arc winding, falling back to previous when the line has
// no arc motion word.
func (c *Command) IsCW(previous bool) bool {
	switch c.Motion {
	case ArcCW:
		return true
	case ArcCCW:
		return false
	}
	return previous
}

// ArcRadius returns |R| for radius arcs and the length of the I,J center
// offset otherwise.
func (c *Command) ArcRadius() float64 {
	if c.R.Set {
		return abs(c.R.Value)
	}
	return hypot(c.I.Value, c.J.Value)
}

// Center returns the arc center of an I,J arc starting at curX, curY.
func (c *Command) Center(curX, curY float64) (x, y float64) {
	return curX + c.I.Value, curY + c.J.Value
}

// Arc resolves the full geometry of an arc move from (fromX, fromY) to
// (toX, toY) with the given winding.
func (c *Command) Arc(fromX, fromY, toX, toY float64, cw bool) Arc {
	var cx, cy float64
	radius := c.ArcRadius()
	if c.R.Set && !c.I.Set && !c.J.Set {
		cx, cy, radius = radiusCenter(fromX, fromY, toX, toY, c.R.Value, cw)
	} else {
		cx, cy = c.Center(fromX, fromY)
	}
	start := angle(cx, cy, fromX, fromY)
	end := angle(cx, cy, toX, toY)
	return Arc{
		CenterX: cx,
		CenterY: cy,
		Radius:  radius,
		Start:   start,
		Sweep:   angularDistance(start, end, cw),
		CW:      cw,
	}
}

// Offset returns the cumulative offset written by the last analysis.
func (c *Command) Offset() Offset { return c.offset }

func (c *Command) SetOffset(o Offset) { c.offset = o }

// String returns the canonical text of the command.
func (c *Command) String() string { return c.text }
