package gcode

import "time"

// ProgramState is the modal machine state while replaying a program.
type ProgramState struct {
	X, Y     float64
	Feed     float64
	Absolute bool
	Laser    bool
	// Motion is the motion mode in effect for lines without a motion word.
	Motion Motion
	// CW remembers the winding of the last arc.
	CW bool
	// Power is the last S value seen outside a dwell.
	Power Word
}

// apply updates the state with the modal words of c and returns the move
// the command performs, if any.
func (s *ProgramState) apply(c *Command) (Segment, bool) {
	if c.IsLaserOn() {
		s.Laser = true
	} else if c.IsLaserOff() {
		s.Laser = false
	}
	if c.IsRelativeCoord() {
		s.Absolute = false
	}
	if c.IsAbsoluteCoord() {
		s.Absolute = true
	}
	if c.F.Set {
		s.Feed = c.F.Value
	}
	if c.Motion != MotionNone {
		s.Motion = c.Motion
	}
	if c.Motion.arc() {
		s.CW = c.IsCW(s.CW)
	}
	if c.S.Set && !c.IsPause() {
		s.Power = c.S
	}
	if !c.IsMovement() || !c.TrueMovement(s.X, s.Y, s.Absolute) {
		return Segment{}, false
	}
	x, y := c.Target(s.X, s.Y, s.Absolute)
	seg := Segment{
		Command: c,
		FromX:   s.X,
		FromY:   s.Y,
		ToX:     x,
		ToY:     y,
		Laser:   s.Laser,
	}
	if s.Motion.arc() {
		a := c.Arc(s.X, s.Y, x, y, s.CW)
		seg.Arc = &a
	}
	s.X, s.Y = x, y
	return seg, true
}

// IsArc reports whether c moves along an arc when executed in state s,
// counting lines that inherit a modal G2 or G3.
func (s ProgramState) IsArc(c *Command) bool {
	if !c.IsMovement() {
		return false
	}
	if c.Motion != MotionNone {
		return c.Motion.arc()
	}
	return s.Motion.arc()
}

// Dwell returns the duration of a pause command. P takes precedence over
// S; both are read as seconds.
func (c *Command) Dwell() time.Duration {
	switch {
	case c.P.Set:
		return seconds(c.P.Value)
	case c.S.Set:
		return seconds(c.S.Value)
	}
	return 0
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

func minutes(v float64) time.Duration {
	return time.Duration(v * float64(time.Minute))
}

// Summary is the result of analysing a program.
type Summary struct {
	Range     ProgramRange
	TravelOn  float64
	TravelOff float64
	TimeOn    time.Duration
	TimeOff   time.Duration
}

func (s Summary) Travel() float64 { return s.TravelOn + s.TravelOff }

func (s Summary) EstimatedTime() time.Duration { return s.TimeOn + s.TimeOff }

// Analyze replays p once, deriving its bounds, travel and estimated time.
// Every command is annotated with the cumulative offset after it executes,
// replacing annotations of earlier passes.
func Analyze(p *Program) Summary {
	s := Summary{Range: NewProgramRange()}
	s.Range.UpdateXY(0, 0, false)
	var st ProgramState
	for _, c := range p.cmds {
		var delay time.Duration
		if c.S.Set && !c.IsPause() {
			s.Range.UpdatePower(c.S.Value)
		}
		if seg, ok := st.apply(c); ok {
			s.Range.UpdateXY(seg.ToX, seg.ToY, st.Laser)
			d := seg.Length()
			if st.Laser {
				s.TravelOn += d
			} else {
				s.TravelOff += d
			}
			if d != 0 && st.Feed != 0 {
				delay = minutes(d / st.Feed)
			}
		} else if c.IsPause() {
			delay = c.Dwell()
		}
		if st.Laser {
			s.TimeOn += delay
		} else {
			s.TimeOff += delay
		}
		c.SetOffset(Offset{Distance: s.Travel(), Time: s.EstimatedTime()})
	}
	return s
}
