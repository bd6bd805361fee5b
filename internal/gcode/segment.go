package gcode

// Segment is one visible movement of a program, resolved to absolute
// coordinates.
type Segment struct {
	Command  *Command
	FromX    float64
	FromY    float64
	ToX, ToY float64
	Laser    bool
	// Alpha shades laser moves by their power; 255 without a power range.
	Alpha uint8
	// First marks the first movement of the program.
	First bool
	// Arc is set for arc moves.
	Arc *Arc
}

func (s Segment) Length() float64 {
	if s.Arc != nil {
		return s.Arc.Length()
	}
	return linearDistance(s.FromX, s.FromY, s.ToX, s.ToY)
}

// Segments replays p and returns its movements in order. The power range
// r, as derived by Analyze, shades each movement.
func Segments(p *Program, r PowerRange) []Segment {
	var st ProgramState
	var segs []Segment
	for _, c := range p.cmds {
		seg, ok := st.apply(c)
		if !ok {
			continue
		}
		seg.Alpha = 255
		if st.Power.Set {
			seg.Alpha = Alpha(st.Power.Value, r)
		}
		seg.First = len(segs) == 0
		segs = append(segs, seg)
	}
	return segs
}

// Alpha maps a power value onto [0, 255] across the power range.
func Alpha(power float64, r PowerRange) uint8 {
	if !r.Valid() {
		return 255
	}
	a := (power - r.Min) * 255 / (r.Max - r.Min)
	return uint8(max(0, min(255, a)))
}
