package gcode

import "math"

// Range is a running minimum and maximum.
type Range struct {
	Min, Max float64
}

func NewRange() Range {
	return Range{Min: math.Inf(1), Max: math.Inf(-1)}
}

func (r *Range) Update(v float64) {
	r.Min = math.Min(r.Min, v)
	r.Max = math.Max(r.Max, v)
}

func (r *Range) Reset() { *r = NewRange() }

// Valid reports whether at least one value was observed.
func (r Range) Valid() bool {
	return !math.IsInf(r.Min, 1) && !math.IsInf(r.Max, -1)
}

type XYRange struct {
	X, Y Range
}

func NewXYRange() XYRange {
	return XYRange{X: NewRange(), Y: NewRange()}
}

func (r *XYRange) Update(x, y float64) {
	r.X.Update(x)
	r.Y.Update(y)
}

func (r *XYRange) Reset() { *r = NewXYRange() }

func (r XYRange) Valid() bool { return r.X.Valid() && r.Y.Valid() }

// PowerRange tracks the S values of a program.
type PowerRange struct {
	Range
}

// Valid reports whether the program varies its power above zero; a
// constant or non-positive power has no range to shade by.
func (r PowerRange) Valid() bool {
	return r.Range.Valid() && r.Min != r.Max && r.Max > 0
}

// ProgramRange holds the bounds derived by Analyze.
type ProgramRange struct {
	// Drawing covers positions reached with the laser on.
	Drawing XYRange
	// Moving covers every position reached.
	Moving XYRange
	Power  PowerRange
}

func NewProgramRange() ProgramRange {
	return ProgramRange{
		Drawing: NewXYRange(),
		Moving:  NewXYRange(),
		Power:   PowerRange{NewRange()},
	}
}

func (r *ProgramRange) UpdateXY(x, y float64, laser bool) {
	if laser {
		r.Drawing.Update(x, y)
	}
	r.Moving.Update(x, y)
}

func (r *ProgramRange) UpdatePower(s float64) { r.Power.Update(s) }

func (r *ProgramRange) Reset() { *r = NewProgramRange() }
