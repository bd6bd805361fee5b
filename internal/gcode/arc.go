package gcode

import "math"

// Arc is the resolved geometry of an arc move. Angles are in degrees,
// measured counter-clockwise from the positive X axis; Sweep is the
// positive angle travelled in the winding direction.
type Arc struct {
	CenterX, CenterY float64
	Radius           float64
	Start            float64
	Sweep            float64
	CW               bool
}

// Length returns the arc length.
func (a Arc) Length() float64 {
	return a.Radius * a.Sweep * math.Pi / 180
}

// Point returns the point at the given fraction of the sweep.
func (a Arc) Point(t float64) (x, y float64) {
	d := a.Sweep * t
	if a.CW {
		d = -d
	}
	rad := (a.Start + d) * math.Pi / 180
	return a.CenterX + a.Radius*math.Cos(rad), a.CenterY + a.Radius*math.Sin(rad)
}

func linearDistance(x0, y0, x1, y1 float64) float64 {
	return hypot(x1-x0, y1-y0)
}

func angle(cx, cy, x, y float64) float64 {
	return math.Atan2(y-cy, x-cx) * 180 / math.Pi
}

// angularDistance returns the angle swept from a to b, following the
// winding rather than the shorter way round.
func angularDistance(a, b float64, cw bool) float64 {
	d := b - a
	if cw {
		d = a - b
	}
	d = math.Mod(d, 360)
	if d <= 0 {
		d += 360
	}
	return d
}

// radiusCenter solves the center of a radius arc. A negative radius
// selects the arc larger than a half circle. The returned radius is
// widened to half the chord when r cannot span it.
func radiusCenter(x0, y0, x1, y1, r float64, cw bool) (cx, cy, radius float64) {
	dx, dy := x1-x0, y1-y0
	chord := hypot(dx, dy)
	radius = abs(r)
	if chord == 0 {
		return x0, y0, radius
	}
	h2 := 4*r*r - dx*dx - dy*dy
	if h2 < 0 {
		// Radius too short for the chord; the closest arc is a half circle.
		h2 = 0
		radius = chord / 2
	}
	h := -math.Sqrt(h2) / chord
	if !cw {
		h = -h
	}
	if r < 0 {
		h = -h
	}
	return x0 + 0.5*(dx-dy*h), y0 + 0.5*(dy+dx*h), radius
}

func hypot(x, y float64) float64 { return math.Hypot(x, y) }

func abs(v float64) float64 { return math.Abs(v) }
