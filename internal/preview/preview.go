// Package preview draws analysed programs onto images.
package preview

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"lasergcode/internal/gcode"
)

var ErrNothingToDraw = errors.New("preview: program has no laser moves")

var (
	firstColor  = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
	laserColor  = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	travelColor = color.NRGBA{R: 211, G: 211, B: 211, A: 255}
	guideColor  = color.NRGBA{R: 170, G: 170, B: 170, A: 255}
)

// Options controls the rendered image.
type Options struct {
	Width, Height int
	// Margin in pixels kept free around the drawing.
	Margin int
	// StrokeWidth in pixels.
	StrokeWidth float64
	// Travel draws the laser-off moves.
	Travel bool
}

func DefaultOptions() Options {
	return Options{Width: 800, Height: 800, Margin: 10, StrokeWidth: 1, Travel: true}
}

type style struct {
	color  color.NRGBA
	dashed bool
}

// Renderer rasterizes program segments with a rasterx dasher.
type Renderer struct {
	img    *image.NRGBA
	dasher *rasterx.Dasher
	zoom   float64
	opt    Options

	cur     style
	started bool
	last    fixed.Point26_6
}

// Render draws p as analysed into s. Laser moves are shaded by power, the
// first move is blue and travel moves are dashed.
func Render(p *gcode.Program, s gcode.Summary, opt Options) (*image.NRGBA, error) {
	if !s.Range.Drawing.Valid() {
		return nil, ErrNothingToDraw
	}
	r := NewRenderer(s.Range.Drawing, opt)
	r.guides(s.Range.Drawing)
	for _, seg := range gcode.Segments(p, s.Range.Power) {
		r.Segment(seg)
	}
	r.Flush()
	return r.img, nil
}

// NewRenderer returns a renderer scaled so the drawing range fits the
// image.
func NewRenderer(drawing gcode.XYRange, opt Options) *Renderer {
	img := image.NewNRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(opt.Width, opt.Height, img, img.Bounds())
	r := &Renderer{
		img:    img,
		dasher: rasterx.NewDasher(opt.Width, opt.Height, scanner),
		zoom:   zoom(drawing, opt),
		opt:    opt,
	}
	return r
}

func zoom(drawing gcode.XYRange, opt Options) float64 {
	w := float64(opt.Width - opt.Margin)
	h := float64(opt.Height - opt.Margin)
	z := math.Inf(1)
	if drawing.X.Max > 0 {
		z = w / drawing.X.Max
	}
	if drawing.Y.Max > 0 {
		z = math.Min(z, h/drawing.Y.Max)
	}
	if math.IsInf(z, 1) {
		z = 1
	}
	return z
}

// point maps program coordinates to pixels; Y grows upwards in programs.
func (r *Renderer) point(x, y float64) fixed.Point26_6 {
	return rasterx.ToFixedP(x*r.zoom, float64(r.opt.Height)-y*r.zoom)
}

func (r *Renderer) guides(drawing gcode.XYRange) {
	st := style{color: guideColor, dashed: true}
	w := float64(r.opt.Width) / r.zoom
	h := float64(r.opt.Height) / r.zoom
	for _, y := range []float64{drawing.Y.Min, drawing.Y.Max} {
		r.line(st, r.point(0, y), r.point(w, y))
	}
	for _, x := range []float64{drawing.X.Min, drawing.X.Max} {
		r.line(st, r.point(x, 0), r.point(x, h))
	}
	r.Flush()
}

// Segment draws one program movement.
func (r *Renderer) Segment(seg gcode.Segment) {
	var st style
	switch {
	case seg.First:
		st = style{color: firstColor}
	case seg.Laser:
		st = style{color: laserColor}
		st.color.A = seg.Alpha
	default:
		if !r.opt.Travel {
			r.Flush()
			return
		}
		st = style{color: travelColor, dashed: true}
	}
	from := r.point(seg.FromX, seg.FromY)
	if seg.Arc == nil {
		r.line(st, from, r.point(seg.ToX, seg.ToY))
		return
	}
	steps := max(8, int(math.Ceil(seg.Arc.Sweep/5)))
	for i := 1; i <= steps; i++ {
		x, y := seg.Arc.Point(float64(i) / float64(steps))
		if i == steps {
			x, y = seg.ToX, seg.ToY
		}
		to := r.point(x, y)
		r.line(st, from, to)
		from = to
	}
}

// line adds a line to the current path, starting a new path when the
// style changes or the line does not continue the path.
func (r *Renderer) line(st style, from, to fixed.Point26_6) {
	if r.started && (st != r.cur || from != r.last) {
		r.Flush()
	}
	if !r.started {
		r.cur = st
		r.stroke(st)
		r.dasher.Start(from)
		r.started = true
	}
	r.dasher.Line(to)
	r.last = to
}

func (r *Renderer) stroke(st style) {
	width := fixed.Int26_6(r.opt.StrokeWidth * 64)
	var dashes []float64
	if st.dashed {
		dashes = []float64{4, 4}
	}
	r.dasher.SetStroke(width, 0, rasterx.ButtCap, rasterx.ButtCap, rasterx.RoundGap, rasterx.ArcClip, dashes, 0)
	r.dasher.SetColor(st.color)
}

// Flush rasterizes the pending path.
func (r *Renderer) Flush() {
	if !r.started {
		return
	}
	r.dasher.Stop(false)
	r.dasher.Draw()
	r.dasher.Clear()
	r.started = false
}
