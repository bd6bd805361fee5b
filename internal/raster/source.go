package raster

import (
	"fmt"
	"image"
)

// Source is a grayscale intensity bitmap. Intensity returns 0 for black and
// 255 for white; coordinates outside Width×Height are a programming error.
type Source interface {
	Width() int
	Height() int
	Intensity(x, y int) uint8
}

// GrayImage adapts an *image.Gray.
type GrayImage struct {
	*image.Gray
}

func (g GrayImage) Width() int  { return g.Bounds().Dx() }
func (g GrayImage) Height() int { return g.Bounds().Dy() }

func (g GrayImage) Intensity(x, y int) uint8 {
	b := g.Bounds()
	checkBounds(x, y, b.Dx(), b.Dy())
	return g.GrayAt(b.Min.X+x, b.Min.Y+y).Y
}

// ImageSource adapts any image by its luma.
type ImageSource struct {
	image.Image
}

func (s ImageSource) Width() int  { return s.Bounds().Dx() }
func (s ImageSource) Height() int { return s.Bounds().Dy() }

func (s ImageSource) Intensity(x, y int) uint8 {
	b := s.Bounds()
	checkBounds(x, y, b.Dx(), b.Dy())
	return Luma(s.At(b.Min.X+x, b.Min.Y+y))
}

// Luma returns the 8-bit brightness of a color, using the 299/587/114
// weights.
func Luma(c interface{ RGBA() (r, g, b, a uint32) }) uint8 {
	r, g, b, _ := c.RGBA()
	r8 := r >> 8
	g8 := g >> 8
	b8 := b >> 8
	return uint8((299*r8 + 587*g8 + 114*b8) / 1000)
}

func checkBounds(x, y, w, h int) {
	if x < 0 || y < 0 || x >= w || y >= h {
		panic(fmt.Errorf("raster: pixel (%d,%d) outside %dx%d", x, y, w, h))
	}
}
