package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// LoadSVG rasterizes an SVG document onto a white width×height canvas.
// When either size is zero the view box size is used.
func LoadSVG(data []byte, width, height int) (image.Image, error) {
	svgIcon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read svg: %w", err)
	}

	viewBoxW := float64(svgIcon.ViewBox.W)
	viewBoxH := float64(svgIcon.ViewBox.H)
	if width <= 0 || height <= 0 {
		width = int(math.Ceil(viewBoxW))
		height = int(math.Ceil(viewBoxH))
	}
	if width <= 0 || height <= 0 {
		return nil, errors.New("svg has an empty view box")
	}

	svgIcon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)

	svgIcon.Draw(raster, 1.0)
	return img, nil
}
