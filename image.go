package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"lasergcode/internal/raster"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// LoadImage decodes the image at filePath. SVG files are rasterized at
// width×height pixels, or at their view box size when either is zero.
func LoadImage(filePath string, width, height int) (image.Image, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var img image.Image
	switch ext {
	case ".svg":
		return LoadSVG(data, width, height)
	case ".png":
		img, err = png.Decode(bytes.NewReader(data))
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	case ".bmp":
		img, err = bmp.Decode(bytes.NewReader(data))
	case ".tif", ".tiff":
		img, err = tiff.Decode(bytes.NewReader(data))
	case ".webp":
		img, err = webp.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}
	return img, nil
}

// PixelSize returns the pixel dimensions for engraving an image of the
// given size at width×height units. A zero dimension keeps the aspect
// ratio; both zero keeps the image size.
func PixelSize(imgW, imgH int, width, height, resolution float64) (int, int) {
	if (width <= 0 || height <= 0) && (imgW <= 0 || imgH <= 0) {
		return 0, 0
	}
	switch {
	case width <= 0 && height <= 0:
		return imgW, imgH
	case height <= 0:
		height = width * float64(imgH) / float64(imgW)
	case width <= 0:
		width = height * float64(imgW) / float64(imgH)
	}
	return max(1, int(math.Round(width*resolution))), max(1, int(math.Round(height*resolution)))
}

// Grayscale flattens img onto white, scales it to w×h pixels and converts
// it to gray. A threshold above zero turns every pixel darker than it
// black and the rest white.
func Grayscale(img image.Image, w, h int, threshold uint8) *image.Gray {
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	xdraw.Draw(flat, bounds, &image.Uniform{color.White}, image.Point{}, xdraw.Src)
	xdraw.Draw(flat, bounds, img, bounds.Min, xdraw.Over)

	var src image.Image = flat
	if w != bounds.Dx() || h != bounds.Dy() {
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), flat, bounds, xdraw.Src, nil)
		src = scaled
	}

	sb := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, sb.Dx(), sb.Dy()))
	for y := 0; y < sb.Dy(); y++ {
		for x := 0; x < sb.Dx(); x++ {
			v := raster.Luma(src.At(sb.Min.X+x, sb.Min.Y+y))
			if threshold > 0 {
				if v < threshold {
					v = 0
				} else {
					v = 255
				}
			}
			dst.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return dst
}
