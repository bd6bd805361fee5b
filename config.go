package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"lasergcode/internal/preview"
	"lasergcode/internal/raster"
)

// Job holds everything needed to turn one image into an engraving program.
// Lengths are in millimeters, speeds in millimeters per minute.
type Job struct {
	Resolution  float64          `toml:"resolution"`
	OriginX     float64          `toml:"origin_x"`
	OriginY     float64          `toml:"origin_y"`
	MarkSpeed   int              `toml:"mark_speed"`
	TravelSpeed int              `toml:"travel_speed"`
	MinPower    int              `toml:"min_power"`
	MaxPower    int              `toml:"max_power"`
	LaserOn     string           `toml:"laser_on"`
	LaserOff    string           `toml:"laser_off"`
	Direction   raster.Direction `toml:"direction"`
	LongForm    bool             `toml:"long_form"`

	// Width and Height of the engraving. Zero keeps the aspect ratio of
	// the image; both zero engraves one pixel per resolution step.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	// Threshold turns the image black and white; zero keeps grayscale.
	Threshold int `toml:"threshold"`

	Preview PreviewConfig `toml:"preview"`
}

type PreviewConfig struct {
	Width  int  `toml:"width"`
	Height int  `toml:"height"`
	Travel bool `toml:"travel"`
}

func DefaultJob() Job {
	opt := preview.DefaultOptions()
	return Job{
		Resolution:  10,
		MarkSpeed:   1000,
		TravelSpeed: 3000,
		MinPower:    0,
		MaxPower:    1000,
		LaserOn:     "M4",
		LaserOff:    "M5",
		Direction:   raster.Horizontal,
		Preview: PreviewConfig{
			Width:  opt.Width,
			Height: opt.Height,
			Travel: opt.Travel,
		},
	}
}

// LoadJob reads a TOML job file over the defaults. Unknown keys are
// rejected.
func LoadJob(path string) (Job, error) {
	job := DefaultJob()
	f, err := os.Open(path)
	if err != nil {
		return job, err
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&job); err != nil {
		return job, fmt.Errorf("parse %s: %w", path, err)
	}
	return job, nil
}

func (j Job) Validate() error {
	errs := []error{j.Params().Validate()}
	if j.Width < 0 || j.Height < 0 {
		errs = append(errs, fmt.Errorf("size must not be negative, got %vx%v", j.Width, j.Height))
	}
	if j.Threshold < 0 || j.Threshold > 255 {
		errs = append(errs, fmt.Errorf("threshold must be within [0, 255], got %d", j.Threshold))
	}
	if j.Preview.Width <= 0 || j.Preview.Height <= 0 {
		errs = append(errs, fmt.Errorf("preview size must be positive, got %dx%d", j.Preview.Width, j.Preview.Height))
	}
	return errors.Join(errs...)
}

func (j Job) Params() raster.Params {
	return raster.Params{
		Resolution:  j.Resolution,
		OriginX:     j.OriginX,
		OriginY:     j.OriginY,
		MarkSpeed:   j.MarkSpeed,
		TravelSpeed: j.TravelSpeed,
		MinPower:    j.MinPower,
		MaxPower:    j.MaxPower,
		LaserOn:     j.LaserOn,
		LaserOff:    j.LaserOff,
		Direction:   j.Direction,
		LongForm:    j.LongForm,
	}
}

func (j Job) PreviewOptions() preview.Options {
	opt := preview.DefaultOptions()
	opt.Width, opt.Height = j.Preview.Width, j.Preview.Height
	opt.Travel = j.Preview.Travel
	return opt
}
