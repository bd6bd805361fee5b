package main

import (
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"lasergcode/internal/gcode"
	"lasergcode/internal/preview"
	"lasergcode/internal/raster"
)

type options struct {
	input   string
	output  string
	analyze string
	preview string
	report  bool
	job     Job
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lasergcode -i IMAGE [-o OUTPUT] [options]\n")
		fmt.Fprintf(os.Stderr, "       lasergcode --analyze PROGRAM [--report] [--preview PNG]\n\n")
		fmt.Fprintf(os.Stderr, "Compiles png, jpeg, bmp, tiff, webp and svg images into laser engraving\n")
		fmt.Fprintf(os.Stderr, "programs, and analyses existing programs.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
	}

	inputFlag := pflag.StringP("input", "i", "", "Image to compile")
	outputFlag := pflag.StringP("output", "o", "output.gcode", "Path of the compiled program")
	configFlag := pflag.StringP("config", "c", "", "TOML job file")
	analyzeFlag := pflag.StringP("analyze", "a", "", "Analyse an existing program instead of compiling")
	previewFlag := pflag.StringP("preview", "p", "", "Render the program to a PNG file")
	reportFlag := pflag.BoolP("report", "r", false, "Print a summary of the program")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Log debug messages")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")

	width := pflag.Float64("width", 0, "Engraving width (mm), 0 keeps the aspect ratio")
	height := pflag.Float64("height", 0, "Engraving height (mm), 0 keeps the aspect ratio")
	resolution := pflag.Float64("resolution", 0, "Pixels per mm")
	threshold := pflag.Int("threshold", 0, "Black and white threshold (1-255), 0 keeps grayscale")
	direction := pflag.String("direction", "", "Scan direction: horizontal or vertical")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	job := DefaultJob()
	if *configFlag != "" {
		var err error
		if job, err = LoadJob(*configFlag); err != nil {
			slog.Error("failed to load job", "err", err)
			os.Exit(1)
		}
	}
	if pflag.Lookup("width").Changed {
		job.Width = *width
	}
	if pflag.Lookup("height").Changed {
		job.Height = *height
	}
	if pflag.Lookup("resolution").Changed {
		job.Resolution = *resolution
	}
	if pflag.Lookup("threshold").Changed {
		job.Threshold = *threshold
	}
	if pflag.Lookup("direction").Changed {
		d, err := raster.ParseDirection(*direction)
		if err != nil {
			slog.Error("invalid direction", "err", err)
			os.Exit(1)
		}
		job.Direction = d
	}

	opts := options{
		input:   *inputFlag,
		output:  *outputFlag,
		analyze: *analyzeFlag,
		preview: *previewFlag,
		report:  *reportFlag,
		job:     job,
	}
	if opts.input == "" && opts.analyze == "" {
		pflag.Usage()
		os.Exit(1)
	}
	if err := run(opts); err != nil {
		slog.Error("failed", "err", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if err := opts.job.Validate(); err != nil {
		return fmt.Errorf("invalid job: %w", err)
	}

	var (
		prog *gcode.Program
		name string
	)
	if opts.analyze != "" {
		name = opts.analyze
		prog = gcode.LoadFile(opts.analyze)
		if prog.Len() == 0 {
			return fmt.Errorf("%s: no commands", opts.analyze)
		}
	} else {
		var err error
		if prog, err = compileImage(opts.input, opts.job); err != nil {
			return err
		}
		if err := prog.SaveFile(opts.output); err != nil {
			return err
		}
		name = opts.output
		slog.Info("program written", "path", opts.output, "commands", prog.Len())
	}

	summary := gcode.Analyze(prog)
	if opts.report {
		fmt.Println(Report(filepath.Base(name), prog, summary))
	}
	if opts.preview != "" {
		if err := writePreview(opts.preview, prog, summary, opts.job.PreviewOptions()); err != nil {
			return err
		}
		slog.Info("preview written", "path", opts.preview)
	}
	return nil
}

func compileImage(path string, job Job) (*gcode.Program, error) {
	var svgW, svgH int
	if strings.EqualFold(filepath.Ext(path), ".svg") && job.Width > 0 && job.Height > 0 {
		svgW, svgH = PixelSize(0, 0, job.Width, job.Height, job.Resolution)
	}
	img, err := LoadImage(path, svgW, svgH)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	b := img.Bounds()
	w, h := PixelSize(b.Dx(), b.Dy(), job.Width, job.Height, job.Resolution)
	if w == 0 || h == 0 {
		return nil, errors.New("image is empty")
	}
	slog.Debug("image loaded", "path", path, "width", b.Dx(), "height", b.Dy(), "scaled_width", w, "scaled_height", h)

	gray := Grayscale(img, w, h, uint8(job.Threshold))
	return raster.Compile(raster.GrayImage{Gray: gray}, job.Params()), nil
}

func writePreview(path string, p *gcode.Program, s gcode.Summary, opt preview.Options) error {
	img, err := preview.Render(p, s, opt)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	return f.Close()
}
