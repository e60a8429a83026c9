// Package main renders text through the editor to a PNG image.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"time"

	"golang.org/x/image/math/fixed"

	"github.com/dshills/textkit"
	"github.com/dshills/textkit/internal/config"
	"github.com/dshills/textkit/internal/engine/attributed"
	"github.com/dshills/textkit/internal/logger"
	"github.com/dshills/textkit/internal/renderer/raster"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	output     string
	width      int
	logLevel   string
	describe   bool
	input      string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	closeLog, err := initLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	src, err := readInput(opts.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := render(cfg, opts, src); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.output, "output", "out.png", "PNG file to write")
	flag.StringVar(&opts.output, "o", "out.png", "PNG file to write (shorthand)")
	flag.IntVar(&opts.width, "width", 640, "Container width in pixels")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.describe, "describe", false, "Print the attributed text description")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "textkit - render text through the editing engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: textkit [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  textkit main.go                  Render main.go to out.png\n")
		fmt.Fprintf(os.Stderr, "  textkit -c textkit.toml -o a.png Render stdin with a config\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("textkit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if _, ok := logger.ParseLevel(opts.logLevel); !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	opts.input = flag.Arg(0)
	return opts
}

func initLogging(cfg *config.Config) (func(), error) {
	if cfg.Logging.File == "" {
		logger.Init(cfg.LoggerConfig(), os.Stderr)
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger.Init(cfg.LoggerConfig(), f)
	return func() { _ = f.Close() }, nil
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// render opens a session on a RunLoop, waits for the styling pass and
// draws the result.
func render(cfg *config.Config, opts options, src string) error {
	loop := textkit.NewRunLoop()
	if err := loop.Start(); err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = loop.Stop(ctx)
	}()

	ctx := context.Background()
	var (
		s      *textkit.Session
		e      *textkit.Editor
		setErr error
	)
	if err := loop.Do(ctx, func() {
		s, setErr = textkit.Open(cfg,
			textkit.WithLoop(loop),
			textkit.WithContainerWidth(fixed.I(opts.width)),
		)
		if setErr != nil {
			return
		}
		e = s.Editor()
		setErr = e.SetText(src)
		if setErr == nil {
			setErr = e.SetSelectedRange(textkit.NewRange(0, 0))
		}
	}); err != nil {
		return err
	}
	if s != nil {
		defer s.Close()
	}
	if setErr != nil {
		return setErr
	}

	if cfg.Styling.Language != "" && src != "" {
		waitStyled(ctx, loop, e, 5*time.Second)
	}

	var img *image.RGBA
	if err := loop.Do(ctx, func() {
		tl := e.TextLayout()
		tl.EnsureLayout()
		height := tl.UsedHeight().Ceil() + 1
		canvas := raster.New(image.Pt(opts.width, height), color.White)
		e.Draw(fixed.Point26_6{}, canvas)
		img = canvas.Image()

		if opts.describe {
			fmt.Println(e.Storage().Describe(cfg.DescribeOptions()))
		}
	}); err != nil {
		return err
	}

	out, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return err
	}
	logger.Infof("textkit: wrote %s (%dx%d)", opts.output, img.Bounds().Dx(), img.Bounds().Dy())
	return out.Close()
}

// waitStyled polls the editor until the highlighter has styled the text or
// timeout passes.
func waitStyled(ctx context.Context, loop *textkit.RunLoop, e *textkit.Editor, timeout time.Duration) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(timeout)

	for {
		var styled bool
		if err := loop.Do(ctx, func() {
			_, styled = e.Storage().Attribute(0, attributed.StyleKey)
		}); err != nil || styled {
			return
		}
		select {
		case <-ticker.C:
		case <-deadline:
			logger.Warnf("textkit: styling did not finish, rendering unstyled text")
			return
		}
	}
}
