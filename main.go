package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// renderOptions holds the parsed command line.
// Zero sizes, samples and depth mean "use the scene's recommendation".
type renderOptions struct {
	sceneName string
	width     int
	height    int
	samples   int
	maxDepth  int
	seed      int64
	workers   int
	tileSize  int
	format    output.Format
	outputDir string
	help      bool
}

var errHelp = errors.New("help requested")

func parseFlags(args []string, stderr io.Writer) (renderOptions, error) {
	var opts renderOptions
	var format string

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.sceneName, "scene", "default", "Scene to render (see -help for the list)")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = scene default)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.maxDepth, "depth", 0, "Maximum ray bounce depth (0 = scene default)")
	fs.Int64Var(&opts.seed, "seed", scene.DefaultSphereGridSeed, "Random seed for sampling and scene generation")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = number of CPUs)")
	fs.IntVar(&opts.tileSize, "tile", renderer.DefaultParallelConfig().TileSize, "Tile edge length in pixels")
	fs.StringVar(&format, "format", string(output.FormatPNG), "Output format: png, bmp, tiff or ppm")
	fs.StringVar(&opts.outputDir, "output", "output", "Directory that receives <scene>/render_<timestamp>.<ext>")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.help {
		printHelp(fs, stderr)
		return opts, errHelp
	}

	f, err := output.ParseFormat(format)
	if err != nil {
		return opts, err
	}
	opts.format = f

	if opts.width < 0 || opts.height < 0 || opts.samples < 0 || opts.maxDepth < 0 {
		return opts, fmt.Errorf("width, height, samples and depth must not be negative: %w", core.ErrInvalidConfig)
	}

	return opts, nil
}

func printHelp(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Monte Carlo Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-12s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to <output>/<scene>/render_<timestamp>.<format>")
}

// createScene builds the requested scene and resolves the image size.
// When the size differs from the scene's recommendation the camera aspect ratio follows it.
func createScene(opts renderOptions) (*scene.Scene, int, int, error) {
	s, err := scene.Create(opts.sceneName, opts.seed)
	if err != nil {
		return nil, 0, 0, err
	}

	width, height := opts.width, opts.height
	aspect := s.CameraConfig.AspectRatio
	switch {
	case width == 0 && height == 0:
		width, height = s.SamplingConfig.Width, s.SamplingConfig.Height
	case height == 0:
		height = max(1, int(float64(width)/aspect))
	case width == 0:
		width = max(1, int(float64(height)*aspect))
	}

	if imageAspect := float64(width) / float64(height); imageAspect != aspect {
		s, err = scene.Create(opts.sceneName, opts.seed, geometry.CameraConfig{AspectRatio: imageAspect})
		if err != nil {
			return nil, 0, 0, err
		}
	}

	return s, width, height, nil
}

// outputPath returns <dir>/<scene>/render_<timestamp>.<ext>
func outputPath(dir, sceneName string, format output.Format, now time.Time) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(sceneName)
	return filepath.Join(dir, name, "render_"+now.Format("20060102_150405")+format.Extension())
}

// run renders one image according to opts and returns where it was written
func run(opts renderOptions, logger core.Logger) (string, error) {
	s, width, height, err := createScene(opts)
	if err != nil {
		return "", err
	}
	logger.Printf("Using %s scene with %d shapes\n", opts.sceneName, len(s.Shapes))
	logger.Printf("Camera at %v, lens radius %.3f\n", s.Camera.Origin(), s.Camera.LensRadius())

	raytracer, err := renderer.NewRaytracer(s, width, height)
	if err != nil {
		return "", fmt.Errorf("failed to create raytracer: %w", err)
	}
	raytracer.SetLogger(logger)

	sampling := renderer.SamplingConfig{
		SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
		MaxDepth:        s.SamplingConfig.MaxDepth,
		Seed:            opts.seed,
	}
	if opts.samples > 0 {
		sampling.SamplesPerPixel = opts.samples
	}
	if opts.maxDepth > 0 {
		sampling.MaxDepth = opts.maxDepth
	}
	if err := raytracer.SetSamplingConfig(sampling); err != nil {
		return "", err
	}
	if err := raytracer.SetParallelConfig(renderer.ParallelConfig{TileSize: opts.tileSize, NumWorkers: opts.workers}); err != nil {
		return "", err
	}

	img, stats, err := raytracer.RenderImage()
	if err != nil {
		return "", fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Samples per pixel: %.1f, rays traced: %d\n", stats.AverageSamples, stats.RaysTraced)

	filename := outputPath(opts.outputDir, opts.sceneName, opts.format, time.Now())
	if err := output.WriteFile(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, errHelp) || errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := renderer.NewDefaultLogger()
	logger.Printf("Starting Path Tracer...\n")

	filename, err := run(opts, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Printf("Render saved as %s\n", filename)
}
