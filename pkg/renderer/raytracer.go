package renderer

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ShadowEpsilon is the minimum hit distance, keeping scattered rays from re-hitting their origin
const ShadowEpsilon = 0.001

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Seed for all per-pixel random streams
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
	}
}

// Validate checks that the sampling configuration can produce an image
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel must be at least 1, got %d: %w", c.SamplesPerPixel, core.ErrInvalidConfig)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d: %w", c.MaxDepth, core.ErrInvalidConfig)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *geometry.Camera
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
	GetShapes() []geometry.Shape
}

// validator is implemented by scenes that can check themselves before rendering
type validator interface {
	Validate() error
}

// Raytracer handles the rendering process.
// After construction it is only read, so one instance is shared by every worker.
type Raytracer struct {
	scene    Scene
	width    int
	height   int
	config   SamplingConfig
	parallel ParallelConfig
	logger   core.Logger
}

// NewRaytracer creates a new raytracer with default sampling and parallel settings
func NewRaytracer(scene Scene, width, height int) (*Raytracer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("image size must be positive, got %dx%d: %w", width, height, core.ErrInvalidConfig)
	}
	if scene == nil || scene.GetCamera() == nil {
		return nil, fmt.Errorf("scene has no camera: %w", core.ErrInvalidConfig)
	}
	if v, ok := scene.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("invalid scene: %w", err)
		}
	}

	return &Raytracer{
		scene:    scene,
		width:    width,
		height:   height,
		config:   DefaultSamplingConfig(),
		parallel: DefaultParallelConfig(),
		logger:   discardLogger{},
	}, nil
}

// SetSamplingConfig replaces the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	rt.config = config
	return nil
}

// MergeSamplingConfig updates only the non-zero fields of the sampling configuration
func (rt *Raytracer) MergeSamplingConfig(updates SamplingConfig) error {
	merged := rt.config
	if updates.SamplesPerPixel != 0 {
		merged.SamplesPerPixel = updates.SamplesPerPixel
	}
	if updates.MaxDepth != 0 {
		merged.MaxDepth = updates.MaxDepth
	}
	if updates.Seed != 0 {
		merged.Seed = updates.Seed
	}
	return rt.SetSamplingConfig(merged)
}

// SetParallelConfig replaces the tile and worker configuration
func (rt *Raytracer) SetParallelConfig(config ParallelConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	rt.parallel = config
	return nil
}

// SetLogger sets where render progress is reported. A nil logger silences output.
func (rt *Raytracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = discardLogger{}
	}
	rt.logger = logger
}

// GetSamplingConfig returns the current sampling configuration
func (rt *Raytracer) GetSamplingConfig() SamplingConfig {
	return rt.config
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	topColor, bottomColor := rt.scene.GetBackgroundColors()

	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return bottomColor.Multiply(1.0 - t).Add(topColor.Multiply(t))
}

// rayColor returns the radiance arriving along r. depth counts bounces from the camera.
func (rt *Raytracer) rayColor(r core.Ray, depth int, sampler core.Sampler, stats *RenderStats) core.Vec3 {
	stats.RaysTraced++

	hit, isHit := geometry.HitList(rt.scene.GetShapes(), r, ShadowEpsilon, math.Inf(1))
	if !isHit {
		return rt.backgroundGradient(r)
	}

	// Out of bounces: no more light is gathered
	if depth >= rt.config.MaxDepth {
		stats.DepthCutoffs++
		return core.Vec3{}
	}

	scatter, didScatter := material.Scatter(hit.Material, r, *hit, sampler)
	if !didScatter {
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(rt.rayColor(scatter.Scattered, depth+1, sampler, stats))
}

// samplePixel averages SamplesPerPixel jittered camera rays through scanline pixel (i, j),
// where j = 0 is the bottom row. The result is linear radiance.
func (rt *Raytracer) samplePixel(i, j int, sampler core.Sampler, stats *RenderStats) core.Vec3 {
	camera := rt.scene.GetCamera()
	colorAccum := core.Vec3{}

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		s := (float64(i) + sampler.Get1D()) / float64(rt.width)
		t := (float64(j) + sampler.Get1D()) / float64(rt.height)

		ray := camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(rt.rayColor(ray, 0, sampler, stats))
	}

	stats.TotalSamples += rt.config.SamplesPerPixel
	return colorAccum.Multiply(1.0 / float64(rt.config.SamplesPerPixel))
}

// RenderPixel renders scanline pixel (i, j), j = 0 being the bottom row, with the given sampler
// and returns its quantized color
func (rt *Raytracer) RenderPixel(i, j int, sampler core.Sampler) [3]uint8 {
	var stats RenderStats
	return QuantizeColor(rt.samplePixel(i, j, sampler, &stats))
}

// pixelSampler returns the random stream for the pixel at image coordinates (x, y)
func (rt *Raytracer) pixelSampler(x, y int) core.Sampler {
	return core.NewStreamSampler(rt.config.Seed, uint64(y*rt.width+x))
}

// RenderBounds renders the pixels inside bounds (image coordinates, y = 0 at the top)
// into pixels, a packed RGB buffer covering the whole image.
// Distinct bounds touch disjoint byte ranges, so concurrent calls on disjoint tiles are safe.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, pixels []byte) RenderStats {
	var stats RenderStats

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		j := rt.height - 1 - y
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := QuantizeColor(rt.samplePixel(x, j, rt.pixelSampler(x, y), &stats))

			offset := (y*rt.width + x) * 3
			copy(pixels[offset:offset+3], c[:])
			stats.TotalPixels++
		}
	}

	return stats
}

// Render renders the whole image on the worker pool and returns a packed RGB buffer,
// width*height*3 bytes, top row first
func (rt *Raytracer) Render() ([]byte, RenderStats, error) {
	start := time.Now()
	pixels := make([]byte, rt.width*rt.height*3)

	tiles := NewTileGrid(rt.width, rt.height, rt.parallel.TileSize)
	pool := NewWorkerPool(rt, pixels, rt.parallel.NumWorkers, len(tiles))

	rt.logger.Printf("Rendering %dx%d, %d spp, max depth %d: %d tiles on %d workers\n",
		rt.width, rt.height, rt.config.SamplesPerPixel, rt.config.MaxDepth, len(tiles), pool.GetNumWorkers())

	pool.Start()
	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: tile.ID})
	}

	var stats RenderStats
	var renderErr error
	progressStep := max(1, len(tiles)/10)
	for completed := 1; completed <= len(tiles); completed++ {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed before all tiles completed")
			break
		}
		if result.Error != nil && renderErr == nil {
			renderErr = fmt.Errorf("tile %d: %w", result.TaskID, result.Error)
		}
		stats.Merge(result.Stats)

		// Report roughly every 10%, and always on the last tile
		if completed%progressStep == 0 || completed == len(tiles) {
			rt.logger.Printf("Tiles %d/%d (%.0f%%)\n", completed, len(tiles), 100*float64(completed)/float64(len(tiles)))
		}
	}
	pool.Stop()

	if renderErr != nil {
		return nil, stats, renderErr
	}

	stats.Finalize(time.Since(start))
	rt.logger.Printf("Render complete in %v: %d samples, %d rays, %d depth cutoffs\n",
		stats.Duration.Round(time.Millisecond), stats.TotalSamples, stats.RaysTraced, stats.DepthCutoffs)

	return pixels, stats, nil
}

// RenderImage renders the whole image and wraps the result in an *image.RGBA
func (rt *Raytracer) RenderImage() (*image.RGBA, RenderStats, error) {
	pixels, stats, err := rt.Render()
	if err != nil {
		return nil, stats, err
	}
	return PixelsToImage(pixels, rt.width, rt.height), stats, nil
}
