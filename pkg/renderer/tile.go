package renderer

import (
	"fmt"
	"image"
	"runtime"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ParallelConfig controls how the image is split up and how many goroutines render it
type ParallelConfig struct {
	TileSize   int // Edge length of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultParallelConfig returns sensible default values
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		TileSize:   32,
		NumWorkers: 0,
	}
}

// Validate checks the parallel configuration
func (c ParallelConfig) Validate() error {
	if c.TileSize < 1 {
		return fmt.Errorf("tile size must be at least 1, got %d: %w", c.TileSize, core.ErrInvalidConfig)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("worker count must not be negative, got %d: %w", c.NumWorkers, core.ErrInvalidConfig)
	}
	return nil
}

// workerCount resolves 0 to the number of CPUs
func (c ParallelConfig) workerCount() int {
	if c.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major from the top left
	Bounds image.Rectangle // Pixel bounds in image coordinates
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{ID: id, Bounds: bounds}
}

// NewTileGrid creates a grid of tiles covering the entire image.
// Edge tiles are clipped to the image.
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}
