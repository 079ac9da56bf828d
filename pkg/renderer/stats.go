package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of camera rays
	AverageSamples float64       // Average samples per pixel
	RaysTraced     int64         // Camera and scattered rays, including those that missed
	DepthCutoffs   int64         // Paths terminated by the bounce limit
	Duration       time.Duration // Wall time of the whole render
}

// Merge adds the counters of another (partial) render into s
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.RaysTraced += other.RaysTraced
	s.DepthCutoffs += other.DepthCutoffs
}

// Finalize fills in the derived fields once all tiles are merged
func (s *RenderStats) Finalize(duration time.Duration) {
	s.Duration = duration
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}
