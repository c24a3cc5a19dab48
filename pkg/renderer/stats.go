package renderer

import "time"

// RenderStats contains statistics about one rendered frame
type RenderStats struct {
	TotalPixels     int           // Number of pixels written
	PrimaryRays     int           // Number of camera rays traced
	NonFinitePixels int           // Pixels whose color contained NaN or Inf
	Bands           int           // Number of row bands the frame was split into
	Workers         int           // Number of workers that rendered the bands
	Elapsed         time.Duration // Wall-clock time for the whole frame
}

// Merge folds the per-band counters of other into s
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.PrimaryRays += other.PrimaryRays
	s.NonFinitePixels += other.NonFinitePixels
	s.Bands += other.Bands
}

// RaysPerSecond returns the primary ray throughput of the frame
func (s RenderStats) RaysPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.PrimaryRays) / s.Elapsed.Seconds()
}
