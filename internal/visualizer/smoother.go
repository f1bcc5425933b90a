package visualizer

// TemporalSmoother blends each new shaped frame into a persistent buffer so
// the displayed line follows the audio continuously instead of jittering.
// On silence it snaps to zero immediately; a decaying tail after speech ends
// reads as lag, not polish.
type TemporalSmoother struct {
	responsiveness float64

	// Points is the smoothed buffer, mutated in place every tick.
	Points []float64
}

// NewTemporalSmoother creates a smoother over pointCount points.
func NewTemporalSmoother(responsiveness float64, pointCount int) *TemporalSmoother {
	return &TemporalSmoother{
		responsiveness: responsiveness,
		Points:         make([]float64, pointCount),
	}
}

// Smooth folds next into the persistent buffer. When silent, the buffer is
// zeroed on this same tick with no interpolation.
func (t *TemporalSmoother) Smooth(next []float64, silent bool) {
	if silent {
		for i := range t.Points {
			t.Points[i] = 0
		}
		return
	}
	r := t.responsiveness
	for i := range t.Points {
		t.Points[i] = t.Points[i]*(1-r) + next[i]*r
	}
}

// Reset zeroes the buffer.
func (t *TemporalSmoother) Reset() {
	for i := range t.Points {
		t.Points[i] = 0
	}
}

// SpatialSmoother removes single-sample teeth from the point sequence with a
// fixed symmetric kernel. Boundary points renormalize over the available
// shortened neighborhood, so a constant sequence passes through unchanged.
type SpatialSmoother struct {
	kernel []float64

	// Points is the draw buffer, mutated in place every tick.
	Points []float64
}

// NewSpatialSmoother creates a smoother with the given kernel over
// pointCount points. The kernel length must be odd.
func NewSpatialSmoother(kernel []float64, pointCount int) *SpatialSmoother {
	k := make([]float64, len(kernel))
	copy(k, kernel)
	return &SpatialSmoother{
		kernel: k,
		Points: make([]float64, pointCount),
	}
}

// Smooth convolves the kernel across src into the draw buffer.
func (s *SpatialSmoother) Smooth(src []float64) {
	half := len(s.kernel) / 2
	n := len(src)
	for i := 0; i < n && i < len(s.Points); i++ {
		var sum, weight float64
		for t := -half; t <= half; t++ {
			j := i + t
			if j < 0 || j >= n {
				continue
			}
			w := s.kernel[t+half]
			sum += src[j] * w
			weight += w
		}
		if weight > 0 {
			s.Points[i] = sum / weight
		} else {
			s.Points[i] = 0
		}
	}
}

// Reset zeroes the draw buffer.
func (s *SpatialSmoother) Reset() {
	for i := range s.Points {
		s.Points[i] = 0
	}
}
