package engine

import "github.com/charmbracelet/harmonica"

// springField eases each band toward its target with a damped spring,
// taking the jitter out of normalized values between ticks.
type springField struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newSpringField(cfg SpringConfig, n int) *springField {
	return &springField{
		spring: harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.Frequency, cfg.Damping),
		pos:    make([]float64, n),
		vel:    make([]float64, n),
	}
}

// step advances every band one tick toward targets and returns the
// positions. The returned slice is reused across calls.
func (s *springField) step(targets []float64) []float64 {
	for i, target := range targets {
		s.pos[i], s.vel[i] = s.spring.Update(s.pos[i], s.vel[i], target)
	}
	return s.pos
}
