// Package scrollbar measures how much width a scrollbar takes from a
// container, so width changes caused by a scrollbar appearing can be told
// apart from real resizes.
package scrollbar

import (
	"math"
	"sync"
)

// Probe reports the scrollbar width in the same units as container widths.
type Probe interface {
	Size() float64
}

// Fixed is a Probe with a known scrollbar width.
type Fixed float64

// Size returns f, or 0 when f is negative or NaN.
func (f Fixed) Size() float64 { return clamp(float64(f)) }

// None is a Probe for containers that never show a scrollbar.
var None Probe = Fixed(0)

// Once returns a Probe that calls measure on first use and caches the result.
// A typical measure function renders an empty scrolling region and subtracts
// its inner width from its outer width.
func Once(measure func() float64) Probe {
	return &onceProbe{measure: measure}
}

type onceProbe struct {
	once    sync.Once
	measure func() float64
	size    float64
}

func (p *onceProbe) Size() float64 {
	p.once.Do(func() {
		if p.measure != nil {
			p.size = clamp(p.measure())
		}
	})
	return p.size
}

// Gutter measures a scrollbar as the difference between an outer and an
// inner width. It is the measure function most renderers pass to Once.
func Gutter(outer, inner float64) float64 {
	return clamp(outer - inner)
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
