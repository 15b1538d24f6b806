// Package detent resolves symbolic sheet heights against a container and
// picks the stop a released vertical drag should snap to.
package detent

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/berth-dev/deckhand/internal/paging"
)

// Default tuning constants.
const (
	DefaultSmallFloor        = 120.0
	DefaultVelocityThreshold = paging.DefaultVelocityThreshold
)

// Kind identifies a symbolic detent.
type Kind int

const (
	KindSmall Kind = iota
	KindMedium
	KindLarge
	KindHeight
	KindFraction
)

// Detent is a named stop height for a sheet.
type Detent struct {
	Kind  Kind
	Value float64 // points for KindHeight, fraction for KindFraction
}

// Small is max(15% of the container, the resolver's floor).
func Small() Detent { return Detent{Kind: KindSmall} }

// Medium is half the container.
func Medium() Detent { return Detent{Kind: KindMedium} }

// Large is 90% of the container.
func Large() Detent { return Detent{Kind: KindLarge} }

// Height is a fixed height, never taller than the container.
func Height(h float64) Detent { return Detent{Kind: KindHeight, Value: h} }

// Fraction is f of the container, with f clamped to [0,1].
func Fraction(f float64) Detent { return Detent{Kind: KindFraction, Value: f} }

// String renders the detent in the form Parse accepts.
func (d Detent) String() string {
	switch d.Kind {
	case KindSmall:
		return "small"
	case KindMedium:
		return "medium"
	case KindLarge:
		return "large"
	case KindHeight:
		return strconv.FormatFloat(d.Value, 'f', -1, 64)
	case KindFraction:
		return strconv.FormatFloat(d.Value*100, 'f', -1, 64) + "%"
	}
	return fmt.Sprintf("detent(%d)", int(d.Kind))
}

// Parse reads "small", "medium", "large", a percentage such as "40%" or a
// plain number of points such as "300".
func Parse(s string) (Detent, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "small":
		return Small(), nil
	case "medium":
		return Medium(), nil
	case "large":
		return Large(), nil
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return Detent{}, fmt.Errorf("parsing detent %q: %w", s, err)
		}
		return Fraction(f / 100), nil
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Detent{}, fmt.Errorf("parsing detent %q: %w", s, err)
	}
	return Height(h), nil
}

// ParseList parses every entry with Parse.
func ParseList(specs []string) ([]Detent, error) {
	out := make([]Detent, 0, len(specs))
	for _, s := range specs {
		d, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Detent) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Detent) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Resolver holds the tuning constants used to resolve and snap detents.
type Resolver struct {
	SmallFloor float64
	// VelocityThreshold defaults to DefaultVelocityThreshold when zero.
	VelocityThreshold float64
}

// DefaultResolver returns a Resolver with the stock constants.
func DefaultResolver() Resolver {
	return Resolver{
		SmallFloor:        DefaultSmallFloor,
		VelocityThreshold: DefaultVelocityThreshold,
	}
}

// HeightOf resolves a single detent against container height h.
func (r Resolver) HeightOf(d Detent, h float64) float64 {
	switch d.Kind {
	case KindSmall:
		return math.Max(0.15*h, r.SmallFloor)
	case KindMedium:
		return 0.5 * h
	case KindLarge:
		return 0.9 * h
	case KindHeight:
		return math.Min(d.Value, h)
	case KindFraction:
		return clamp(d.Value, 0, 1) * h
	}
	return 0
}

// Resolve converts detents to concrete heights, sorted ascending with
// duplicates removed so no two snap targets coincide.
func (r Resolver) Resolve(detents []Detent, h float64) []float64 {
	heights := make([]float64, 0, len(detents))
	for _, d := range detents {
		heights = append(heights, r.HeightOf(d, h))
	}
	sort.Float64s(heights)

	out := heights[:0]
	for i, v := range heights {
		if i > 0 && math.Abs(v-out[len(out)-1]) < dedupeEpsilon {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Nearest returns the index of the height closest to current. Ties go to
// the taller stop. ok is false for an empty list.
func Nearest(heights []float64, current float64) (int, bool) {
	if len(heights) == 0 {
		return 0, false
	}
	best := 0
	bestDist := math.Inf(1)
	for i, v := range heights {
		if d := math.Abs(v - current); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best, true
}

// Snap returns the index a drag released at current with velocity v
// settles on. Positive velocity expands the sheet. Above the threshold the
// target moves one stop beyond the nearest in the direction of travel.
func (r Resolver) Snap(heights []float64, current, v float64) (int, bool) {
	nearest, ok := Nearest(heights, current)
	if !ok {
		return 0, false
	}
	threshold := r.VelocityThreshold
	if threshold == 0 {
		threshold = DefaultVelocityThreshold
	}
	i := nearest + paging.LookAhead(v, threshold)
	return int(clamp(float64(i), 0, float64(len(heights)-1))), true
}

// NextCyclic returns the stop after i, wrapping from the last to the first.
func NextCyclic(heights []float64, i int) (int, bool) {
	if len(heights) == 0 {
		return 0, false
	}
	return (i + 1) % len(heights), true
}

const dedupeEpsilon = 1e-9

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
