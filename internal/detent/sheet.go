package detent

import "math"

// Sheet is the gesture state of one bottom sheet: its resolved stops, the
// current height and the detent it rests on. Heights grow upward from the
// bottom of the container.
type Sheet struct {
	resolver  Resolver
	detents   []Detent
	container float64
	heights   []float64

	height   float64
	current  int
	dragging bool

	// OnDetentChange is called when the sheet comes to rest on a different
	// detent index.
	OnDetentChange func(index int)
}

// NewSheet creates a sheet resting on its shortest detent. SetContainer
// must be called before heights mean anything.
func NewSheet(r Resolver, detents []Detent) *Sheet {
	return &Sheet{
		resolver: r,
		detents:  append([]Detent(nil), detents...),
	}
}

// SetContainer re-resolves the detents for container height h. The sheet
// stays on the same detent index when it still exists.
func (s *Sheet) SetContainer(h float64) {
	s.container = math.Max(0, h)
	s.heights = s.resolver.Resolve(s.detents, s.container)
	if len(s.heights) == 0 {
		s.current = 0
		s.height = 0
		return
	}
	if s.current > len(s.heights)-1 {
		s.current = len(s.heights) - 1
	}
	if !s.dragging {
		s.height = s.heights[s.current]
	}
}

// SetDetents replaces the detent list and re-resolves against the current
// container.
func (s *Sheet) SetDetents(detents []Detent) {
	s.detents = append([]Detent(nil), detents...)
	s.SetContainer(s.container)
}

// Heights returns the resolved stop heights, shortest first.
func (s *Sheet) Heights() []float64 {
	return append([]float64(nil), s.heights...)
}

// Container returns the container height.
func (s *Sheet) Container() float64 { return s.container }

// Height returns the sheet's current height.
func (s *Sheet) Height() float64 { return s.height }

// Current returns the index of the detent the sheet rests on. ok is false
// when no detents resolved.
func (s *Sheet) Current() (int, bool) {
	if len(s.heights) == 0 {
		return 0, false
	}
	return s.current, true
}

// Dragging reports whether a drag is in progress.
func (s *Sheet) Dragging() bool { return s.dragging }

// BeginDrag starts a drag from the current height.
func (s *Sheet) BeginDrag() {
	if len(s.heights) == 0 {
		return
	}
	s.dragging = true
}

// DragBy changes the height by delta. Positive deltas expand the sheet.
// The height stays within [0, container].
func (s *Sheet) DragBy(delta float64) {
	if !s.dragging {
		return
	}
	s.height = clamp(s.height+delta, 0, s.container)
}

// Release ends a drag and snaps to the detent chosen by Resolver.Snap.
func (s *Sheet) Release(velocity float64) (int, bool) {
	if !s.dragging {
		return 0, false
	}
	s.dragging = false
	i, ok := s.resolver.Snap(s.heights, s.height, velocity)
	if !ok {
		return 0, false
	}
	s.SnapTo(i)
	return i, true
}

// Tap advances to the next taller detent, wrapping from the tallest back to
// the shortest. A tap mid-drag is ignored.
func (s *Sheet) Tap() (int, bool) {
	if s.dragging {
		return 0, false
	}
	i, ok := NextCyclic(s.heights, s.current)
	if !ok {
		return 0, false
	}
	s.SnapTo(i)
	return i, true
}

// SnapTo rests the sheet on detent i, clamped to the valid range.
func (s *Sheet) SnapTo(i int) {
	if len(s.heights) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(s.heights)-1 {
		i = len(s.heights) - 1
	}
	prev := s.current
	s.current = i
	s.height = s.heights[i]
	if prev != i && s.OnDetentChange != nil {
		s.OnDetentChange(i)
	}
}
