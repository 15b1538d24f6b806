// Package paging converts a continuous scroll offset into a discrete
// carousel index and computes where a released drag should settle.
//
// All lengths are in points along the scroll axis. Offsets grow as the
// carousel moves forward, so item i sits at i*(itemLength+spacing) and a
// positive release velocity means "towards higher indexes".
package paging

import "math"

// DefaultVelocityThreshold is the release speed, in points per second,
// above which a drag advances one item beyond the positional nearest.
const DefaultVelocityThreshold = 300.0

// Sizing describes how long each item is along the scroll axis.
type Sizing struct {
	fixed    float64
	fraction float64
	relative bool
}

// Fixed sizes every item at length points. Negative lengths are treated as 0.
func Fixed(length float64) Sizing {
	return Sizing{fixed: math.Max(0, length)}
}

// Fraction sizes every item at f times the viewport length. Negative
// fractions are treated as 0.
func Fraction(f float64) Sizing {
	return Sizing{fraction: math.Max(0, f), relative: true}
}

// Length resolves the item length for the given viewport length.
func (s Sizing) Length(viewport float64) float64 {
	if s.relative {
		return s.fraction * math.Max(0, viewport)
	}
	return s.fixed
}

// IsFraction reports whether items are sized relative to the viewport.
func (s Sizing) IsFraction() bool {
	return s.relative
}

// Config holds the geometry of a carousel.
type Config struct {
	ItemCount int
	Viewport  float64
	Sizing    Sizing
	// Spacing may be negative, in which case items overlap.
	Spacing float64
	// VelocityThreshold defaults to DefaultVelocityThreshold when zero.
	VelocityThreshold float64
	// Overscroll lets the offset follow the finger past the first and last
	// items. When false the offset is clamped to the content range.
	Overscroll bool
}

// Phase is the gesture state of a Model.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseSettling
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseSettling:
		return "settling"
	default:
		return "idle"
	}
}

// Model tracks one carousel's scroll position. It is not safe for
// concurrent use; the owning component feeds it events serially.
type Model struct {
	cfg    Config
	offset float64
	phase  Phase
	target int

	lastIndex int
	hasIndex  bool

	// OnIndexChange is called whenever the derived index changes, including
	// mid-drag. ok is false when the carousel has no items.
	OnIndexChange func(index int, ok bool)
}

// New returns a Model resting on the first item.
func New(cfg Config) *Model {
	if cfg.ItemCount < 0 {
		cfg.ItemCount = 0
	}
	if cfg.VelocityThreshold == 0 {
		cfg.VelocityThreshold = DefaultVelocityThreshold
	}
	m := &Model{cfg: cfg}
	m.lastIndex, m.hasIndex = m.Index()
	return m
}

// Config returns the model's current configuration.
func (m *Model) Config() Config { return m.cfg }

// ItemCount returns the number of items.
func (m *Model) ItemCount() int { return m.cfg.ItemCount }

// ItemLength returns the resolved item length.
func (m *Model) ItemLength() float64 {
	return m.cfg.Sizing.Length(m.cfg.Viewport)
}

// Stride is the distance between the starts of adjacent items.
func (m *Model) Stride() float64 {
	return m.ItemLength() + m.cfg.Spacing
}

// ContentLength is the total length of all items without trailing spacing.
func (m *Model) ContentLength() float64 {
	if m.cfg.ItemCount == 0 {
		return 0
	}
	return float64(m.cfg.ItemCount)*m.Stride() - m.cfg.Spacing
}

// ItemOffset returns the scroll offset at which item i is aligned.
func (m *Model) ItemOffset(i int) float64 {
	return float64(i) * m.Stride()
}

// Offsets returns the aligned offset of every item.
func (m *Model) Offsets() []float64 {
	out := make([]float64, m.cfg.ItemCount)
	for i := range out {
		out[i] = m.ItemOffset(i)
	}
	return out
}

// Offset returns the current continuous scroll offset.
func (m *Model) Offset() float64 { return m.offset }

// Phase returns the gesture phase.
func (m *Model) Phase() Phase { return m.phase }

// Index returns the item nearest the current offset. ok is false when the
// carousel is empty.
func (m *Model) Index() (int, bool) {
	return m.IndexAt(m.offset)
}

// IndexAt returns the item nearest offset, rounding half up and clamping
// to the valid range.
func (m *Model) IndexAt(offset float64) (int, bool) {
	n := m.cfg.ItemCount
	if n == 0 {
		return 0, false
	}
	stride := m.Stride()
	if stride == 0 || math.IsNaN(offset) {
		return 0, true
	}
	// Bound before converting so huge offsets cannot overflow int.
	pos := math.Max(-1, math.Min(float64(n), offset/stride))
	return clampIndex(roundHalfUp(pos), n), true
}

// SnapTarget returns where a drag released at offset with the given
// velocity settles: the nearest item, moved one further in the direction of
// travel when |velocity| exceeds the threshold.
func (m *Model) SnapTarget(offset, velocity float64) (int, bool) {
	nearest, ok := m.IndexAt(offset)
	if !ok {
		return 0, false
	}
	return clampIndex(nearest+LookAhead(velocity, m.cfg.VelocityThreshold), m.cfg.ItemCount), true
}

// BeginDrag starts a drag. A settle in progress is abandoned at its current
// offset.
func (m *Model) BeginDrag() {
	if m.cfg.ItemCount == 0 {
		return
	}
	m.phase = PhaseDragging
}

// DragBy moves the offset by delta points. Positive deltas move forward.
func (m *Model) DragBy(delta float64) {
	if m.cfg.ItemCount == 0 || m.phase != PhaseDragging {
		return
	}
	m.offset += delta
	if !m.cfg.Overscroll {
		m.offset = m.clampOffset(m.offset)
	}
	m.notify()
}

// Release ends a drag and starts settling toward the snap target.
func (m *Model) Release(velocity float64) (int, bool) {
	if m.cfg.ItemCount == 0 || m.phase != PhaseDragging {
		return 0, false
	}
	target, _ := m.SnapTarget(m.offset, velocity)
	m.target = target
	m.phase = PhaseSettling
	return target, true
}

// Target returns the index being settled toward.
func (m *Model) Target() (int, bool) {
	if m.phase != PhaseSettling {
		return 0, false
	}
	return m.target, true
}

// TargetOffset returns the offset being settled toward.
func (m *Model) TargetOffset() float64 {
	return m.ItemOffset(m.target)
}

// Step moves fraction of the remaining distance toward the settle target.
// It returns true once the model is idle at the target. A fraction of 1
// or more lands immediately.
func (m *Model) Step(fraction float64) bool {
	if m.phase != PhaseSettling {
		return m.phase == PhaseIdle
	}
	goal := m.TargetOffset()
	remaining := goal - m.offset
	if fraction >= 1 || math.Abs(remaining) < settleEpsilon {
		m.Settle()
		return true
	}
	m.offset += remaining * math.Max(0, fraction)
	m.notify()
	return false
}

// Settle completes a settle immediately.
func (m *Model) Settle() {
	if m.phase != PhaseSettling {
		return
	}
	m.offset = m.TargetOffset()
	m.phase = PhaseIdle
	m.notify()
}

// ScrollTo settles toward item i, clamped to the valid range.
func (m *Model) ScrollTo(i int) {
	if m.cfg.ItemCount == 0 {
		return
	}
	m.target = clampIndex(i, m.cfg.ItemCount)
	m.phase = PhaseSettling
}

// Next settles toward the item after the current one. With wrap, the last
// item advances to the first.
func (m *Model) Next(wrap bool) {
	m.advance(1, wrap)
}

// Prev settles toward the item before the current one. With wrap, the first
// item goes back to the last.
func (m *Model) Prev(wrap bool) {
	m.advance(-1, wrap)
}

func (m *Model) advance(dir int, wrap bool) {
	n := m.cfg.ItemCount
	if n == 0 {
		return
	}
	cur, _ := m.Index()
	if m.phase == PhaseSettling {
		cur = m.target
	}
	next := cur + dir
	if wrap {
		next = ((next % n) + n) % n
	}
	m.ScrollTo(next)
}

// SetItemCount changes the number of items and re-clamps the offset.
func (m *Model) SetItemCount(n int) {
	if n < 0 {
		n = 0
	}
	m.cfg.ItemCount = n
	m.reclamp()
}

// SetViewport changes the viewport length. Fraction-sized items keep their
// index; fixed-size items keep their offset.
func (m *Model) SetViewport(viewport float64) {
	idx, ok := m.Index()
	m.cfg.Viewport = viewport
	if ok && m.cfg.Sizing.IsFraction() && m.phase == PhaseIdle {
		m.offset = m.ItemOffset(idx)
	}
	m.reclamp()
}

func (m *Model) reclamp() {
	if m.cfg.ItemCount == 0 {
		m.offset = 0
		m.phase = PhaseIdle
		m.notify()
		return
	}
	if m.target >= m.cfg.ItemCount {
		m.target = m.cfg.ItemCount - 1
	}
	m.offset = m.clampOffset(m.offset)
	m.notify()
}

// clampOffset bounds the offset between the first and last aligned items.
func (m *Model) clampOffset(offset float64) float64 {
	lo, hi := 0.0, m.ItemOffset(m.cfg.ItemCount-1)
	if hi < lo {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(hi, offset))
}

func (m *Model) notify() {
	idx, ok := m.Index()
	if idx == m.lastIndex && ok == m.hasIndex {
		return
	}
	m.lastIndex, m.hasIndex = idx, ok
	if m.OnIndexChange != nil {
		m.OnIndexChange(idx, ok)
	}
}

const settleEpsilon = 0.5

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// LookAhead returns +1, -1 or 0 depending on whether velocity exceeds the
// threshold and in which direction.
func LookAhead(velocity, threshold float64) int {
	switch {
	case velocity > threshold:
		return 1
	case velocity < -threshold:
		return -1
	}
	return 0
}
