package layout

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
)

// AlignmentMode tells whether margins take part in alignment.
type AlignmentMode uint8

const (
	// AlignMargins aligns outer edges of children, margins are part of measured size.
	AlignMargins AlignmentMode = iota
	// AlignBounds aligns children bounds, margins are added to gaps between lines after solving.
	AlignBounds
)

func (m AlignmentMode) String() string {
	if m == AlignBounds {
		return "bounds"
	}
	return "margins"
}

// ParseAlignmentMode accepts "margins" and "bounds".
func ParseAlignmentMode(s string) (AlignmentMode, error) {
	switch s {
	case "margins", "":
		return AlignMargins, nil
	case "bounds":
		return AlignBounds, nil
	}
	return AlignMargins, fmt.Errorf("unknown alignment mode %q", s)
}

// ChildID is stable handle of child assigned when it is added to axis.
type ChildID int

// Measurement is measured size of child along axis and its intrinsic baseline, Undefined if it has none.
type Measurement struct {
	Size     int
	Baseline int
}

// Child is contribution of one child to an axis.
type Child struct {
	Group          Group
	Weight         float64 // share of slack given to last row or column of span
	LeadingMargin  int
	TrailingMargin int
	Measure        func() Measurement
}

func (c Child) Validate() error {
	if err := c.Group.Span.Validate(); err != nil {
		return err
	}
	if c.Group.Alignment > Fill {
		return fmt.Errorf("%w: %v", ErrInvalidAlignment, c.Group.Alignment)
	}
	if !validWeight(c.Weight) {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, c.Weight)
	}
	return nil
}

func validWeight(w float64) bool { return w >= 0 && !math.IsNaN(w) && !math.IsInf(w, 0) }

func (c Child) measure() Measurement {
	if c.Measure == nil {
		return Measurement{Baseline: Undefined}
	}
	return c.Measure()
}

type childSlot struct {
	Child
	removed bool
	gone    bool
}

func (s childSlot) active() bool { return !s.removed && !s.gone }

// Axis computes locations of grid lines along one axis.
// Grid uses two of them: horizontal one for columns and vertical one for rows.
//
// Everything derived from children is cached. Structural changes (children added or removed,
// spans changed, count or ordering changed) drop all caches, remeasurement only drops values.
// Caches are recomputed lazily by accessors. Axis is not safe for concurrent use.
type Axis struct {
	Horizontal bool

	logger   *slog.Logger
	children []childSlot

	explicitCount int
	count         int
	countValid    bool

	orderPreserved bool
	alignmentMode  AlignmentMode

	groupBounds      *PackedMap[Group, Bounds]
	groupBoundsValid bool

	links      *PackedMap[Interval, int]
	linksValid bool

	leadingMargins  []int
	trailingMargins []int
	marginsValid    bool

	weights      []float64
	weightsValid bool

	arcs      []Arc
	arcsValid bool

	minima      []int
	minimaValid bool
	solveErr    error

	locations      []int
	locationsValid bool
	target         int
}

func NewAxis(horizontal bool) *Axis {
	return &Axis{
		Horizontal:    horizontal,
		logger:        slog.Default(),
		explicitCount: Undefined,
	}
}

func (a *Axis) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	a.logger = logger
}

// Add appends child and returns its handle.
func (a *Axis) Add(c Child) (ChildID, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	a.children = append(a.children, childSlot{Child: c})
	a.InvalidateStructure()
	return ChildID(len(a.children) - 1), nil
}

func (a *Axis) slot(id ChildID) (*childSlot, error) {
	if id < 0 || int(id) >= len(a.children) || a.children[id].removed {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChild, id)
	}
	return &a.children[id], nil
}

// truncate drops children added at or after handle n.
func (a *Axis) truncate(n int) {
	if n < len(a.children) {
		a.children = a.children[:n]
		a.InvalidateStructure()
	}
}

// Remove drops child. Its handle is never reused.
func (a *Axis) Remove(id ChildID) error {
	s, err := a.slot(id)
	if err != nil {
		return err
	}
	s.removed = true
	s.Child = Child{}
	a.InvalidateStructure()
	return nil
}

// Update replaces contribution of child.
// Changing group is structural change, anything else only invalidates values.
func (a *Axis) Update(id ChildID, c Child) error {
	s, err := a.slot(id)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	structural := s.Group != c.Group
	s.Child = c
	if structural {
		a.InvalidateStructure()
	} else {
		a.InvalidateValues()
	}
	return nil
}

// SetGone hides child from layout while keeping its handle.
func (a *Axis) SetGone(id ChildID, gone bool) error {
	s, err := a.slot(id)
	if err != nil {
		return err
	}
	if s.gone != gone {
		s.gone = gone
		a.InvalidateStructure()
	}
	return nil
}

func (a *Axis) Child(id ChildID) (Child, error) {
	s, err := a.slot(id)
	if err != nil {
		return Child{}, err
	}
	return s.Child, nil
}

// IsGone tells if child is hidden from layout.
func (a *Axis) IsGone(id ChildID) bool {
	s, err := a.slot(id)
	return err == nil && s.gone
}

func (a *Axis) maxIndex() int {
	count := -1
	for _, s := range a.children {
		if !s.active() {
			continue
		}
		count = max(count, s.Group.Span.Min, s.Group.Span.Max)
	}
	return count
}

// Count is number of cells along axis: explicit count if set, and large enough for every span.
func (a *Axis) Count() int {
	if !a.countValid {
		a.count = max(0, a.maxIndex())
		if a.explicitCount != Undefined {
			a.count = max(a.count, a.explicitCount)
		}
		a.countValid = true
	}
	return a.count
}

// SetCount sets explicit number of cells, Undefined infers it from children.
func (a *Axis) SetCount(count int) error {
	if count < 0 && count != Undefined {
		return fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	a.explicitCount = count
	a.InvalidateStructure()
	return nil
}

// ExplicitCount is count set by SetCount or Undefined.
func (a *Axis) ExplicitCount() int { return a.explicitCount }

func (a *Axis) IsOrderPreserved() bool { return a.orderPreserved }

// SetOrderPreserved forces grid lines to keep their index order.
func (a *Axis) SetOrderPreserved(orderPreserved bool) {
	a.orderPreserved = orderPreserved
	a.InvalidateStructure()
}

func (a *Axis) AlignmentMode() AlignmentMode { return a.alignmentMode }

func (a *Axis) SetAlignmentMode(mode AlignmentMode) {
	if a.alignmentMode != mode {
		a.alignmentMode = mode
		a.InvalidateValues()
	}
}

// measurement of child as used for alignment, margins included when aligning margins.
func (a *Axis) measurement(c Child) Measurement {
	m := c.measure()
	if a.alignmentMode == AlignMargins {
		m.Size += c.LeadingMargin + c.TrailingMargin
		if m.Baseline >= 0 {
			m.Baseline += c.LeadingMargin
		}
	}
	return m
}

func (a *Axis) createGroupBounds() *PackedMap[Group, Bounds] {
	keys := make([]Group, len(a.children))
	for i, s := range a.children {
		if s.active() {
			keys[i] = s.Group
		} else {
			keys[i] = goneGroup
		}
	}
	return NewPackedMap(keys, make([]Bounds, len(keys)))
}

func (a *Axis) computeGroupBounds() {
	values := a.groupBounds.Values()
	for i := range values {
		values[i].Reset()
	}
	for i, s := range a.children {
		if !s.active() {
			continue
		}
		m := a.measurement(s.Child)
		a.groupBounds.ValueRef(i).IncludeChild(s.Group.Alignment, m.Size, m.Baseline)
	}
}

func (a *Axis) getGroupBounds() *PackedMap[Group, Bounds] {
	if a.groupBounds == nil {
		a.groupBounds = a.createGroupBounds()
	}
	if !a.groupBoundsValid {
		a.computeGroupBounds()
		a.groupBoundsValid = true
	}
	return a.groupBounds
}

// GroupBounds are bounds of group child belongs to.
func (a *Axis) GroupBounds(id ChildID) (Bounds, error) {
	if _, err := a.slot(id); err != nil {
		return Bounds{}, err
	}
	return a.getGroupBounds().Value(int(id)), nil
}

// links map each unique span to largest size required by groups over that span
func (a *Axis) createLinks() *PackedMap[Interval, int] {
	groups := a.getGroupBounds().Keys()
	keys := make([]Interval, len(groups))
	for i, g := range groups {
		keys[i] = g.Span
	}
	return NewPackedMap(keys, make([]int, len(keys)))
}

func (a *Axis) computeLinks() {
	values := a.links.Values()
	for i := range values {
		values[i] = 0
	}
	for i, b := range a.getGroupBounds().Values() {
		v := a.links.ValueRef(i)
		*v = max(*v, b.Size())
	}
}

func (a *Axis) getLinks() *PackedMap[Interval, int] {
	if a.links == nil {
		a.links = a.createLinks()
	}
	if !a.linksValid {
		a.computeLinks()
		a.linksValid = true
	}
	return a.links
}

func (a *Axis) computeMargins() {
	clear(a.leadingMargins)
	clear(a.trailingMargins)
	for _, s := range a.children {
		if !s.active() {
			continue
		}
		span := s.Group.Span
		a.leadingMargins[span.Min] = max(a.leadingMargins[span.Min], s.LeadingMargin)
		a.trailingMargins[span.Max] = max(a.trailingMargins[span.Max], s.TrailingMargin)
	}
}

func (a *Axis) getMargins() (leading, trailing []int) {
	if a.leadingMargins == nil {
		a.leadingMargins = make([]int, a.Count()+1)
		a.trailingMargins = make([]int, a.Count()+1)
	}
	if !a.marginsValid {
		a.computeMargins()
		a.marginsValid = true
	}
	return a.leadingMargins, a.trailingMargins
}

// weights are indexed by cell, child weight goes to last cell of its span
func (a *Axis) computeWeights() {
	clear(a.weights)
	for _, s := range a.children {
		if !s.active() || s.Group.Span.Size() == 0 {
			continue
		}
		i := s.Group.Span.Max - 1
		a.weights[i] = max(a.weights[i], s.Weight)
	}
}

func (a *Axis) getWeights() []float64 {
	if a.weights == nil {
		a.weights = make([]float64, a.Count())
	}
	if !a.weightsValid {
		a.computeWeights()
		a.weightsValid = true
	}
	return a.weights
}

func (a *Axis) getArcs() []Arc {
	if a.arcs == nil {
		a.arcs = a.createArcs()
	}
	if !a.arcsValid {
		a.computeArcs()
		a.arcsValid = true
	}
	return a.arcs
}

// Arcs are constraints in order they are relaxed.
func (a *Axis) Arcs() []Arc { return slices.Clone(a.getArcs()) }

// ConstraintGraph is view of current constraints for diagnostics.
func (a *Axis) ConstraintGraph() ConstraintGraph {
	return ConstraintGraph{Lines: a.Count() + 1, Arcs: a.Arcs()}
}

func (a *Axis) getMinima() []int {
	if a.minima == nil {
		a.minima = make([]int, a.Count()+1)
	}
	if !a.minimaValid {
		a.solveErr = a.computeMinima(a.minima)
		a.minimaValid = true
	}
	return a.minima
}

// Minima are smallest locations of grid lines that satisfy every constraint.
func (a *Axis) Minima() []int { return slices.Clone(a.getMinima()) }

// Min is smallest size of axis.
func (a *Axis) Min() int { return size(a.getMinima()) }

// Layout computes final locations of grid lines for target size, slack is distributed by weights.
// Locations are always computed, error is reported when constraints contradict each other.
func (a *Axis) Layout(target int) error {
	minima := a.getMinima()
	if a.locations == nil {
		a.locations = make([]int, len(minima))
	}
	if !a.locationsValid || a.target != target {
		copy(a.locations, minima)
		distribute(a.locations, a.getWeights(), target-size(minima))
		a.target = target
		a.locationsValid = true
	}
	return a.solveErr
}

// Locations are grid line locations computed by last Layout.
func (a *Axis) Locations() []int {
	if !a.locationsValid {
		return nil
	}
	return slices.Clone(a.locations)
}

// current locations are those of last Layout, minima when there is none or it was invalidated.
func (a *Axis) current() []int {
	if a.locationsValid {
		return a.locations
	}
	return a.getMinima()
}

// Location of grid line computed by last Layout, its minimum if Layout was not run since last change.
func (a *Axis) Location(line int) int { return a.current()[line] }

// LocationIncludingMargin is location of leading or trailing edge of cell at line,
// with margins of line removed when margins are not part of alignment.
func (a *Axis) LocationIncludingMargin(leading bool, line int) int {
	location := a.current()[line]
	if a.alignmentMode == AlignMargins {
		return location
	}
	leadingMargins, trailingMargins := a.getMargins()
	if leading {
		return location + leadingMargins[line]
	}
	return location - trailingMargins[line]
}

// InvalidateStructure drops every cache.
func (a *Axis) InvalidateStructure() {
	a.countValid = false

	a.groupBounds = nil
	a.links = nil
	a.leadingMargins = nil
	a.trailingMargins = nil
	a.weights = nil
	a.arcs = nil
	a.minima = nil
	a.locations = nil

	a.InvalidateValues()
}

// InvalidateValues drops caches that depend on measurements, margins and weights.
func (a *Axis) InvalidateValues() {
	a.groupBoundsValid = false
	a.linksValid = false
	a.marginsValid = false
	a.weightsValid = false
	a.arcsValid = false
	a.minimaValid = false
	a.locationsValid = false
	a.solveErr = nil
}

func size(locations []int) int {
	if len(locations) == 0 {
		return 0
	}
	return slices.Max(locations) - locations[0]
}
