package points

import (
	"errors"

	"github.com/samber/lo"
)

// ErrInsufficientPoints is returned when a limit promotion has too few
// points to work with.
var ErrInsufficientPoints = errors.New("not enough points")

// Direction is a shift direction as seen on screen.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Store is the ordered collection of points of one digitizing session.
// Insertion order is significant; points are only appended or deleted.
//
// Store is not safe for concurrent use.
type Store struct {
	pts    []Point
	selSeq uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Len returns the number of points of every kind.
func (s *Store) Len() int {
	return len(s.pts)
}

// At returns the i-th point.
func (s *Store) At(i int) Point {
	return s.pts[i]
}

// Points returns a copy of the points in store order.
func (s *Store) Points() []Point {
	out := make([]Point, len(s.pts))
	copy(out, s.pts)
	return out
}

// DataPoints returns a copy of the Data-kind points in store order.
func (s *Store) DataPoints() []Point {
	return lo.Filter(s.pts, func(p Point, _ int) bool { return p.Kind == Data })
}

// CountData returns the number of Data-kind points.
func (s *Store) CountData() int {
	return lo.CountBy(s.pts, func(p Point) bool { return p.Kind == Data })
}

// SelectedCount returns the number of selected points.
func (s *Store) SelectedCount() int {
	return lo.CountBy(s.pts, func(p Point) bool { return p.Selected })
}

// Limit returns the point holding the given limit kind.
func (s *Store) Limit(kind Kind) (Point, bool) {
	p, _, ok := lo.FindIndexOf(s.pts, func(p Point) bool { return p.Kind == kind })
	return p, ok
}

// HasAllLimits reports whether exactly one point of each limit kind exists.
func (s *Store) HasAllLimits() bool {
	for _, k := range LimitKinds {
		if lo.CountBy(s.pts, func(p Point) bool { return p.Kind == k }) != 1 {
			return false
		}
	}
	return true
}

// SetValues stores calibrated values on the i-th point.
func (s *Store) SetValues(i int, x, y float64) {
	s.pts[i].X = x
	s.pts[i].Y = y
}

// Append adds a fully specified point. Limit kinds displace any existing
// holder of the same kind, which reverts to Data.
func (s *Store) Append(p Point) {
	p.selSeq = 0
	if p.Selected {
		s.selSeq++
		p.selSeq = s.selSeq
	}
	if p.Kind.IsLimit() {
		s.demote(p.Kind)
	}
	s.pts = append(s.pts, p)
}

// AddData appends a new, unselected Data point.
func (s *Store) AddData(row, col int) {
	s.pts = append(s.pts, Point{Kind: Data, Row: row, Col: col})
}

// RemoveLastData removes the most recently appended Data point, if any.
// Limit points are never touched.
func (s *Store) RemoveLastData() {
	_, i, ok := lo.FindLastIndexOf(s.pts, func(p Point) bool { return p.Kind == Data })
	if !ok {
		return
	}
	s.pts = append(s.pts[:i], s.pts[i+1:]...)
}

// RemoveSelected removes every selected point, limits included.
func (s *Store) RemoveSelected() {
	s.pts = lo.Filter(s.pts, func(p Point, _ int) bool { return !p.Selected })
}

// RemoveAllData removes every Data point and keeps the limits.
func (s *Store) RemoveAllData() {
	s.pts = lo.Filter(s.pts, func(p Point, _ int) bool { return p.Kind != Data })
}

// RemoveLimit removes the point holding the given limit kind.
func (s *Store) RemoveLimit(kind Kind) {
	if !kind.IsLimit() {
		return
	}
	s.pts = lo.Filter(s.pts, func(p Point, _ int) bool { return p.Kind != kind })
}

// RemoveAllLimits removes the four limit points.
func (s *Store) RemoveAllLimits() {
	s.pts = lo.Filter(s.pts, func(p Point, _ int) bool { return !p.Kind.IsLimit() })
}

// Clear empties the store.
func (s *Store) Clear() {
	s.pts = nil
	s.selSeq = 0
}

// PromoteToLimit turns a point into the given limit kind. The most recently
// selected point wins; without a selection the last Data point is used.
// The previous holder of kind reverts to Data.
//
// Promoting with no Data point and no selection leaves the store unchanged.
func (s *Store) PromoteToLimit(kind Kind) error {
	if !kind.IsLimit() {
		return errors.New("promotion target must be a limit kind")
	}
	if len(s.pts) == 0 {
		return ErrInsufficientPoints
	}

	target := s.lastSelected()
	if target < 0 {
		_, target, _ = lo.FindLastIndexOf(s.pts, func(p Point) bool { return p.Kind == Data })
	}
	if target < 0 {
		return nil
	}

	s.demote(kind)
	s.pts[target].Kind = kind
	s.pts[target].Selected = false
	s.pts[target].selSeq = 0
	return nil
}

// PromoteLastFour sets all four limits at once, in the order YMax, YMin,
// XMax, XMin, each following the PromoteToLimit rule. At least four points
// must exist.
func (s *Store) PromoteLastFour() error {
	if len(s.pts) < 4 {
		return ErrInsufficientPoints
	}
	for _, k := range [...]Kind{YMax, YMin, XMax, XMin} {
		if err := s.PromoteToLimit(k); err != nil {
			return err
		}
	}
	return nil
}

// ShiftSelected moves every selected point by distance pixels, wrapping
// around a rows x cols image. A distance below 1 moves by one pixel.
func (s *Store) ShiftSelected(dir Direction, distance, rows, cols int) {
	if distance < 1 {
		distance = 1
	}

	var dRow, dCol int
	switch dir {
	case Up:
		dRow = -distance
	case Down:
		dRow = distance
	case Left:
		dCol = -distance
	case Right:
		dCol = distance
	default:
		return
	}

	for i := range s.pts {
		if !s.pts[i].Selected {
			continue
		}
		px := s.pts[i].Pixel().Offset(dRow, dCol).Wrap(rows, cols)
		s.pts[i].Row, s.pts[i].Col = px.Row, px.Col
	}
}

// SelectNearest toggles the selection of the point nearest (row, col) if it
// lies within tolerance. A non-additive selection clears every other point
// first. A miss clears the whole selection. It returns the index of the hit
// point, or -1.
func (s *Store) SelectNearest(row, col int, tolerance float64, additive bool) int {
	i, ok := Locate(s.pts, row, col, tolerance)
	if !ok {
		s.ClearSelection()
		return -1
	}

	wasSelected := s.pts[i].Selected
	if !additive {
		s.ClearSelection()
	}
	s.setSelected(i, !wasSelected)
	return i
}

// ClearSelection deselects every point.
func (s *Store) ClearSelection() {
	for i := range s.pts {
		s.pts[i].Selected = false
		s.pts[i].selSeq = 0
	}
}

func (s *Store) setSelected(i int, on bool) {
	s.pts[i].Selected = on
	if on {
		s.selSeq++
		s.pts[i].selSeq = s.selSeq
	} else {
		s.pts[i].selSeq = 0
	}
}

// lastSelected returns the index of the most recently selected point, or -1.
func (s *Store) lastSelected() int {
	best := -1
	var seq uint64
	for i, p := range s.pts {
		if p.Selected && (best < 0 || p.selSeq >= seq) {
			best, seq = i, p.selSeq
		}
	}
	return best
}

func (s *Store) demote(kind Kind) {
	for i := range s.pts {
		if s.pts[i].Kind == kind {
			s.pts[i].Kind = Data
		}
	}
}
