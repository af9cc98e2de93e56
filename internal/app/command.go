package app

import (
	"fmt"

	"data-digitizer/internal/points"
)

// Command is a user action. Commands are run by Session.Dispatch.
type Command interface {
	Name() string
}

type (
	// CmdOpenImage clears the session and loads an image.
	CmdOpenImage struct{ Path string }
	// CmdAddPoint appends a Data point.
	CmdAddPoint struct{ Row, Col int }
	// CmdSelect toggles the point nearest (Row, Col).
	CmdSelect struct {
		Row, Col int
		Additive bool
	}
	// CmdUndoLastPoint removes the most recently added Data point.
	CmdUndoLastPoint struct{}
	// CmdDeleteSelected removes every selected point.
	CmdDeleteSelected struct{}
	// CmdDeleteAllData removes every Data point.
	CmdDeleteAllData struct{}
	// CmdDeleteAllLimits removes the four limit points.
	CmdDeleteAllLimits struct{}
	// CmdSetXMin promotes the selected or last point to X min.
	CmdSetXMin struct{}
	// CmdSetXMax promotes the selected or last point to X max.
	CmdSetXMax struct{}
	// CmdSetYMin promotes the selected or last point to Y min.
	CmdSetYMin struct{}
	// CmdSetYMax promotes the selected or last point to Y max.
	CmdSetYMax struct{}
	// CmdSetAllLimits promotes the last four points to the four limits.
	CmdSetAllLimits struct{}
	// CmdMeasure recomputes the values of every point.
	CmdMeasure struct{}
	// CmdSave measures and writes the Data points to Path.
	CmdSave struct{ Path string }
	// CmdClearAll resets the session, image included.
	CmdClearAll struct{}
	// CmdShiftUp moves the selection up by one pixel, or a coarse step.
	CmdShiftUp struct{ Coarse bool }
	// CmdShiftDown moves the selection down.
	CmdShiftDown struct{ Coarse bool }
	// CmdShiftLeft moves the selection left.
	CmdShiftLeft struct{ Coarse bool }
	// CmdShiftRight moves the selection right.
	CmdShiftRight struct{ Coarse bool }
	// CmdToggleLogX flips the X axis between linear and log.
	CmdToggleLogX struct{}
	// CmdToggleLogY flips the Y axis between linear and log.
	CmdToggleLogY struct{}
	// CmdInjectTestPoint adds a Data point at the pixel of the test values.
	CmdInjectTestPoint struct{}
)

func (CmdOpenImage) Name() string       { return "open image" }
func (CmdAddPoint) Name() string        { return "add point" }
func (CmdSelect) Name() string          { return "select" }
func (CmdUndoLastPoint) Name() string   { return "undo last point" }
func (CmdDeleteSelected) Name() string  { return "delete selected" }
func (CmdDeleteAllData) Name() string   { return "delete all data" }
func (CmdDeleteAllLimits) Name() string { return "delete all limits" }
func (CmdSetXMin) Name() string         { return "set X min" }
func (CmdSetXMax) Name() string         { return "set X max" }
func (CmdSetYMin) Name() string         { return "set Y min" }
func (CmdSetYMax) Name() string         { return "set Y max" }
func (CmdSetAllLimits) Name() string    { return "set all limits" }
func (CmdMeasure) Name() string         { return "measure" }
func (CmdSave) Name() string            { return "save" }
func (CmdClearAll) Name() string        { return "clear all" }
func (CmdShiftUp) Name() string         { return "shift up" }
func (CmdShiftDown) Name() string       { return "shift down" }
func (CmdShiftLeft) Name() string       { return "shift left" }
func (CmdShiftRight) Name() string      { return "shift right" }
func (CmdToggleLogX) Name() string      { return "toggle log X" }
func (CmdToggleLogY) Name() string      { return "toggle log Y" }
func (CmdInjectTestPoint) Name() string { return "inject test point" }

// Dispatch runs cmd to completion. A failed command returns a *CommandError
// and leaves the points as they were, except CmdOpenImage which always
// starts a fresh document.
func (s *Session) Dispatch(cmd Command) error {
	s.mu.Lock()
	event, data, err := s.run(cmd)
	if err == nil && event == EventPointsChanged {
		s.Modified = true
	}
	s.mu.Unlock()

	if err != nil {
		return &CommandError{Command: cmd.Name(), Err: err}
	}
	s.Emit(event, data)
	return nil
}

// run executes cmd with mu held and names the event to emit afterwards.
func (s *Session) run(cmd Command) (EventType, interface{}, error) {
	switch c := cmd.(type) {
	case CmdOpenImage:
		if err := s.openImage(c.Path); err != nil {
			return 0, nil, err
		}
		return EventImageLoaded, s.layer, nil

	case CmdAddPoint:
		s.store.AddData(c.Row, c.Col)
		return EventPointsChanged, nil, nil

	case CmdSelect:
		rows, cols := s.dims()
		tol := points.Tolerance(rows, cols, s.HitFraction)
		return EventSelectionChanged, s.store.SelectNearest(c.Row, c.Col, tol, c.Additive), nil

	case CmdUndoLastPoint:
		s.store.RemoveLastData()
		return EventPointsChanged, nil, nil

	case CmdDeleteSelected:
		s.store.RemoveSelected()
		return EventPointsChanged, nil, nil

	case CmdDeleteAllData:
		s.store.RemoveAllData()
		return EventPointsChanged, nil, nil

	case CmdDeleteAllLimits:
		s.store.RemoveAllLimits()
		return EventPointsChanged, nil, nil

	case CmdSetXMin:
		return s.promote(points.XMin)
	case CmdSetXMax:
		return s.promote(points.XMax)
	case CmdSetYMin:
		return s.promote(points.YMin)
	case CmdSetYMax:
		return s.promote(points.YMax)

	case CmdSetAllLimits:
		if err := s.store.PromoteLastFour(); err != nil {
			return 0, nil, err
		}
		return EventPointsChanged, nil, nil

	case CmdMeasure:
		if err := s.measure(); err != nil {
			return 0, nil, err
		}
		return EventMeasured, nil, nil

	case CmdSave:
		if err := s.saveData(c.Path); err != nil {
			return 0, nil, err
		}
		return EventDataSaved, c.Path, nil

	case CmdClearAll:
		s.reset()
		return EventCleared, nil, nil

	case CmdShiftUp:
		return s.shift(points.Up, c.Coarse)
	case CmdShiftDown:
		return s.shift(points.Down, c.Coarse)
	case CmdShiftLeft:
		return s.shift(points.Left, c.Coarse)
	case CmdShiftRight:
		return s.shift(points.Right, c.Coarse)

	case CmdToggleLogX:
		if err := s.toggleScale(true); err != nil {
			return 0, nil, err
		}
		return EventScaleChanged, nil, nil
	case CmdToggleLogY:
		if err := s.toggleScale(false); err != nil {
			return 0, nil, err
		}
		return EventScaleChanged, nil, nil

	case CmdInjectTestPoint:
		row, col, err := s.project()
		if err != nil {
			return 0, nil, err
		}
		s.store.AddData(row, col)
		// limits exist, so this cannot fail
		_ = s.measure()
		return EventPointsChanged, nil, nil

	default:
		return 0, nil, fmt.Errorf("%T: %w", cmd, ErrUnknownCommand)
	}
}

func (s *Session) promote(kind points.Kind) (EventType, interface{}, error) {
	if err := s.store.PromoteToLimit(kind); err != nil {
		return 0, nil, err
	}
	return EventPointsChanged, kind, nil
}

func (s *Session) shift(dir points.Direction, coarse bool) (EventType, interface{}, error) {
	rows, cols := s.dims()
	if rows == 0 || cols == 0 {
		// no wrap bounds without an image
		if s.store.SelectedCount() > 0 {
			return 0, nil, ErrNoImage
		}
		return EventSelectionChanged, nil, nil
	}
	s.store.ShiftSelected(dir, s.shiftDistance(dir, coarse), rows, cols)
	return EventPointsChanged, dir, nil
}
