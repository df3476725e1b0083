// Package drawing implements the shape-drawing session state machine and the
// router that feeds it map click events.
package drawing

import (
	"errors"
	"fmt"

	"github.com/mkessler/plotmark/internal/geo"
	"github.com/mkessler/plotmark/internal/shape"
)

// ErrInsufficientPoints is returned by Finish when a polygon or plot has
// fewer than three distinct points. The session state is left unchanged.
var ErrInsufficientPoints = errors.New("insufficient points")

// minRingPoints is the distinct-point minimum for polygon and plot shapes.
const minRingPoints = 3

// State is the drawing session state.
type State int

const (
	// StateIdle means clicks are ordinary map interaction.
	StateIdle State = iota
	// StateDrawing means clicks accumulate into the current shape.
	StateDrawing
)

// Event is a discrete user gesture consumed by the session. Gestures are
// values, not callbacks, so transitions stay testable without map plumbing.
type Event interface {
	isEvent()
}

// Start begins drawing a shape of the given kind and category.
type Start struct {
	Kind     shape.Kind
	Category shape.Category
	Label    string
}

// Click adds a map click at the given coordinate.
type Click struct {
	Point geo.Point
}

// Finish completes the in-progress polygon or plot.
type Finish struct{}

// Cancel abandons the in-progress shape, discarding its points.
type Cancel struct{}

func (Start) isEvent()  {}
func (Click) isEvent()  {}
func (Finish) isEvent() {}
func (Cancel) isEvent() {}

// sessionState is the full transition-function input/output value.
type sessionState struct {
	state    State
	kind     shape.Kind
	category shape.Category
	label    string
	buffer   []geo.Point
}

// step is the pure transition function. It returns the next state and, when
// a shape completes, its finalized geometry.
func step(s sessionState, ev Event) (sessionState, geo.Geometry, error) {
	switch e := ev.(type) {
	case Start:
		if !shape.ValidKind(string(e.Kind)) {
			return s, nil, fmt.Errorf("unknown shape kind %q", e.Kind)
		}
		return sessionState{
			state:    StateDrawing,
			kind:     e.Kind,
			category: e.Category,
			label:    e.Label,
		}, nil, nil

	case Click:
		if s.state != StateDrawing {
			return s, nil, nil
		}
		switch s.kind {
		case shape.KindMarker:
			// Single-click completion.
			return sessionState{state: StateIdle}, e.Point, nil
		case shape.KindRectangle:
			if len(s.buffer) == 0 {
				next := s
				next.buffer = []geo.Point{e.Point}
				return next, nil, nil
			}
			ring := geo.RectangleRing(s.buffer[0], e.Point)
			return sessionState{state: StateIdle}, ring, nil
		default: // polygon, plot
			next := s
			next.buffer = append(append([]geo.Point(nil), s.buffer...), e.Point)
			return next, nil, nil
		}

	case Finish:
		if s.state != StateDrawing || !s.kind.Area() || s.kind == shape.KindRectangle {
			return s, nil, nil
		}
		if geo.DistinctCount(s.buffer) < minRingPoints {
			return s, nil, ErrInsufficientPoints
		}
		return sessionState{state: StateIdle}, geo.CloseRing(s.buffer), nil

	case Cancel:
		return sessionState{state: StateIdle}, nil, nil

	default:
		return s, nil, fmt.Errorf("unknown event %T", ev)
	}
}

// Session tracks one in-progress drawing per map instance. Finalized shapes
// are appended to the store. Single-threaded by contract: every call is
// driven synchronously by a user gesture.
type Session struct {
	store *shape.Store
	cur   sessionState
}

// NewSession creates an idle session writing finalized shapes to store.
func NewSession(store *shape.Store) *Session {
	return &Session{store: store}
}

// State returns the current session state.
func (s *Session) State() State {
	return s.cur.state
}

// Buffer returns a copy of the accumulated in-progress points.
func (s *Session) Buffer() []geo.Point {
	out := make([]geo.Point, len(s.cur.buffer))
	copy(out, s.cur.buffer)
	return out
}

// Kind returns the shape kind being drawn; meaningful only while Drawing.
func (s *Session) Kind() shape.Kind {
	return s.cur.kind
}

// Handle applies one gesture event. When the event completes a shape, the
// shape is appended to the store and returned.
func (s *Session) Handle(ev Event) (*shape.Shape, error) {
	next, geom, err := step(s.cur, ev)
	if err != nil {
		return nil, err
	}

	var emitted *shape.Shape
	if geom != nil {
		sh := shape.New(s.cur.kind, s.cur.category, geom, s.cur.label)
		s.store.Add(sh)
		emitted = &sh
	}

	s.cur = next
	return emitted, nil
}

// Start begins drawing a shape of the given kind and category.
func (s *Session) Start(kind shape.Kind, category shape.Category, label string) error {
	_, err := s.Handle(Start{Kind: kind, Category: category, Label: label})
	return err
}

// Click applies a map click at pt while drawing.
func (s *Session) Click(pt geo.Point) (*shape.Shape, error) {
	return s.Handle(Click{Point: pt})
}

// Finish completes the in-progress polygon or plot.
func (s *Session) Finish() (*shape.Shape, error) {
	return s.Handle(Finish{})
}

// Cancel abandons the in-progress shape. Wired to the Cancel action and the
// Escape key.
func (s *Session) Cancel() {
	// step never fails for Cancel.
	_, _ = s.Handle(Cancel{})
}
