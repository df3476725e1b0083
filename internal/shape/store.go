package shape

import "github.com/mkessler/plotmark/internal/geo"

// Observer receives the full shape list after every store mutation.
// The hosting form registers one so it can persist the list on submit.
type Observer func(shapes []Shape)

// Store holds the ordered collection of finalized shapes for one editing
// session. It has a single writer (the drawing session) and notifies at most
// one observer on every mutation.
type Store struct {
	shapes   []Shape
	observer Observer
	center   *geo.Point
}

// NewStore creates an empty shape store.
func NewStore() *Store {
	return &Store{}
}

// SetObserver registers the mutation observer, replacing any previous one.
func (s *Store) SetObserver(fn Observer) {
	s.observer = fn
}

// Add appends a finalized shape. Duplicate geometry is not rejected.
func (s *Store) Add(sh Shape) {
	s.shapes = append(s.shapes, sh)
	s.notify()
}

// DeleteByID removes the shape with the given ID. Deleting an unknown ID is
// a no-op and does not notify.
func (s *Store) DeleteByID(id string) {
	for i, sh := range s.shapes {
		if sh.ID == id {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			if s.center != nil {
				s.center = nil
			}
			s.notify()
			return
		}
	}
}

// Clear empties the store and resets the derived center.
func (s *Store) Clear() {
	s.shapes = nil
	s.center = nil
	s.notify()
}

// All returns a copy of the shapes in insertion order.
func (s *Store) All() []Shape {
	out := make([]Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// Len returns the number of stored shapes.
func (s *Store) Len() int {
	return len(s.shapes)
}

// SetCenter records the derived canonical coordinate for the current shape
// selection.
func (s *Store) SetCenter(p geo.Point) {
	pt := p
	s.center = &pt
}

// Center returns the derived canonical coordinate, if one has been set.
func (s *Store) Center() (geo.Point, bool) {
	if s.center == nil {
		return geo.Point{}, false
	}
	return *s.center, true
}

func (s *Store) notify() {
	if s.observer != nil {
		s.observer(s.All())
	}
}
