package drawing

import (
	"github.com/mkessler/plotmark/internal/geo"
	"github.com/mkessler/plotmark/internal/shape"
)

// CoordinateFunc receives every clicked coordinate, drawing or not. The
// hosting form uses it to prefill a property's lat/lng fields.
type CoordinateFunc func(pt geo.Point)

// Router is the sole bridge between raw map click events and the drawing
// session. Idle clicks pass through as ordinary map interaction.
type Router struct {
	session      *Session
	onCoordinate CoordinateFunc
}

// NewRouter creates a router over the given session.
func NewRouter(session *Session) *Router {
	return &Router{session: session}
}

// SetCoordinateFunc registers the last-clicked-coordinate callback.
func (r *Router) SetCoordinateFunc(fn CoordinateFunc) {
	r.onCoordinate = fn
}

// Click routes one map click. The coordinate callback fires regardless of
// session state; the click reaches the session only while drawing.
func (r *Router) Click(pt geo.Point) *shape.Shape {
	if r.onCoordinate != nil {
		r.onCoordinate(pt)
	}

	if r.session.State() != StateDrawing {
		return nil
	}

	// Click transitions cannot fail; only Finish validates point counts.
	sh, _ := r.session.Click(pt)
	return sh
}
