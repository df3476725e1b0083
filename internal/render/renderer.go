// Package render projects stored shapes and the in-progress drawing buffer
// into map overlay primitives. It is the read-only consumer of the shape
// store; the drawing session is the single writer.
package render

import (
	"fmt"

	"github.com/mkessler/plotmark/internal/drawing"
	"github.com/mkessler/plotmark/internal/geo"
	"github.com/mkessler/plotmark/internal/shape"
)

// OverlayKind identifies a draw primitive on the map surface.
type OverlayKind string

const (
	OverlayMarker   OverlayKind = "marker"
	OverlayPolygon  OverlayKind = "polygon"
	OverlayPolyline OverlayKind = "polyline"
)

// Stroke weights and opacities for normal vs selected shapes.
const (
	strokeWeight         = 2.0
	selectedStrokeWeight = 4.0
	fillOpacity          = 0.2
	selectedFillOpacity  = 0.4
)

// Overlay is one renderable primitive.
type Overlay struct {
	ShapeID     string      `json:"shape_id,omitempty"`
	Kind        OverlayKind `json:"kind"`
	Points      []geo.Point `json:"points"`
	Color       string      `json:"color"`
	Weight      float64     `json:"weight"`
	FillOpacity float64     `json:"fill_opacity"`
	Dashed      bool        `json:"dashed"`
	Selected    bool        `json:"selected"`
}

// inProgressColor styles the dashed buffer outline while drawing.
const inProgressColor = "#374151"

// Renderer projects a store plus an optional session onto overlay values.
type Renderer struct {
	store      *shape.Store
	session    *drawing.Session
	selectedID string
}

// NewRenderer creates a renderer over the given store and session. The
// session may be nil when rendering a read-only view.
func NewRenderer(store *shape.Store, session *drawing.Session) *Renderer {
	return &Renderer{store: store, session: session}
}

// Project returns overlays for every stored shape, in insertion order,
// followed by the in-progress buffer (dashed, unfilled) when drawing. The
// buffer overlay is the only one that changes on every click.
func (r *Renderer) Project() ([]Overlay, error) {
	var overlays []Overlay

	for _, sh := range r.store.All() {
		ov, err := r.projectShape(sh)
		if err != nil {
			return nil, err
		}
		overlays = append(overlays, ov)
	}

	if r.session != nil && r.session.State() == drawing.StateDrawing {
		if buf := r.session.Buffer(); len(buf) > 0 {
			overlays = append(overlays, Overlay{
				Kind:   OverlayPolyline,
				Points: buf,
				Color:  inProgressColor,
				Weight: strokeWeight,
				Dashed: true,
			})
		}
	}

	return overlays, nil
}

// projectShape maps one finalized shape to its overlay.
func (r *Renderer) projectShape(sh shape.Shape) (Overlay, error) {
	selected := sh.ID == r.selectedID

	ov := Overlay{
		ShapeID:  sh.ID,
		Color:    sh.Category.Color(),
		Weight:   strokeWeight,
		Selected: selected,
	}
	if selected {
		ov.Weight = selectedStrokeWeight
	}

	switch g := sh.Geometry.(type) {
	case geo.Point:
		ov.Kind = OverlayMarker
		ov.Points = []geo.Point{g}
	case geo.Ring:
		ov.Kind = OverlayPolygon
		ov.Points = g
		ov.FillOpacity = fillOpacity
		if selected {
			ov.FillOpacity = selectedFillOpacity
		}
	default:
		return Overlay{}, fmt.Errorf("shape %s: unknown geometry type %T", sh.ID, sh.Geometry)
	}

	return ov, nil
}

// Select marks the shape with the given ID as selected and returns its
// derived center: the point itself for markers, the vertex mean for area
// shapes. The center is also recorded on the store as the property's
// canonical coordinate. Selecting an unknown ID clears the selection.
func (r *Renderer) Select(id string) (geo.Point, bool) {
	for _, sh := range r.store.All() {
		if sh.ID != id {
			continue
		}
		center, err := geo.Center(sh.Geometry)
		if err != nil {
			return geo.Point{}, false
		}
		r.selectedID = id
		r.store.SetCenter(center)
		return center, true
	}

	r.selectedID = ""
	return geo.Point{}, false
}

// SelectedID returns the currently selected shape ID, if any.
func (r *Renderer) SelectedID() string {
	return r.selectedID
}
