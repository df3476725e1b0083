// Package shape provides the drawn-annotation model and its in-memory and
// SQLite stores.
package shape

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkessler/plotmark/internal/geo"
)

// Kind identifies how a shape was drawn.
type Kind string

const (
	KindMarker    Kind = "marker"
	KindPolygon   Kind = "polygon"
	KindRectangle Kind = "rectangle"
	KindPlot      Kind = "plot"
)

// ValidKind returns true if k is a known shape kind.
func ValidKind(k string) bool {
	switch Kind(k) {
	case KindMarker, KindPolygon, KindRectangle, KindPlot:
		return true
	}
	return false
}

// Area reports whether the kind encloses an area (everything but marker).
func (k Kind) Area() bool {
	return k != KindMarker
}

// Category is the property category a shape annotates.
type Category string

const (
	CategoryResidential Category = "residential"
	CategoryCommercial  Category = "commercial"
	CategoryPlot        Category = "plot"
	CategoryVilla       Category = "villa"
	CategoryApartment   Category = "apartment"
	CategoryShop        Category = "shop"
)

// categoryColors is the fixed category→display-color mapping.
var categoryColors = map[Category]string{
	CategoryResidential: "#2563eb",
	CategoryCommercial:  "#dc2626",
	CategoryPlot:        "#16a34a",
	CategoryVilla:       "#9333ea",
	CategoryApartment:   "#ea580c",
	CategoryShop:        "#ca8a04",
}

// defaultColor is used for unknown categories.
const defaultColor = "#6b7280"

// ValidCategory returns true if c is a known category.
func ValidCategory(c string) bool {
	_, ok := categoryColors[Category(c)]
	return ok
}

// Color returns the display color for the category.
func (c Category) Color() string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return defaultColor
}

// Shape is a finalized user-drawn property annotation.
type Shape struct {
	ID        string       `json:"id"`
	Kind      Kind         `json:"kind"`
	Category  Category     `json:"category"`
	Geometry  geo.Geometry `json:"-"`
	Label     string       `json:"label,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// New creates a shape with a fresh ID and creation timestamp.
func New(kind Kind, category Category, geom geo.Geometry, label string) Shape {
	return Shape{
		ID:        uuid.NewString(),
		Kind:      kind,
		Category:  category,
		Geometry:  geom,
		Label:     label,
		CreatedAt: time.Now().UTC(),
	}
}

// shapeJSON is the wire form of a Shape with geometry encoded as an envelope.
type shapeJSON struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"kind"`
	Category  Category        `json:"category"`
	Geometry  json.RawMessage `json:"geometry"`
	Label     string          `json:"label,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// MarshalJSON encodes the shape with its tagged geometry envelope.
func (s Shape) MarshalJSON() ([]byte, error) {
	geom, err := geo.MarshalGeometry(s.Geometry)
	if err != nil {
		return nil, fmt.Errorf("shape %s: %w", s.ID, err)
	}
	return json.Marshal(shapeJSON{
		ID:        s.ID,
		Kind:      s.Kind,
		Category:  s.Category,
		Geometry:  geom,
		Label:     s.Label,
		CreatedAt: s.CreatedAt,
	})
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON.
func (s *Shape) UnmarshalJSON(data []byte) error {
	var w shapeJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decoding shape: %w", err)
	}

	geom, err := geo.UnmarshalGeometry(w.Geometry)
	if err != nil {
		return fmt.Errorf("decoding shape %s geometry: %w", w.ID, err)
	}

	s.ID = w.ID
	s.Kind = w.Kind
	s.Category = w.Category
	s.Geometry = geom
	s.Label = w.Label
	s.CreatedAt = w.CreatedAt
	return nil
}
