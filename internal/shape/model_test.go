package shape

import (
	"encoding/json"
	"testing"

	"github.com/mkessler/plotmark/internal/geo"
)

func TestNewAssignsUniqueIDs(t *testing.T) {
	a := New(KindMarker, CategoryVilla, geo.Point{Lat: 1, Lng: 2}, "")
	b := New(KindMarker, CategoryVilla, geo.Point{Lat: 1, Lng: 2}, "")

	if a.ID == "" || b.ID == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a.ID == b.ID {
		t.Error("expected distinct IDs for distinct shapes")
	}
}

func TestCategoryColor(t *testing.T) {
	if CategoryResidential.Color() == CategoryCommercial.Color() {
		t.Error("expected distinct colors per category")
	}
	if Category("bogus").Color() != defaultColor {
		t.Errorf("unknown category color = %q, want default", Category("bogus").Color())
	}
}

func TestValidKind(t *testing.T) {
	for _, k := range []string{"marker", "polygon", "rectangle", "plot"} {
		if !ValidKind(k) {
			t.Errorf("ValidKind(%q) = false, want true", k)
		}
	}
	if ValidKind("circle") {
		t.Error("ValidKind(circle) = true, want false")
	}
}

func TestShapeJSONRoundTrip(t *testing.T) {
	orig := New(KindPolygon, CategoryPlot, geo.Ring{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 0, Lng: 0}}, "back lot")

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Shape
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.ID != orig.ID || got.Kind != orig.Kind || got.Category != orig.Category {
		t.Errorf("got %+v, want %+v", got, orig)
	}
	if got.Label != "back lot" {
		t.Errorf("label = %q, want %q", got.Label, "back lot")
	}
	ring, ok := got.Geometry.(geo.Ring)
	if !ok {
		t.Fatalf("geometry = %T, want Ring", got.Geometry)
	}
	if len(ring) != 4 {
		t.Errorf("ring length = %d, want 4", len(ring))
	}
}
