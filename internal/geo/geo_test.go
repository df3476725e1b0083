package geo

import (
	"math"
	"testing"
)

func TestRectangleRing(t *testing.T) {
	p1 := Point{Lat: 26.85, Lng: 80.95}
	p2 := Point{Lat: 26.90, Lng: 81.00}

	ring := RectangleRing(p1, p2)

	if len(ring) != 5 {
		t.Fatalf("ring length = %d, want 5", len(ring))
	}
	if !ring.Closed() {
		t.Error("expected closed ring")
	}

	want := []Point{
		{26.85, 80.95},
		{26.85, 81.00},
		{26.90, 81.00},
		{26.90, 80.95},
		{26.85, 80.95},
	}
	for i, p := range want {
		if ring[i] != p {
			t.Errorf("corner %d = %v, want %v", i, ring[i], p)
		}
	}
}

func TestCloseRing(t *testing.T) {
	pts := []Point{{1, 1}, {1, 2}, {2, 2}}
	ring := CloseRing(pts)

	if len(ring) != 4 {
		t.Fatalf("ring length = %d, want 4", len(ring))
	}
	if ring[0] != ring[3] {
		t.Error("expected first point repeated as last")
	}
}

func TestCloseRingAlreadyClosed(t *testing.T) {
	pts := []Point{{1, 1}, {1, 2}, {2, 2}, {1, 1}}
	ring := CloseRing(pts)

	if len(ring) != 4 {
		t.Errorf("ring length = %d, want 4 (no double close)", len(ring))
	}
}

func TestCenterPoint(t *testing.T) {
	p := Point{Lat: 26.85, Lng: 80.95}

	got, err := Center(p)
	if err != nil {
		t.Fatalf("center: %v", err)
	}
	if got != p {
		t.Errorf("center = %v, want %v", got, p)
	}
}

func TestCenterRingExcludesClosingVertex(t *testing.T) {
	// Closed triangle: the duplicated first vertex must not skew the mean.
	ring := Ring{{0, 0}, {0, 3}, {3, 0}, {0, 0}}

	got, err := Center(ring)
	if err != nil {
		t.Fatalf("center: %v", err)
	}
	if got.Lat != 1 || got.Lng != 1 {
		t.Errorf("center = %v, want (1,1)", got)
	}
}

func TestCenterEmptyRing(t *testing.T) {
	if _, err := Center(Ring{}); err == nil {
		t.Fatal("expected error for empty ring")
	}
}

func TestDistance(t *testing.T) {
	// Lucknow to Kanpur is roughly 72-80 km straight line.
	lucknow := Point{Lat: 26.8467, Lng: 80.9462}
	kanpur := Point{Lat: 26.4499, Lng: 80.3319}

	d := Distance(lucknow, kanpur)
	if d < 70000 || d > 85000 {
		t.Errorf("distance = %.0f m, want roughly 75 km", d)
	}
}

func TestDistanceZero(t *testing.T) {
	p := Point{Lat: 26.85, Lng: 80.95}
	if d := Distance(p, p); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Point{Lat: 12.97, Lng: 77.59}
	b := Point{Lat: 13.08, Lng: 80.27}

	d1 := Distance(a, b)
	d2 := Distance(b, a)
	if math.Abs(d1-d2) > 1e-6 {
		t.Errorf("distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestDistinctCount(t *testing.T) {
	pts := []Point{{1, 1}, {1, 2}, {1, 1}, {2, 2}}
	if got := DistinctCount(pts); got != 3 {
		t.Errorf("distinct count = %d, want 3", got)
	}
}

func TestGeometryRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		geom Geometry
	}{
		{"point", Point{Lat: 26.85, Lng: 80.95}},
		{"ring", Ring{{0, 0}, {0, 1}, {1, 1}, {0, 0}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := MarshalGeometry(tc.geom)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}

			got, err := UnmarshalGeometry(data)
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			switch want := tc.geom.(type) {
			case Point:
				if got != want {
					t.Errorf("got %v, want %v", got, want)
				}
			case Ring:
				ring, ok := got.(Ring)
				if !ok {
					t.Fatalf("got %T, want Ring", got)
				}
				if len(ring) != len(want) {
					t.Fatalf("ring length = %d, want %d", len(ring), len(want))
				}
				for i := range want {
					if ring[i] != want[i] {
						t.Errorf("point %d = %v, want %v", i, ring[i], want[i])
					}
				}
			}
		})
	}
}

func TestUnmarshalGeometryUnknownType(t *testing.T) {
	if _, err := UnmarshalGeometry([]byte(`{"type":"circle","coordinates":{}}`)); err == nil {
		t.Fatal("expected error for unknown geometry type")
	}
}
