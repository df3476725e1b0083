package places

import (
	"context"
	"fmt"
	"testing"

	"github.com/mkessler/plotmark/internal/geo"
)

// fakeSearch is a SearchClient returning canned candidates or an error.
type fakeSearch struct {
	candidates []Candidate
	err        error
}

func (f *fakeSearch) Nearby(_ context.Context, _ geo.Point, _ string, _ int) ([]Candidate, error) {
	return f.candidates, f.err
}

// fakeDistance is a DistanceClient with per-place distances and failures.
type fakeDistance struct {
	distances map[string]float64 // keyed by "lat,lng" of destination
	err       error
}

func key(p geo.Point) string {
	return fmt.Sprintf("%.4f,%.4f", p.Lat, p.Lng)
}

func (f *fakeDistance) RoadDistance(_ context.Context, _, to geo.Point) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	d, ok := f.distances[key(to)]
	if !ok {
		return 0, fmt.Errorf("no route to %v", to)
	}
	return d, nil
}

var ref = geo.Point{Lat: 26.85, Lng: 80.95}

func TestResolveEmptyProviderResult(t *testing.T) {
	r := NewResolver(&fakeSearch{}, nil)

	places, ok := r.Resolve(context.Background(), ref, "school", 1000)
	if !ok {
		t.Fatal("expected ok result")
	}
	if len(places) != 0 {
		t.Errorf("places = %d, want 0", len(places))
	}
}

func TestResolveProviderFailureDegradesToEmpty(t *testing.T) {
	r := NewResolver(&fakeSearch{err: fmt.Errorf("quota exceeded")}, nil)

	places, ok := r.Resolve(context.Background(), ref, "school", 1000)
	if !ok {
		t.Fatal("expected ok result even on provider failure")
	}
	if len(places) != 0 {
		t.Errorf("places = %d, want 0 (silent degradation)", len(places))
	}
}

func TestResolveDedupesByPlaceID(t *testing.T) {
	search := &fakeSearch{candidates: []Candidate{
		{PlaceID: "a", Name: "First A", Location: geo.Point{Lat: 26.86, Lng: 80.96}},
		{PlaceID: "a", Name: "Duplicate A", Location: geo.Point{Lat: 26.87, Lng: 80.97}},
		{PlaceID: "b", Name: "B", Location: geo.Point{Lat: 26.88, Lng: 80.98}},
	}}
	r := NewResolver(search, nil)

	places, ok := r.Resolve(context.Background(), ref, "hospital", 1000)
	if !ok {
		t.Fatal("expected ok result")
	}
	if len(places) != 2 {
		t.Fatalf("places = %d, want 2", len(places))
	}
	for _, p := range places {
		if p.Name == "Duplicate A" {
			t.Error("duplicate place ID survived dedupe")
		}
	}
}

func TestResolveSortsByDistance(t *testing.T) {
	far := geo.Point{Lat: 26.95, Lng: 81.05}
	near := geo.Point{Lat: 26.851, Lng: 80.951}

	search := &fakeSearch{candidates: []Candidate{
		{PlaceID: "far", Name: "Far", Location: far, Reviews: 500, Rating: 4.9},
		{PlaceID: "near", Name: "Near", Location: near, Reviews: 2, Rating: 3.0},
	}}
	r := NewResolver(search, nil)

	places, ok := r.Resolve(context.Background(), ref, "school", 1000)
	if !ok {
		t.Fatal("expected ok result")
	}
	if len(places) != 2 {
		t.Fatalf("places = %d, want 2", len(places))
	}
	if places[0].PlaceID != "near" {
		t.Errorf("first place = %q, want near (distance sort wins over popularity)", places[0].PlaceID)
	}
}

func TestResolveRoadDistanceWithFallback(t *testing.T) {
	routed := geo.Point{Lat: 26.86, Lng: 80.96}
	unrouted := geo.Point{Lat: 26.87, Lng: 80.97}

	search := &fakeSearch{candidates: []Candidate{
		{PlaceID: "routed", Location: routed},
		{PlaceID: "unrouted", Location: unrouted},
	}}
	dist := &fakeDistance{distances: map[string]float64{key(routed): 2500}}
	r := NewResolver(search, dist)

	places, ok := r.Resolve(context.Background(), ref, "school", 1000)
	if !ok {
		t.Fatal("expected ok result")
	}

	byID := make(map[string]Place, len(places))
	for _, p := range places {
		byID[p.PlaceID] = p
	}

	if p := byID["routed"]; !p.RoadDistance || p.DistanceMeters != 2500 {
		t.Errorf("routed place = %+v, want road distance 2500", p)
	}
	if p := byID["unrouted"]; p.RoadDistance {
		t.Errorf("unrouted place = %+v, want Haversine fallback", p)
	}
	want := geo.Distance(ref, unrouted)
	if p := byID["unrouted"]; p.DistanceMeters != want {
		t.Errorf("fallback distance = %f, want %f", p.DistanceMeters, want)
	}
}

func TestResolveCapsByRadius(t *testing.T) {
	var candidates []Candidate
	for i := 0; i < 20; i++ {
		candidates = append(candidates, Candidate{
			PlaceID:  fmt.Sprintf("p%d", i),
			Location: geo.Point{Lat: 26.85 + float64(i)*0.001, Lng: 80.95},
		})
	}
	r := NewResolver(&fakeSearch{candidates: candidates}, nil)

	small, ok := r.Resolve(context.Background(), ref, "school", 1500)
	if !ok {
		t.Fatal("expected ok result")
	}
	if len(small) != smallRadiusCap {
		t.Errorf("small radius places = %d, want %d", len(small), smallRadiusCap)
	}

	large, ok := r.Resolve(context.Background(), ref, "school", 5000)
	if !ok {
		t.Fatal("expected ok result")
	}
	if len(large) != largeRadiusCap {
		t.Errorf("large radius places = %d, want %d", len(large), largeRadiusCap)
	}
}

// supersedingSearch bumps the resolver generation mid-query to simulate the
// user switching properties while a lookup is in flight.
type supersedingSearch struct {
	resolver **Resolver
	fired    bool
}

func (s *supersedingSearch) Nearby(_ context.Context, _ geo.Point, _ string, _ int) ([]Candidate, error) {
	if !s.fired {
		s.fired = true
		(*s.resolver).gen.Add(1)
	}
	return []Candidate{{PlaceID: "x", Location: geo.Point{Lat: 26.86, Lng: 80.96}}}, nil
}

func TestResolveDiscardsSupersededResult(t *testing.T) {
	search := &supersedingSearch{}
	r := NewResolver(search, nil)
	search.resolver = &r

	places, ok := r.Resolve(context.Background(), ref, "school", 1000)
	if ok {
		t.Fatal("expected superseded result to be discarded")
	}
	if places != nil {
		t.Errorf("places = %v, want nil", places)
	}
}
