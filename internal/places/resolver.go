package places

import (
	"context"
	"log/slog"
	"sort"
	"sync/atomic"

	"github.com/mkessler/plotmark/internal/geo"
)

// Result caps: small radii show a short list, large radii a longer one.
const (
	smallRadiusMeters = 2000
	smallRadiusCap    = 5
	largeRadiusCap    = 10
)

// Place is a distance-annotated point of interest.
type Place struct {
	PlaceID        string    `json:"place_id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Location       geo.Point `json:"location"`
	Rating         float64   `json:"rating,omitempty"`
	Reviews        int       `json:"reviews,omitempty"`
	DistanceMeters float64   `json:"distance_meters"`
	RoadDistance   bool      `json:"road_distance"`
}

// Resolver finds, deduplicates, ranks, and distance-annotates nearby places.
// A total provider failure degrades to an empty list; callers cannot tell
// "no results" from "provider unavailable".
type Resolver struct {
	search   SearchClient
	distance DistanceClient
	gen      atomic.Uint64
}

// NewResolver creates a resolver. distance may be nil, in which case every
// place gets the straight-line fallback.
func NewResolver(search SearchClient, distance DistanceClient) *Resolver {
	return &Resolver{search: search, distance: distance}
}

// Resolve returns places of the given category within radiusMeters of ref,
// sorted by ascending distance and truncated to the radius cap.
//
// Each call takes a generation token; if another Resolve starts before this
// one finishes, the stale result is dropped and ok is false. This keeps
// rapid selection changes from applying out-of-order results.
func (r *Resolver) Resolve(ctx context.Context, ref geo.Point, category string, radiusMeters int) (places []Place, ok bool) {
	gen := r.gen.Add(1)

	candidates, err := r.search.Nearby(ctx, ref, category, radiusMeters)
	if err != nil {
		slog.Debug("nearby search failed", "category", category, "error", err)
		candidates = nil
	}

	candidates = dedupe(candidates)
	rankByPopularity(candidates)

	places = make([]Place, 0, len(candidates))
	for _, c := range candidates {
		places = append(places, r.annotate(ctx, ref, c))
	}

	sort.SliceStable(places, func(i, j int) bool {
		return places[i].DistanceMeters < places[j].DistanceMeters
	})

	limit := largeRadiusCap
	if radiusMeters <= smallRadiusMeters {
		limit = smallRadiusCap
	}
	if len(places) > limit {
		places = places[:limit]
	}

	if r.gen.Load() != gen {
		// A later query superseded this one; drop the stale result.
		return nil, false
	}
	return places, true
}

// annotate attaches a road distance, falling back to straight-line Haversine
// when the lookup fails for this candidate alone.
func (r *Resolver) annotate(ctx context.Context, ref geo.Point, c Candidate) Place {
	p := Place{
		PlaceID:  c.PlaceID,
		Name:     c.Name,
		Category: c.Category,
		Location: c.Location,
		Rating:   c.Rating,
		Reviews:  c.Reviews,
	}

	if r.distance != nil {
		if d, err := r.distance.RoadDistance(ctx, ref, c.Location); err == nil {
			p.DistanceMeters = d
			p.RoadDistance = true
			return p
		} else {
			slog.Debug("road distance lookup failed", "place", c.PlaceID, "error", err)
		}
	}

	p.DistanceMeters = geo.Distance(ref, c.Location)
	return p
}

// dedupe drops candidates sharing a provider place ID, keeping the first.
func dedupe(candidates []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if _, dup := seen[c.PlaceID]; dup {
			continue
		}
		seen[c.PlaceID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// rankByPopularity sorts by review count descending, then rating descending.
func rankByPopularity(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Reviews != candidates[j].Reviews {
			return candidates[i].Reviews > candidates[j].Reviews
		}
		return candidates[i].Rating > candidates[j].Rating
	})
}
