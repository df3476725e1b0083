// Package geo provides the coordinate and geometry types shared by the
// drawing, rendering, and places packages.
package geo

import (
	"fmt"
	"math"
)

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Ring is an ordered sequence of points describing an area shape.
// A finalized ring is closed: the first point is repeated as the last.
type Ring []Point

// Geometry is either a Point (marker) or a Ring (polygon, rectangle, plot).
// The interface is sealed so render and export code can type-switch
// exhaustively.
type Geometry interface {
	sealed()
}

func (Point) sealed() {}
func (Ring) sealed()  {}

// Closed reports whether the ring's first point equals its last.
func (r Ring) Closed() bool {
	return len(r) >= 2 && r[0] == r[len(r)-1]
}

// Vertices returns the ring's points without the duplicated closing vertex.
func (r Ring) Vertices() []Point {
	if r.Closed() {
		return r[:len(r)-1]
	}
	return r
}

// CloseRing returns a closed ring built from pts, appending the first point
// if the sequence is not already closed.
func CloseRing(pts []Point) Ring {
	ring := make(Ring, len(pts))
	copy(ring, pts)
	if !ring.Closed() && len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return ring
}

// RectangleRing expands two corner clicks into a closed axis-aligned
// rectangle: (p1.lat,p1.lng), (p1.lat,p2.lng), (p2.lat,p2.lng),
// (p2.lat,p1.lng), closed back to the first corner.
func RectangleRing(p1, p2 Point) Ring {
	return Ring{
		{Lat: p1.Lat, Lng: p1.Lng},
		{Lat: p1.Lat, Lng: p2.Lng},
		{Lat: p2.Lat, Lng: p2.Lng},
		{Lat: p2.Lat, Lng: p1.Lng},
		{Lat: p1.Lat, Lng: p1.Lng},
	}
}

// Center returns the canonical coordinate of a geometry: the point itself
// for markers, the arithmetic mean of the vertices (closing vertex excluded)
// for rings.
func Center(g Geometry) (Point, error) {
	switch v := g.(type) {
	case Point:
		return v, nil
	case Ring:
		verts := v.Vertices()
		if len(verts) == 0 {
			return Point{}, fmt.Errorf("empty ring has no center")
		}
		var lat, lng float64
		for _, p := range verts {
			lat += p.Lat
			lng += p.Lng
		}
		n := float64(len(verts))
		return Point{Lat: lat / n, Lng: lng / n}, nil
	default:
		return Point{}, fmt.Errorf("unknown geometry type %T", g)
	}
}

// earthRadiusMeters is the mean Earth radius used for Haversine distance.
const earthRadiusMeters = 6371000.0

// Distance returns the great-circle (Haversine) distance between two points
// in meters.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistinctCount returns the number of distinct points in pts.
func DistinctCount(pts []Point) int {
	seen := make(map[Point]struct{}, len(pts))
	for _, p := range pts {
		seen[p] = struct{}{}
	}
	return len(seen)
}
