package geo

import (
	"encoding/json"
	"fmt"
)

// geometryEnvelope is the wire/storage form of a Geometry.
type geometryEnvelope struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// MarshalGeometry encodes a geometry as a tagged JSON envelope:
// {"type":"point","coordinates":{"lat":..,"lng":..}} or
// {"type":"ring","coordinates":[{"lat":..,"lng":..},...]}.
func MarshalGeometry(g Geometry) ([]byte, error) {
	switch v := g.(type) {
	case Point:
		coords, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding point: %w", err)
		}
		return json.Marshal(geometryEnvelope{Type: "point", Coordinates: coords})
	case Ring:
		coords, err := json.Marshal([]Point(v))
		if err != nil {
			return nil, fmt.Errorf("encoding ring: %w", err)
		}
		return json.Marshal(geometryEnvelope{Type: "ring", Coordinates: coords})
	default:
		return nil, fmt.Errorf("unknown geometry type %T", g)
	}
}

// UnmarshalGeometry decodes a geometry envelope produced by MarshalGeometry.
func UnmarshalGeometry(data []byte) (Geometry, error) {
	var env geometryEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding geometry envelope: %w", err)
	}

	switch env.Type {
	case "point":
		var p Point
		if err := json.Unmarshal(env.Coordinates, &p); err != nil {
			return nil, fmt.Errorf("decoding point coordinates: %w", err)
		}
		return p, nil
	case "ring":
		var pts []Point
		if err := json.Unmarshal(env.Coordinates, &pts); err != nil {
			return nil, fmt.Errorf("decoding ring coordinates: %w", err)
		}
		return Ring(pts), nil
	default:
		return nil, fmt.Errorf("unknown geometry type %q", env.Type)
	}
}
