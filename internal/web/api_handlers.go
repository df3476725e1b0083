package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mkessler/plotmark/internal/geo"
	"github.com/mkessler/plotmark/internal/places"
	"github.com/mkessler/plotmark/internal/property"
	"github.com/mkessler/plotmark/internal/shape"
)

// defaultNearbyRadius is used when the radius query param is absent.
const defaultNearbyRadius = 1000

// handleProperties routes /api/properties requests.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/properties")
	path = strings.TrimPrefix(path, "/")

	// /api/properties — list or add
	if path == "" {
		switch r.Method {
		case http.MethodGet:
			s.apiListProperties(w, r)
		case http.MethodPost:
			s.apiAddProperty(w, r)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/properties/{id}/shapes
	if strings.HasSuffix(path, "/shapes") {
		idStr := strings.TrimSuffix(path, "/shapes")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			apiError(w, "invalid property ID", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			s.apiGetShapes(w, id)
		case http.MethodPut:
			s.apiPutShapes(w, r, id)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/properties/{id}/nearby
	if strings.HasSuffix(path, "/nearby") {
		idStr := strings.TrimSuffix(path, "/nearby")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			apiError(w, "invalid property ID", http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.apiNearby(w, r, id)
		return
	}

	// /api/properties/{id} — show or remove
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		apiError(w, "invalid property ID", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.apiGetProperty(w, id)
	case http.MethodDelete:
		s.apiDeleteProperty(w, id)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// apiListProperties returns properties as JSON, optionally filtered.
func (s *Server) apiListProperties(w http.ResponseWriter, r *http.Request) {
	opts := property.ListOptions{
		PropertyType: r.URL.Query().Get("type"),
		Location:     r.URL.Query().Get("location"),
	}

	if minStr := r.URL.Query().Get("min_price"); minStr != "" {
		min, err := strconv.ParseFloat(minStr, 64)
		if err != nil {
			apiError(w, "min_price must be numeric", http.StatusBadRequest)
			return
		}
		opts.MinPrice = &min
	}
	if maxStr := r.URL.Query().Get("max_price"); maxStr != "" {
		max, err := strconv.ParseFloat(maxStr, 64)
		if err != nil {
			apiError(w, "max_price must be numeric", http.StatusBadRequest)
			return
		}
		opts.MaxPrice = &max
	}
	if featuredStr := r.URL.Query().Get("featured"); featuredStr != "" {
		switch featuredStr {
		case "true":
			v := true
			opts.Featured = &v
		case "false":
			v := false
			opts.Featured = &v
		default:
			apiError(w, "featured must be true or false", http.StatusBadRequest)
			return
		}
	}

	props, err := s.propRepo.List(opts)
	if err != nil {
		apiError(w, fmt.Sprintf("listing properties: %v", err), http.StatusInternalServerError)
		return
	}
	if props == nil {
		props = []*property.Property{}
	}

	apiJSON(w, props, http.StatusOK)
}

// apiAddProperty creates a property from a JSON body.
func (s *Server) apiAddProperty(w http.ResponseWriter, r *http.Request) {
	var p property.Property
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	saved, err := s.propRepo.Insert(&p)
	if err != nil {
		if strings.Contains(err.Error(), "validating") {
			apiError(w, err.Error(), http.StatusBadRequest)
			return
		}
		apiError(w, fmt.Sprintf("adding property: %v", err), http.StatusInternalServerError)
		return
	}

	apiJSON(w, saved, http.StatusCreated)
}

// apiGetProperty returns one property with its stored shapes.
func (s *Server) apiGetProperty(w http.ResponseWriter, id int64) {
	p, err := s.propRepo.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}

	shapes, err := s.shapeRepo.ListByProperty(id)
	if err != nil {
		apiError(w, fmt.Sprintf("listing shapes: %v", err), http.StatusInternalServerError)
		return
	}
	if shapes == nil {
		shapes = []shape.Shape{}
	}

	apiJSON(w, map[string]interface{}{
		"property": p,
		"shapes":   shapes,
	}, http.StatusOK)
}

// apiDeleteProperty removes a property; its shapes cascade.
func (s *Server) apiDeleteProperty(w http.ResponseWriter, id int64) {
	if err := s.propRepo.Delete(id); err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}
	apiJSON(w, map[string]string{"status": "deleted"}, http.StatusOK)
}

// apiGetShapes returns a property's stored shape set.
func (s *Server) apiGetShapes(w http.ResponseWriter, id int64) {
	if _, err := s.propRepo.GetByID(id); err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}

	shapes, err := s.shapeRepo.ListByProperty(id)
	if err != nil {
		apiError(w, fmt.Sprintf("listing shapes: %v", err), http.StatusInternalServerError)
		return
	}
	if shapes == nil {
		shapes = []shape.Shape{}
	}

	apiJSON(w, map[string]interface{}{"shapes": shapes}, http.StatusOK)
}

// shapeSubmission is the form-submit payload: the full shape set plus the
// derived center coordinate, when one was selected.
type shapeSubmission struct {
	Shapes []shape.Shape `json:"shapes"`
	Center *geo.Point    `json:"center,omitempty"`
}

// apiPutShapes replaces a property's shape set and, when a derived center is
// provided, updates the property's canonical coordinate.
func (s *Server) apiPutShapes(w http.ResponseWriter, r *http.Request, id int64) {
	if _, err := s.propRepo.GetByID(id); err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}

	var sub shapeSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	for _, sh := range sub.Shapes {
		if !shape.ValidKind(string(sh.Kind)) {
			apiError(w, fmt.Sprintf("unknown shape kind %q", sh.Kind), http.StatusBadRequest)
			return
		}
	}

	if err := s.shapeRepo.ReplaceForProperty(id, sub.Shapes); err != nil {
		apiError(w, fmt.Sprintf("saving shapes: %v", err), http.StatusInternalServerError)
		return
	}

	if sub.Center != nil {
		if err := s.propRepo.UpdateCoordinates(id, sub.Center.Lat, sub.Center.Lng); err != nil {
			apiError(w, fmt.Sprintf("updating coordinates: %v", err), http.StatusInternalServerError)
			return
		}
	}

	apiJSON(w, map[string]int{"saved": len(sub.Shapes)}, http.StatusOK)
}

// apiNearby returns distance-annotated places around a property. Provider
// failures surface as an empty list, same as no results.
func (s *Server) apiNearby(w http.ResponseWriter, r *http.Request, id int64) {
	p, err := s.propRepo.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		apiError(w, "category is required", http.StatusBadRequest)
		return
	}

	radius := defaultNearbyRadius
	if radiusStr := r.URL.Query().Get("radius"); radiusStr != "" {
		radius, err = strconv.Atoi(radiusStr)
		if err != nil || radius <= 0 {
			apiError(w, "radius must be a positive integer", http.StatusBadRequest)
			return
		}
	}

	result := []places.Place{}
	if s.resolver != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		ref := geo.Point{Lat: p.Latitude, Lng: p.Longitude}
		if found, ok := s.resolver.Resolve(ctx, ref, category, radius); ok {
			result = found
		}
	}

	apiJSON(w, map[string]interface{}{"places": result}, http.StatusOK)
}
