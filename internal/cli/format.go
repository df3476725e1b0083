package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mkessler/plotmark/internal/geo"
	"github.com/mkessler/plotmark/internal/places"
	"github.com/mkessler/plotmark/internal/property"
	"github.com/mkessler/plotmark/internal/shape"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPropertySummary prints a single property summary in text format.
func printPropertySummary(p *property.Property) {
	fmt.Printf("Property #%d\n", p.ID)
	fmt.Printf("  Title:     %s\n", p.Title)
	fmt.Printf("  Type:      %s\n", p.PropertyType)
	fmt.Printf("  Location:  %s\n", p.Location)
	fmt.Printf("  Address:   %s\n", p.Address)
	fmt.Printf("  Price:     ₹%s\n", formatPrice(p.Price))
	fmt.Printf("  Area:      %g sq ft\n", p.Area)
	fmt.Printf("  Position:  %.6f, %.6f\n", p.Latitude, p.Longitude)
	if p.Builder != nil {
		fmt.Printf("  Builder:   %s\n", *p.Builder)
	}
	if p.Bedrooms != nil {
		fmt.Printf("  Beds:      %d\n", *p.Bedrooms)
	}
	if p.Bathrooms != nil {
		fmt.Printf("  Baths:     %d\n", *p.Bathrooms)
	}
	if p.PossessionDate != nil {
		fmt.Printf("  Possession: %s\n", *p.PossessionDate)
	}
	if len(p.Amenities) > 0 {
		fmt.Printf("  Amenities: %s\n", strings.Join(p.Amenities, ", "))
	}
	if p.IsFeatured {
		fmt.Println("  Featured:  yes")
	}
	if p.IsVerified {
		fmt.Println("  Verified:  yes")
	}
}

// printPropertyTable prints a list of properties as a formatted table.
func printPropertyTable(props []*property.Property) error {
	if len(props) == 0 {
		fmt.Println("No properties found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tTYPE\tLOCATION\tPRICE\tAREA"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t----\t--------\t-----\t----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range props {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t₹%s\t%g\n",
			p.ID, truncate(p.Title, 32), p.PropertyType,
			truncate(p.Location, 24), formatPrice(p.Price), p.Area); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d properties\n", len(props))
	return nil
}

// printShapes prints a property's shapes in text format.
func printShapes(shapes []shape.Shape) {
	if len(shapes) == 0 {
		fmt.Println("No shapes drawn.")
		return
	}

	for _, s := range shapes {
		label := s.Label
		if label == "" {
			label = "-"
		}
		id := s.ID
		if len(id) > 8 {
			id = id[:8]
		}
		vertices := 1
		if ring, ok := s.Geometry.(geo.Ring); ok {
			vertices = len(ring.Vertices())
		}
		fmt.Printf("[%s] %s/%s %s (%d vertices)\n",
			id, s.Kind, s.Category, label, vertices)
	}
}

// printPlaces prints nearby places in text format.
func printPlaces(found []places.Place) {
	if len(found) == 0 {
		fmt.Println("No places found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISTANCE\tRATING\tREVIEWS")
	for _, p := range found {
		mode := "straight-line"
		if p.RoadDistance {
			mode = "road"
		}
		fmt.Fprintf(w, "%s\t%.0f m (%s)\t%.1f\t%d\n",
			truncate(p.Name, 36), p.DistanceMeters, mode, p.Rating, p.Reviews)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: flushing table: %v\n", err)
	}
}

// formatPrice formats a rupee amount with thousands separators.
func formatPrice(amount float64) string {
	s := fmt.Sprintf("%.0f", amount)
	if len(s) <= 3 {
		return s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	return strings.Join(parts, ",")
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
