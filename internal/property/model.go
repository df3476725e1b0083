// Package property provides the listing domain model and data access.
package property

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Property represents a real-estate listing.
type Property struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	PropertyType string  `json:"property_type"`
	Location     string  `json:"location"`
	Address      string  `json:"address"`
	Area         float64 `json:"area"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`

	Builder        *string  `json:"builder,omitempty"`
	PossessionDate *string  `json:"possession_date,omitempty"`
	Bedrooms       *int64   `json:"bedrooms,omitempty"`
	Bathrooms      *int64   `json:"bathrooms,omitempty"`
	Floors         *int64   `json:"floors,omitempty"`
	PricePerSqFt   *float64 `json:"price_per_sqft,omitempty"`

	Amenities     []string `json:"amenities,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Images        []string `json:"images,omitempty"`
	FeaturedImage string   `json:"featured_image,omitempty"`
	IsFeatured    bool     `json:"is_featured"`
	IsVerified    bool     `json:"is_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the required listing fields.
func (p *Property) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if p.PropertyType == "" {
		return fmt.Errorf("propertyType is required")
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude %f out of range", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude %f out of range", p.Longitude)
	}
	return nil
}

// scanProperty scans a property from a database row.
func scanProperty(row interface{ Scan(...interface{}) error }) (*Property, error) {
	var p Property
	var builder, possessionDate sql.NullString
	var bedrooms, bathrooms, floors sql.NullInt64
	var pricePerSqFt sql.NullFloat64
	var amenities, tags, images string
	var isFeatured, isVerified int

	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.PropertyType,
		&p.Location, &p.Address, &p.Area, &p.Latitude, &p.Longitude,
		&builder, &possessionDate, &bedrooms, &bathrooms, &floors,
		&pricePerSqFt, &amenities, &tags, &images, &p.FeaturedImage,
		&isFeatured, &isVerified, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if builder.Valid {
		p.Builder = &builder.String
	}
	if possessionDate.Valid {
		p.PossessionDate = &possessionDate.String
	}
	if bedrooms.Valid {
		p.Bedrooms = &bedrooms.Int64
	}
	if bathrooms.Valid {
		p.Bathrooms = &bathrooms.Int64
	}
	if floors.Valid {
		p.Floors = &floors.Int64
	}
	if pricePerSqFt.Valid {
		p.PricePerSqFt = &pricePerSqFt.Float64
	}
	p.IsFeatured = isFeatured != 0
	p.IsVerified = isVerified != 0

	if err := decodeList(amenities, &p.Amenities); err != nil {
		return nil, fmt.Errorf("property %d amenities: %w", p.ID, err)
	}
	if err := decodeList(tags, &p.Tags); err != nil {
		return nil, fmt.Errorf("property %d tags: %w", p.ID, err)
	}
	if err := decodeList(images, &p.Images); err != nil {
		return nil, fmt.Errorf("property %d images: %w", p.ID, err)
	}

	return &p, nil
}

// decodeList decodes a JSON string array stored in a TEXT column.
func decodeList(data string, dst *[]string) error {
	if data == "" {
		return nil
	}
	return json.Unmarshal([]byte(data), dst)
}

// encodeList encodes a string slice for a TEXT column; nil becomes "[]".
func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encoding list: %w", err)
	}
	return string(data), nil
}
