package property

import (
	"database/sql"
	"fmt"
	"strings"
)

// Repository provides CRUD operations for properties.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a property repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const insertSQL = `INSERT INTO properties
	(title, description, price, property_type, location, address, area, latitude, longitude,
	 builder, possession_date, bedrooms, bathrooms, floors, price_per_sqft,
	 amenities, tags, images, featured_image, is_featured, is_verified)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectColumns = `id, title, description, price, property_type, location, address, area,
	latitude, longitude, builder, possession_date, bedrooms, bathrooms, floors, price_per_sqft,
	amenities, tags, images, featured_image, is_featured, is_verified, created_at, updated_at`

// Insert adds a new property and returns it with its generated ID.
func (r *Repository) Insert(p *Property) (*Property, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validating property: %w", err)
	}

	amenities, err := encodeList(p.Amenities)
	if err != nil {
		return nil, err
	}
	tags, err := encodeList(p.Tags)
	if err != nil {
		return nil, err
	}
	images, err := encodeList(p.Images)
	if err != nil {
		return nil, err
	}

	result, err := r.db.Exec(insertSQL,
		p.Title, p.Description, p.Price, p.PropertyType, p.Location, p.Address,
		p.Area, p.Latitude, p.Longitude,
		p.Builder, p.PossessionDate, p.Bedrooms, p.Bathrooms, p.Floors, p.PricePerSqFt,
		amenities, tags, images, p.FeaturedImage,
		boolToInt(p.IsFeatured), boolToInt(p.IsVerified),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting property: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a property by its ID.
func (r *Repository) GetByID(id int64) (*Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = ?", selectColumns)
	row := r.db.QueryRow(query, id)

	p, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("property %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying property %d: %w", id, err)
	}

	return p, nil
}

// ListOptions controls filtering for List.
type ListOptions struct {
	PropertyType string   // exact match; empty = all
	Location     string   // substring match; empty = all
	MinPrice     *float64
	MaxPrice     *float64
	Featured     *bool
}

// List returns all properties, optionally filtered.
func (r *Repository) List(opts ListOptions) ([]*Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties", selectColumns)
	var args []interface{}
	var conditions []string

	if opts.PropertyType != "" {
		conditions = append(conditions, "property_type = ?")
		args = append(args, opts.PropertyType)
	}

	if opts.Location != "" {
		conditions = append(conditions, "location LIKE ?")
		args = append(args, "%"+opts.Location+"%")
	}

	if opts.MinPrice != nil {
		conditions = append(conditions, "price >= ?")
		args = append(args, *opts.MinPrice)
	}

	if opts.MaxPrice != nil {
		conditions = append(conditions, "price <= ?")
		args = append(args, *opts.MaxPrice)
	}

	if opts.Featured != nil {
		conditions = append(conditions, "is_featured = ?")
		args = append(args, boolToInt(*opts.Featured))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY is_featured DESC, created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var properties []*Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties: %w", err)
	}

	return properties, nil
}

// UpdateCoordinates sets a property's canonical coordinate, typically the
// derived center of its selected shape.
func (r *Repository) UpdateCoordinates(id int64, lat, lng float64) error {
	result, err := r.db.Exec(
		"UPDATE properties SET latitude = ?, longitude = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		lat, lng, id,
	)
	if err != nil {
		return fmt.Errorf("updating coordinates: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("property %d not found", id)
	}

	return nil
}

// Delete removes a property by ID. Shapes cascade.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM properties WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("property %d not found", id)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
