package shape

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mkessler/plotmark/internal/geo"
)

// Repository persists submitted shape sets per property.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a shape repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectShapeColumns = `id, property_id, kind, category, label, geometry, created_at`

// ReplaceForProperty replaces the stored shape set for a property with the
// given list in one transaction. This is the submit path: the form posts the
// full store contents, not a delta.
func (r *Repository) ReplaceForProperty(propertyID int64, shapes []Shape) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				err = fmt.Errorf("%w (also failed to rollback: %v)", err, rbErr)
			}
		}
	}()

	if _, err = tx.Exec("DELETE FROM shapes WHERE property_id = ?", propertyID); err != nil {
		return fmt.Errorf("clearing shapes for property %d: %w", propertyID, err)
	}

	for _, sh := range shapes {
		geom, mErr := geo.MarshalGeometry(sh.Geometry)
		if mErr != nil {
			err = fmt.Errorf("encoding shape %s: %w", sh.ID, mErr)
			return err
		}
		_, err = tx.Exec(
			`INSERT INTO shapes (id, property_id, kind, category, label, geometry, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sh.ID, propertyID, string(sh.Kind), string(sh.Category),
			sh.Label, string(geom), sh.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting shape %s: %w", sh.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing shapes for property %d: %w", propertyID, err)
	}
	return nil
}

// ListByProperty returns a property's stored shapes in insertion order.
func (r *Repository) ListByProperty(propertyID int64) ([]Shape, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM shapes WHERE property_id = ? ORDER BY rowid", selectShapeColumns)
	rows, err := r.db.Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("listing shapes for property %d: %w", propertyID, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var shapes []Shape
	for rows.Next() {
		sh, err := scanShape(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning shape: %w", err)
		}
		shapes = append(shapes, sh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shapes: %w", err)
	}

	return shapes, nil
}

// DeleteByID removes a single stored shape.
func (r *Repository) DeleteByID(id string) error {
	result, err := r.db.Exec("DELETE FROM shapes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting shape: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("shape %s not found", id)
	}

	return nil
}

// scanShape scans a shape from a database row.
func scanShape(row interface{ Scan(...interface{}) error }) (Shape, error) {
	var sh Shape
	var propertyID int64
	var kind, category, geom string
	var label sql.NullString
	var createdAt time.Time

	if err := row.Scan(&sh.ID, &propertyID, &kind, &category, &label, &geom, &createdAt); err != nil {
		return Shape{}, err
	}

	g, err := geo.UnmarshalGeometry([]byte(geom))
	if err != nil {
		return Shape{}, fmt.Errorf("shape %s: %w", sh.ID, err)
	}

	sh.Kind = Kind(kind)
	sh.Category = Category(category)
	sh.Geometry = g
	if label.Valid {
		sh.Label = label.String
	}
	sh.CreatedAt = createdAt
	return sh, nil
}
