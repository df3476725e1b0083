package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		title           TEXT    NOT NULL,
		description     TEXT    NOT NULL,
		price           REAL    NOT NULL,
		property_type   TEXT    NOT NULL,
		location        TEXT    NOT NULL,
		address         TEXT    NOT NULL,
		area            REAL    NOT NULL,
		latitude        REAL    NOT NULL,
		longitude       REAL    NOT NULL,
		builder         TEXT,
		possession_date TEXT,
		bedrooms        INTEGER,
		bathrooms       INTEGER,
		floors          INTEGER,
		price_per_sqft  REAL,
		amenities       TEXT    NOT NULL DEFAULT '[]',
		tags            TEXT    NOT NULL DEFAULT '[]',
		images          TEXT    NOT NULL DEFAULT '[]',
		featured_image  TEXT    NOT NULL DEFAULT '',
		is_featured     INTEGER NOT NULL DEFAULT 0,
		is_verified     INTEGER NOT NULL DEFAULT 0,
		created_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at      DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS shapes (
		id          TEXT    PRIMARY KEY,
		property_id INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		kind        TEXT    NOT NULL,
		category    TEXT    NOT NULL,
		label       TEXT,
		geometry    TEXT    NOT NULL,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shapes_property ON shapes(property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_type ON properties(property_type)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
