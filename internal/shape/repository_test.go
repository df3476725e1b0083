package shape

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mkessler/plotmark/internal/db"
	"github.com/mkessler/plotmark/internal/geo"
)

// testRepo creates a shape repository and a parent property row.
func testRepo(t *testing.T) (*Repository, int64) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "plotmark.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("close test db: %v", err)
		}
	})

	propID := insertTestProperty(t, database)
	return NewRepository(database), propID
}

func insertTestProperty(t *testing.T, database *sql.DB) int64 {
	t.Helper()
	res, err := database.Exec(
		`INSERT INTO properties (title, description, price, property_type, location, address, area, latitude, longitude)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"Green Acres", "test", 4500000, "plot", "Lucknow", "NH-27", 1200, 26.85, 80.95,
	)
	if err != nil {
		t.Fatalf("insert property: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}
	return id
}

func TestReplaceAndListShapes(t *testing.T) {
	repo, propID := testRepo(t)

	shapes := []Shape{
		New(KindMarker, CategoryVilla, geo.Point{Lat: 26.85, Lng: 80.95}, "gate"),
		New(KindPlot, CategoryPlot, geo.Ring{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 0, Lng: 0}}, ""),
	}

	if err := repo.ReplaceForProperty(propID, shapes); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := repo.ListByProperty(propID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != shapes[0].ID || got[1].ID != shapes[1].ID {
		t.Error("shapes not in insertion order")
	}
	if got[0].Label != "gate" {
		t.Errorf("label = %q, want gate", got[0].Label)
	}

	ring, ok := got[1].Geometry.(geo.Ring)
	if !ok {
		t.Fatalf("geometry = %T, want Ring", got[1].Geometry)
	}
	if len(ring) != 4 || !ring.Closed() {
		t.Errorf("ring = %v, want closed 4-point ring", ring)
	}
}

func TestReplaceOverwritesPreviousSet(t *testing.T) {
	repo, propID := testRepo(t)

	first := []Shape{New(KindMarker, CategoryShop, geo.Point{Lat: 1, Lng: 1}, "")}
	if err := repo.ReplaceForProperty(propID, first); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	second := []Shape{
		New(KindMarker, CategoryShop, geo.Point{Lat: 2, Lng: 2}, ""),
		New(KindMarker, CategoryShop, geo.Point{Lat: 3, Lng: 3}, ""),
	}
	if err := repo.ReplaceForProperty(propID, second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	got, err := repo.ListByProperty(propID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (old set replaced)", len(got))
	}
	for _, sh := range got {
		if sh.ID == first[0].ID {
			t.Error("old shape survived replace")
		}
	}
}

func TestReplaceWithEmptySetClears(t *testing.T) {
	repo, propID := testRepo(t)

	if err := repo.ReplaceForProperty(propID, []Shape{
		New(KindMarker, CategoryShop, geo.Point{Lat: 1, Lng: 1}, ""),
	}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if err := repo.ReplaceForProperty(propID, nil); err != nil {
		t.Fatalf("clear replace: %v", err)
	}

	got, err := repo.ListByProperty(propID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestRepositoryDeleteByID(t *testing.T) {
	repo, propID := testRepo(t)

	sh := New(KindMarker, CategoryShop, geo.Point{Lat: 1, Lng: 1}, "")
	if err := repo.ReplaceForProperty(propID, []Shape{sh}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if err := repo.DeleteByID(sh.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteByID(sh.ID); err == nil {
		t.Error("expected error deleting missing shape")
	}
}
