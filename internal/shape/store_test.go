package shape

import (
	"testing"

	"github.com/mkessler/plotmark/internal/geo"
)

func markerShape(lat, lng float64) Shape {
	return New(KindMarker, CategoryResidential, geo.Point{Lat: lat, Lng: lng}, "")
}

func TestStoreAddPreservesOrder(t *testing.T) {
	store := NewStore()

	first := markerShape(1, 1)
	second := markerShape(2, 2)
	store.Add(first)
	store.Add(second)

	all := store.All()
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].ID != first.ID || all[1].ID != second.ID {
		t.Error("shapes not in insertion order")
	}
}

func TestStoreDeleteByID(t *testing.T) {
	store := NewStore()
	sh := markerShape(1, 1)
	store.Add(sh)
	store.Add(markerShape(2, 2))

	store.DeleteByID(sh.ID)

	if store.Len() != 1 {
		t.Fatalf("len = %d, want 1", store.Len())
	}
	if store.All()[0].ID == sh.ID {
		t.Error("deleted shape still present")
	}
}

func TestStoreDeleteUnknownIDIsNoop(t *testing.T) {
	store := NewStore()
	store.Add(markerShape(1, 1))

	notified := false
	store.SetObserver(func([]Shape) { notified = true })

	store.DeleteByID("no-such-id")

	if store.Len() != 1 {
		t.Errorf("len = %d, want 1", store.Len())
	}
	if notified {
		t.Error("observer notified for no-op delete")
	}
}

func TestStoreClearResetsCenter(t *testing.T) {
	store := NewStore()
	store.Add(markerShape(1, 1))
	store.SetCenter(geo.Point{Lat: 1, Lng: 1})

	store.Clear()

	if store.Len() != 0 {
		t.Errorf("len = %d, want 0", store.Len())
	}
	if _, ok := store.Center(); ok {
		t.Error("center survived clear")
	}
}

func TestStoreObserverReceivesFullList(t *testing.T) {
	store := NewStore()

	var lastSeen []Shape
	store.SetObserver(func(shapes []Shape) { lastSeen = shapes })

	store.Add(markerShape(1, 1))
	store.Add(markerShape(2, 2))

	if len(lastSeen) != 2 {
		t.Fatalf("observer saw %d shapes, want 2", len(lastSeen))
	}

	store.Clear()
	if len(lastSeen) != 0 {
		t.Errorf("observer saw %d shapes after clear, want 0", len(lastSeen))
	}
}

func TestStoreAllReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Add(markerShape(1, 1))

	all := store.All()
	all[0].Label = "mutated"

	if store.All()[0].Label == "mutated" {
		t.Error("All returned a view into internal state")
	}
}
