package venues

import (
	"testing"

	"examsched/pkg/model"
)

func TestNewCatalogPreservesOrder(t *testing.T) {
	catalog := NewCatalog([]model.Venue{
		{Name: "Great Hall", Capacity: 250},
		{Name: "Exam Hall A", Capacity: 120},
		{Name: "Seminar Room", Capacity: 25},
	})

	got := catalog.Venues()
	want := []string{"Great Hall", "Exam Hall A", "Seminar Room"}
	if len(got) != len(want) {
		t.Fatalf("got %d venues, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("venue %d = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestNewCatalogFirstDuplicateWins(t *testing.T) {
	catalog := NewCatalog([]model.Venue{
		{Name: "Great Hall", Capacity: 250},
		{Name: "Great Hall", Capacity: 99},
	})

	if catalog.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", catalog.Len())
	}
	capacity, ok := catalog.Capacity("Great Hall")
	if !ok || capacity != 250 {
		t.Errorf("Capacity(Great Hall) = %d, %v; want 250, true", capacity, ok)
	}
}

func TestCatalogCapacityUnknownVenue(t *testing.T) {
	catalog := NewCatalog([]model.Venue{{Name: "Great Hall", Capacity: 250}})

	if _, ok := catalog.Capacity("Broom Closet"); ok {
		t.Error("Capacity(Broom Closet) reported present, want absent")
	}
}

func TestCatalogVenuesReturnsCopy(t *testing.T) {
	catalog := NewCatalog([]model.Venue{{Name: "Great Hall", Capacity: 250}})

	first := catalog.Venues()
	first[0].Name = "mutated"

	if got := catalog.Venues()[0].Name; got != "Great Hall" {
		t.Errorf("catalog mutated through returned slice: %q", got)
	}
}
