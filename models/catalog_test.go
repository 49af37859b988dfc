package models

import "testing"

func TestCatalogKeepsOrderAndDuplicates(t *testing.T) {
	catalog := NewCatalog()
	first := BookRecord{Title: "First", Price: 10.00}
	second := BookRecord{Title: "Second", Price: 20.00}

	catalog.Append(first)
	catalog.Append(second)
	catalog.Append(first)

	if got := catalog.Len(); got != 3 {
		t.Fatalf("len=%d, want 3", got)
	}
	records := catalog.Records()
	if records[0].Title != "First" || records[1].Title != "Second" || records[2].Title != "First" {
		t.Fatalf("unexpected order: %v", records)
	}
}

func TestCatalogRecordsSnapshot(t *testing.T) {
	catalog := NewCatalog()
	catalog.Append(BookRecord{Title: "Original"})

	snapshot := catalog.Records()
	snapshot[0].Title = "Mutated"
	if got := catalog.Records()[0].Title; got != "Original" {
		t.Fatalf("title=%q, want %q", got, "Original")
	}

	catalog.Append(BookRecord{Title: "Later"})
	if len(snapshot) != 1 {
		t.Fatalf("snapshot grew to %d records", len(snapshot))
	}
}
