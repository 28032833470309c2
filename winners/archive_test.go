// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package winners

import (
	"testing"

	"github.com/danielhkuo/next-read/errs"
	"github.com/danielhkuo/next-read/testutil"
)

func TestRecordAndList(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	archive := NewArchive(conn)

	months := []struct {
		month string
		title string
		votes int
	}{
		{"2025-11", "Dune", 5},
		{"2026-01", "Solaris", 4},
		{"2025-12", "1984", 7},
	}

	for _, m := range months {
		if _, err := archive.Record("c1", m.month, m.title, m.votes); err != nil {
			t.Fatalf("Record %s failed: %v", m.month, err)
		}
	}

	list, err := archive.List("c1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	// Newest month first
	wantOrder := []string{"2026-01", "2025-12", "2025-11"}
	if len(list) != len(wantOrder) {
		t.Fatalf("Expected %d winners, got %d", len(wantOrder), len(list))
	}
	for i, month := range wantOrder {
		if list[i].Month != month {
			t.Errorf("Position %d: expected month %s, got %s", i, month, list[i].Month)
		}
	}
}

func TestRecordDuplicateMonthRejected(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	archive := NewArchive(conn)

	if _, err := archive.Record("c1", "2026-01", "Dune", 5); err != nil {
		t.Fatalf("First record failed: %v", err)
	}

	// A second close of the same cycle is a caller bug, not suppressed.
	_, err := archive.Record("c1", "2026-01", "1984", 3)
	if errs.KindOf(err) != errs.KindPersistence {
		t.Errorf("Expected duplicate record to fail with a persistence error, got %v", err)
	}
}

func TestListScopedByCommunity(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	archive := NewArchive(conn)

	archive.Record("c1", "2026-01", "Dune", 5)
	archive.Record("c2", "2026-01", "1984", 3)

	list, err := archive.List("c1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Dune" {
		t.Errorf("Expected exactly [Dune] for c1, got %+v", list)
	}
}

func TestListEmptyCommunity(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	archive := NewArchive(conn)

	list, err := archive.List("nobody")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected empty history, got %d rows", len(list))
	}
}
