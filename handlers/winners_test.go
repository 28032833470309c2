// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/next-read/models"
	"github.com/danielhkuo/next-read/testutil"
	"github.com/danielhkuo/next-read/winners"
)

func TestPastWinnersEndpoint(t *testing.T) {
	_, _, wh, conn := newTestHandlers(t)

	archive := winners.NewArchive(conn)
	if _, err := archive.Record("c1", "2025-12", "Dune by Herbert", 5); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if _, err := archive.Record("c1", "2026-01", "1984 by Orwell", 3); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if _, err := archive.Record("c2", "2026-01", "Solaris by Lem", 2); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	req := testutil.MakeRequest("GET", "/communities/c1/winners", nil, nil)
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()
	wh.Past(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PastWinnersResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.CommunityID != "c1" {
		t.Errorf("Expected community c1, got %s", resp.CommunityID)
	}
	if len(resp.Winners) != 2 {
		t.Fatalf("Expected 2 winners, got %d", len(resp.Winners))
	}
	// Newest month first.
	if resp.Winners[0].Month != "2026-01" || resp.Winners[1].Month != "2025-12" {
		t.Errorf("Expected reverse-chronological order, got %+v", resp.Winners)
	}
	if resp.Winners[0].Ago == "" {
		t.Error("Expected humanized announcement time")
	}
}

func TestPastWinnersEmptyHistory(t *testing.T) {
	_, _, wh, _ := newTestHandlers(t)

	req := testutil.MakeRequest("GET", "/communities/fresh/winners", nil, nil)
	req.SetPathValue("id", "fresh")
	w := httptest.NewRecorder()
	wh.Past(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PastWinnersResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Winners) != 0 {
		t.Errorf("Expected empty history, got %+v", resp.Winners)
	}
}
