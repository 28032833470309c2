// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/next-read/models"
	"github.com/danielhkuo/next-read/testutil"
)

// TestMonthlySelectionCycle drives a full month through the handlers:
// members nominate, the operator opens the nomination round, members
// vote, the operator promotes the top three to a runoff, the runoff
// closes, and the winner lands in the community's history.
func TestMonthlySelectionCycle(t *testing.T) {
	nh, ph, wh, _ := newTestHandlers(t)
	op := operatorHeaders("bookclub")

	do := func(handler http.HandlerFunc, method, path, id string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.MakeRequest(method, path, body, headers)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler(w, req)
		return w
	}

	// Four members nominate.
	books := []models.NominateRequest{
		{Title: "Dune", Author: "Herbert", UserID: "alice", Month: "2026-01"},
		{Title: "1984", Author: "Orwell", UserID: "bob", Month: "2026-01"},
		{Title: "Solaris", Author: "Lem", UserID: "carol", Month: "2026-01"},
		{Title: "Ubik", Author: "Dick", UserID: "dave", Month: "2026-01"},
	}
	for _, b := range books {
		w := do(nh.Nominate, "POST", "/communities/bookclub/nominations", "bookclub", b, nil)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	// Operator opens the nomination round.
	w := do(ph.Start, "POST", "/communities/bookclub/poll", "bookclub",
		models.StartPollRequest{Month: "2026-01"}, op)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var phase1 models.Poll
	testutil.AssertJSON(t, w, &phase1)
	if len(phase1.Options) != 4 {
		t.Fatalf("Expected 4 options, got %+v", phase1.Options)
	}

	// Members vote; multi-choice, so some pick several.
	// counts: Dune 1, 1984 3, Solaris 2, Ubik 0
	ballots := map[string][]int{
		"alice": {0, 1},
		"bob":   {1, 2},
		"carol": {1},
		"dave":  {2},
	}
	for voter, picks := range ballots {
		for _, idx := range picks {
			w := do(ph.Vote, "POST", "/polls/"+phase1.ID+"/votes", phase1.ID,
				models.VoteRequest{VoterID: voter, OptionIndex: idx}, nil)
			testutil.AssertStatus(t, w, http.StatusOK)
		}
	}

	// Close the nomination round: ranking only, no winner.
	w = do(ph.Close, "POST", "/communities/bookclub/poll/close", "bookclub", nil, op)
	testutil.AssertStatus(t, w, http.StatusOK)

	var closed models.ClosePollResponse
	testutil.AssertJSON(t, w, &closed)
	if closed.Winner != nil {
		t.Fatal("Nomination round must not produce a winner")
	}
	if closed.Ranking[0].Title != "1984 by Orwell" {
		t.Errorf("Expected '1984 by Orwell' on top, got %+v", closed.Ranking[0])
	}

	// Promote the top three to the runoff.
	w = do(ph.StartFinal, "POST", "/communities/bookclub/poll/final", "bookclub",
		models.StartPollRequest{}, op)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var runoff models.Poll
	testutil.AssertJSON(t, w, &runoff)

	wantOptions := []string{"1984 by Orwell", "Solaris by Lem", "Dune by Herbert"}
	for i, want := range wantOptions {
		if runoff.Options[i] != want {
			t.Errorf("Runoff option %d: expected %q, got %q", i, want, runoff.Options[i])
		}
	}
	if runoff.MultiVote {
		t.Error("Runoff must be single-vote")
	}
	if runoff.Month != "2026-01" {
		t.Errorf("Runoff must inherit the month, got %s", runoff.Month)
	}

	// Single-choice voting; bob changes his mind mid-round.
	do(ph.Vote, "POST", "/polls/"+runoff.ID+"/votes", runoff.ID,
		models.VoteRequest{VoterID: "alice", OptionIndex: 0}, nil)
	do(ph.Vote, "POST", "/polls/"+runoff.ID+"/votes", runoff.ID,
		models.VoteRequest{VoterID: "carol", OptionIndex: 1}, nil)
	do(ph.Vote, "POST", "/polls/"+runoff.ID+"/votes", runoff.ID,
		models.VoteRequest{VoterID: "bob", OptionIndex: 2}, nil)
	do(ph.Vote, "POST", "/polls/"+runoff.ID+"/votes", runoff.ID,
		models.VoteRequest{VoterID: "bob", OptionIndex: 0}, nil)

	// Final counts: option 0 → 2 (alice, bob), option 1 → 1 (carol).
	w = do(ph.Close, "POST", "/communities/bookclub/poll/close", "bookclub", nil, op)
	testutil.AssertStatus(t, w, http.StatusOK)

	var final models.ClosePollResponse
	testutil.AssertJSON(t, w, &final)

	if final.Winner == nil {
		t.Fatal("Runoff close must produce a winner")
	}
	if final.Winner.Title != "1984 by Orwell" {
		t.Errorf("Expected winner '1984 by Orwell', got %q", final.Winner.Title)
	}
	if final.Winner.VoteCount != 2 {
		t.Errorf("Expected 2 winning votes, got %d", final.Winner.VoteCount)
	}

	// The winner shows up in history.
	w = do(wh.Past, "GET", "/communities/bookclub/winners", "bookclub", nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	var history models.PastWinnersResponse
	testutil.AssertJSON(t, w, &history)
	if len(history.Winners) != 1 || history.Winners[0].Title != "1984 by Orwell" {
		t.Errorf("Expected the winner archived, got %+v", history.Winners)
	}

	// And nothing is active anymore.
	w = do(ph.Status, "GET", "/communities/bookclub/poll", "bookclub", nil, nil)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

// TestCommunitiesAreIsolated runs two communities through overlapping
// cycles and checks neither sees the other's state.
func TestCommunitiesAreIsolated(t *testing.T) {
	_, ph, _, conn := newTestHandlers(t)

	for c := 1; c <= 2; c++ {
		community := fmt.Sprintf("c%d", c)
		for i := 0; i < 2; i++ {
			testutil.AddTestNomination(t, conn, community, "2026-01",
				fmt.Sprintf("Book %d-%d", c, i), "Author", "u1")
		}

		req := testutil.MakeRequest("POST", "/communities/"+community+"/poll",
			models.StartPollRequest{Month: "2026-01"}, operatorHeaders(community))
		req.SetPathValue("id", community)
		w := httptest.NewRecorder()
		ph.Start(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	// Closing c1's poll leaves c2's running.
	req := testutil.MakeRequest("POST", "/communities/c1/poll/close", nil, operatorHeaders("c1"))
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()
	ph.Close(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("GET", "/communities/c2/poll", nil, nil)
	req.SetPathValue("id", "c2")
	w = httptest.NewRecorder()
	ph.Status(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}
