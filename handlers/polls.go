// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/next-read/auth"
	"github.com/danielhkuo/next-read/cliparse"
	"github.com/danielhkuo/next-read/middleware"
	"github.com/danielhkuo/next-read/models"
	"github.com/danielhkuo/next-read/polls"
	"github.com/danielhkuo/next-read/votes"
)

type PollHandler struct {
	mgr    *polls.Manager
	ledger *votes.Ledger
	cfg    cliparse.Config
}

func NewPollHandler(mgr *polls.Manager, ledger *votes.Ledger, cfg cliparse.Config) *PollHandler {
	return &PollHandler{mgr: mgr, ledger: ledger, cfg: cfg}
}

// Start handles POST /communities/:id/poll
// Opens the multi-choice nomination round over the month's nominations.
func (h *PollHandler) Start(w http.ResponseWriter, r *http.Request) {
	communityID, ok := h.operator(w, r)
	if !ok {
		return
	}

	var req models.StartPollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	month := req.Month
	if month == "" {
		month = models.CurrentMonth(time.Now())
	}
	createdBy := req.UserID
	if createdBy == "" {
		createdBy = "operator"
	}

	poll, err := h.mgr.StartPhase1(communityID, month, createdBy)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("nomination round started", "community_id", communityID, "poll_id", poll.ID, "month", month, "options", len(poll.Options))

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// StartFinal handles POST /communities/:id/poll/final
// Promotes the latest closed nomination round to the runoff.
func (h *PollHandler) StartFinal(w http.ResponseWriter, r *http.Request) {
	communityID, ok := h.operator(w, r)
	if !ok {
		return
	}

	var req models.StartPollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	createdBy := req.UserID
	if createdBy == "" {
		createdBy = "operator"
	}

	poll, err := h.mgr.StartPhase2(communityID, createdBy)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("runoff started", "community_id", communityID, "poll_id", poll.ID, "parent_poll_id", *poll.ParentPollID)

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// Close handles POST /communities/:id/poll/close
func (h *PollHandler) Close(w http.ResponseWriter, r *http.Request) {
	communityID, ok := h.operator(w, r)
	if !ok {
		return
	}

	poll, ranking, winner, err := h.mgr.Close(communityID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	if winner != nil {
		slog.Info("runoff closed", "community_id", communityID, "poll_id", poll.ID, "winner", winner.Title, "votes", winner.VoteCount)
	} else {
		slog.Info("nomination round closed", "community_id", communityID, "poll_id", poll.ID)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ClosePollResponse{
		Poll:    poll,
		Ranking: ranking,
		Winner:  winner,
	})
}

// Status handles GET /communities/:id/poll
// Returns the active poll and its live ranking, or 404 when none.
func (h *PollHandler) Status(w http.ResponseWriter, r *http.Request) {
	communityID := r.PathValue("id")
	if communityID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "community id is required")
		return
	}

	poll, ranking, err := h.mgr.Status(communityID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollStatusResponse{
		Poll:    poll,
		Ranking: ranking,
		Started: humanize.Time(poll.CreatedAt),
	})
}

// Vote handles POST /polls/:id/votes
// Toggles the voter's mark and returns the updated tally.
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	snapshot, err := h.ledger.Toggle(pollID, req.VoterID, req.OptionIndex)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("vote toggled", "poll_id", pollID, "option_index", req.OptionIndex)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		PollID: pollID,
		Tally:  snapshot,
	})
}

// operator extracts the community ID and validates the operator key.
func (h *PollHandler) operator(w http.ResponseWriter, r *http.Request) (string, bool) {
	communityID := r.PathValue("id")
	if communityID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "community id is required")
		return "", false
	}

	key := r.Header.Get("X-Operator-Key")
	if err := auth.ValidateOperatorKey(communityID, key, h.cfg.OperatorKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid operator key")
		return "", false
	}

	return communityID, true
}
