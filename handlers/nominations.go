// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/next-read/auth"
	"github.com/danielhkuo/next-read/cliparse"
	"github.com/danielhkuo/next-read/middleware"
	"github.com/danielhkuo/next-read/models"
	"github.com/danielhkuo/next-read/nominations"
)

type NominationHandler struct {
	noms *nominations.Store
	cfg  cliparse.Config
}

func NewNominationHandler(noms *nominations.Store, cfg cliparse.Config) *NominationHandler {
	return &NominationHandler{noms: noms, cfg: cfg}
}

// Nominate handles POST /communities/:id/nominations
func (h *NominationHandler) Nominate(w http.ResponseWriter, r *http.Request) {
	communityID := r.PathValue("id")
	if communityID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "community id is required")
		return
	}

	var req models.NominateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	month := req.Month
	if month == "" {
		month = models.CurrentMonth(time.Now())
	}

	nom, err := h.noms.Submit(communityID, month, req.Title, req.Author, req.UserID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("nomination submitted", "community_id", communityID, "month", month, "title", nom.Title)

	middleware.JSONResponse(w, http.StatusCreated, nom)
}

// List handles GET /communities/:id/nominations?month=YYYY-MM
func (h *NominationHandler) List(w http.ResponseWriter, r *http.Request) {
	communityID := r.PathValue("id")
	if communityID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "community id is required")
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		month = models.CurrentMonth(time.Now())
	}
	if !models.ValidMonth(month) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}

	noms, err := h.noms.List(communityID, month)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.NominationListResponse{
		Month:       month,
		Nominations: noms,
	})
}

// Clear handles DELETE /communities/:id/nominations?month=YYYY-MM
// Operator-gated; clearing an empty month succeeds.
func (h *NominationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	communityID := r.PathValue("id")
	if communityID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "community id is required")
		return
	}

	key := r.Header.Get("X-Operator-Key")
	if err := auth.ValidateOperatorKey(communityID, key, h.cfg.OperatorKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid operator key")
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		month = models.CurrentMonth(time.Now())
	}
	if !models.ValidMonth(month) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}

	if err := h.noms.Clear(communityID, month); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("nominations cleared", "community_id", communityID, "month", month)

	w.WriteHeader(http.StatusNoContent)
}
