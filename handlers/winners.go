// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/next-read/cliparse"
	"github.com/danielhkuo/next-read/middleware"
	"github.com/danielhkuo/next-read/models"
	"github.com/danielhkuo/next-read/winners"
)

type WinnerHandler struct {
	archive *winners.Archive
	cfg     cliparse.Config
}

func NewWinnerHandler(archive *winners.Archive, cfg cliparse.Config) *WinnerHandler {
	return &WinnerHandler{archive: archive, cfg: cfg}
}

// Past handles GET /communities/:id/winners
// Returns the community's selection history, newest month first.
func (h *WinnerHandler) Past(w http.ResponseWriter, r *http.Request) {
	communityID := r.PathValue("id")
	if communityID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "community id is required")
		return
	}

	list, err := h.archive.List(communityID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	past := make([]models.PastWinner, len(list))
	for i, win := range list {
		past[i] = models.PastWinner{
			Month:     win.Month,
			Title:     win.Title,
			VoteCount: win.VoteCount,
			Announced: win.AnnouncedAt,
			Ago:       humanize.Time(win.AnnouncedAt),
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.PastWinnersResponse{
		CommunityID: communityID,
		Winners:     past,
	})
}
