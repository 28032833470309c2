// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package winners

import (
	"database/sql"
	"time"

	"github.com/danielhkuo/next-read/errs"
	"github.com/danielhkuo/next-read/models"
)

// Archive persists the final winner per community and month.
type Archive struct {
	db *sql.DB
}

func NewArchive(db *sql.DB) *Archive {
	return &Archive{db: db}
}

// Execer is the write surface shared by *sql.DB and *sql.Tx, so the
// winner row can be written inside the runoff close transaction.
type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Record writes exactly one winner row. Each runoff cycle closes once,
// so a second call for the same (community, month) is a caller bug; the
// primary key rejects it rather than silently overwriting history.
func (a *Archive) Record(communityID, month, title string, voteCount int) (models.Winner, error) {
	return Record(a.db, communityID, month, title, voteCount)
}

// Record is the transactional form of Archive.Record.
func Record(e Execer, communityID, month, title string, voteCount int) (models.Winner, error) {
	w := models.Winner{
		CommunityID: communityID,
		Month:       month,
		Title:       title,
		VoteCount:   voteCount,
		AnnouncedAt: time.Now().UTC(),
	}

	_, err := e.Exec(`
		INSERT INTO winner (community_id, month, title, vote_count, announced_at)
		VALUES ($1, $2, $3, $4, $5)
	`, w.CommunityID, w.Month, w.Title, w.VoteCount, w.AnnouncedAt)

	if err != nil {
		return models.Winner{}, errs.Persistence(err, "failed to record winner for %s/%s", communityID, month)
	}

	return w, nil
}

// List returns the community's winner history, newest month first.
// YYYY-MM strings sort chronologically, so month ordering is lexical.
func (a *Archive) List(communityID string) ([]models.Winner, error) {
	rows, err := a.db.Query(`
		SELECT community_id, month, title, vote_count, announced_at
		FROM winner
		WHERE community_id = $1
		ORDER BY month DESC
	`, communityID)

	if err != nil {
		return nil, errs.Persistence(err, "failed to query winners")
	}
	defer rows.Close()

	list := []models.Winner{}
	for rows.Next() {
		var w models.Winner
		if err := rows.Scan(&w.CommunityID, &w.Month, &w.Title, &w.VoteCount, &w.AnnouncedAt); err != nil {
			return nil, errs.Persistence(err, "failed to scan winner")
		}
		list = append(list, w)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence(err, "failed to read winners")
	}

	return list, nil
}
