// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package nominations

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/next-read/errs"
	"github.com/danielhkuo/next-read/models"
)

// Store persists nominations per community and month.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Submit records one nomination. Title and author are trimmed; empty
// values are rejected. Duplicate titles are deliberately allowed - the
// nomination round surfaces them as separate options.
func (s *Store) Submit(communityID, month, title, author, userID string) (models.Nomination, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if communityID == "" {
		return models.Nomination{}, errs.Validation("community_id is required")
	}
	if userID == "" {
		return models.Nomination{}, errs.Validation("user_id is required")
	}
	if title == "" {
		return models.Nomination{}, errs.Validation("title is required")
	}
	if author == "" {
		return models.Nomination{}, errs.Validation("author is required")
	}
	if !models.ValidMonth(month) {
		return models.Nomination{}, errs.Validation("month must be YYYY-MM, got %q", month)
	}

	nom := models.Nomination{
		ID:          uuid.NewString(),
		CommunityID: communityID,
		Month:       month,
		Title:       title,
		Author:      author,
		NominatedBy: userID,
		NominatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(`
		INSERT INTO nomination (id, community_id, month, title, author, nominated_by, nominated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, nom.ID, nom.CommunityID, nom.Month, nom.Title, nom.Author, nom.NominatedBy, nom.NominatedAt)

	if err != nil {
		return models.Nomination{}, errs.Persistence(err, "failed to insert nomination")
	}

	return nom, nil
}

// List returns the community's nominations for a month in submission
// order (nominated_at ascending, id as a stable tiebreak).
func (s *Store) List(communityID, month string) ([]models.Nomination, error) {
	rows, err := s.db.Query(`
		SELECT id, community_id, month, title, author, nominated_by, nominated_at
		FROM nomination
		WHERE community_id = $1 AND month = $2
		ORDER BY nominated_at, id
	`, communityID, month)

	if err != nil {
		return nil, errs.Persistence(err, "failed to query nominations")
	}
	defer rows.Close()

	noms := []models.Nomination{}
	for rows.Next() {
		var n models.Nomination
		if err := rows.Scan(&n.ID, &n.CommunityID, &n.Month, &n.Title, &n.Author, &n.NominatedBy, &n.NominatedAt); err != nil {
			return nil, errs.Persistence(err, "failed to scan nomination")
		}
		noms = append(noms, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence(err, "failed to read nominations")
	}

	return noms, nil
}

// Clear deletes every nomination for the community and month. Deleting
// an empty set is not an error.
func (s *Store) Clear(communityID, month string) error {
	_, err := s.db.Exec(`
		DELETE FROM nomination
		WHERE community_id = $1 AND month = $2
	`, communityID, month)

	if err != nil {
		return errs.Persistence(err, "failed to clear nominations")
	}

	return nil
}
