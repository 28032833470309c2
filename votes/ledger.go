// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votes

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/next-read/errs"
	"github.com/danielhkuo/next-read/models"
	"github.com/danielhkuo/next-read/tally"
)

// Ledger records and toggles votes against poll options.
type Ledger struct {
	db     *sql.DB
	driver string
}

// NewLedger wraps db. driver is the sql driver name ("sqlite" or
// "postgres"); the toggle locking strategy depends on it.
func NewLedger(db *sql.DB, driver string) *Ledger {
	return &Ledger{db: db, driver: driver}
}

// Toggle flips the voter's mark on one option and returns the updated
// ranking, read inside the same transaction so the caller never sees a
// half-applied toggle.
//
// Multi-vote polls toggle per option: an existing (voter, option) row is
// removed, otherwise one is inserted; the voter's other options are
// untouched. Single-vote polls hold at most one row per voter: toggling
// the current choice removes it, toggling another option moves the row.
// The delete+insert pair commits atomically. Same-voter toggles must
// not interleave: the single-vote path reads the current row before
// rewriting it, and the (poll_id, voter_id, option_index) index cannot
// catch two toggles landing on different options. On sqlite the single
// connection serializes them; on postgres READ COMMITTED does not, so
// Toggle takes an advisory lock keyed on (poll, voter) for the life of
// the transaction.
func (l *Ledger) Toggle(pollID, voterID string, optionIndex int) ([]models.TallyEntry, error) {
	if voterID == "" {
		return nil, errs.Validation("voter_id is required")
	}

	tx, err := l.db.Begin()
	if err != nil {
		return nil, errs.Persistence(err, "failed to begin vote transaction")
	}
	defer tx.Rollback()

	if l.driver == "postgres" {
		_, err = tx.Exec(`SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2))`, pollID, voterID)
		if err != nil {
			return nil, errs.Persistence(err, "failed to lock voter")
		}
	}

	var multiVote, active bool
	var optionCount int
	err = tx.QueryRow(`
		SELECT p.multi_vote, p.active,
		       (SELECT COUNT(*) FROM poll_option o WHERE o.poll_id = p.id)
		FROM poll p
		WHERE p.id = $1
	`, pollID).Scan(&multiVote, &active, &optionCount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("poll %s not found", pollID)
	}
	if err != nil {
		return nil, errs.Persistence(err, "failed to query poll")
	}

	if !active {
		return nil, errs.Conflict("poll %s is closed", pollID)
	}
	if optionIndex < 0 || optionIndex >= optionCount {
		return nil, errs.Validation("option_index %d out of range [0, %d)", optionIndex, optionCount)
	}

	if multiVote {
		err = l.toggleMulti(tx, pollID, voterID, optionIndex)
	} else {
		err = l.toggleSingle(tx, pollID, voterID, optionIndex)
	}
	if err != nil {
		return nil, err
	}

	snapshot, err := tally.Rank(tx, pollID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, errs.Persistence(err, "failed to commit vote transaction")
	}

	return snapshot, nil
}

// toggleMulti removes the (voter, option) row if present, else inserts it.
func (l *Ledger) toggleMulti(tx *sql.Tx, pollID, voterID string, optionIndex int) error {
	res, err := tx.Exec(`
		DELETE FROM vote
		WHERE poll_id = $1 AND voter_id = $2 AND option_index = $3
	`, pollID, voterID, optionIndex)
	if err != nil {
		return errs.Persistence(err, "failed to remove vote")
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return errs.Persistence(err, "failed to inspect vote removal")
	}
	if removed > 0 {
		return nil
	}

	return l.insert(tx, pollID, voterID, optionIndex)
}

// toggleSingle keeps at most one row per voter: same option removes the
// vote, a different option replaces it.
func (l *Ledger) toggleSingle(tx *sql.Tx, pollID, voterID string, optionIndex int) error {
	var current int
	err := tx.QueryRow(`
		SELECT option_index FROM vote
		WHERE poll_id = $1 AND voter_id = $2
	`, pollID, voterID).Scan(&current)

	hadVote := true
	if errors.Is(err, sql.ErrNoRows) {
		hadVote = false
	} else if err != nil {
		return errs.Persistence(err, "failed to query existing vote")
	}

	if hadVote {
		_, err = tx.Exec(`
			DELETE FROM vote
			WHERE poll_id = $1 AND voter_id = $2
		`, pollID, voterID)
		if err != nil {
			return errs.Persistence(err, "failed to remove existing vote")
		}
		if current == optionIndex {
			// Net effect: un-vote.
			return nil
		}
	}

	return l.insert(tx, pollID, voterID, optionIndex)
}

func (l *Ledger) insert(tx *sql.Tx, pollID, voterID string, optionIndex int) error {
	_, err := tx.Exec(`
		INSERT INTO vote (id, poll_id, option_index, voter_id, voted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), pollID, optionIndex, voterID, time.Now().UTC())
	if err != nil {
		return errs.Persistence(err, "failed to insert vote")
	}
	return nil
}

// Counts returns the distinct-voter count per option index, zeros
// included for options nobody has voted on.
func (l *Ledger) Counts(pollID string) (map[int]int, error) {
	entries, err := tally.Rank(l.db, pollID)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int, len(entries))
	for _, e := range entries {
		counts[e.OptionIndex] = e.Votes
	}
	return counts, nil
}
