// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"database/sql"

	"github.com/danielhkuo/next-read/errs"
	"github.com/danielhkuo/next-read/models"
)

// Querier is the query surface shared by *sql.DB and *sql.Tx, so
// rankings can be read both standalone and inside a vote transaction.
type Querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Engine computes rankings over a poll's votes.
type Engine struct {
	db *sql.DB
}

func NewEngine(db *sql.DB) *Engine {
	return &Engine{db: db}
}

// Rank returns every option of the poll ordered by distinct-voter count
// descending. Ties are broken by ascending option index, which makes
// the ordering total and deterministic. Options without votes appear
// with zero.
func (e *Engine) Rank(pollID string) ([]models.TallyEntry, error) {
	return Rank(e.db, pollID)
}

// SelectTopN returns the first n entries of Rank. A poll with fewer
// than n options yields them all.
func (e *Engine) SelectTopN(pollID string, n int) ([]models.TallyEntry, error) {
	ranked, err := e.Rank(pollID)
	if err != nil {
		return nil, err
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// Winner returns the top-ranked entry. On a tie for the maximum the
// lowest option index wins.
func (e *Engine) Winner(pollID string) (models.TallyEntry, error) {
	ranked, err := e.Rank(pollID)
	if err != nil {
		return models.TallyEntry{}, err
	}
	if len(ranked) == 0 {
		return models.TallyEntry{}, errs.NotFound("poll %s has no options", pollID)
	}
	return ranked[0], nil
}

// Rank is the query form usable inside a transaction. The vote table's
// (poll_id, voter_id, option_index) uniqueness makes COUNT(v.id) a
// distinct-voter count.
func Rank(q Querier, pollID string) ([]models.TallyEntry, error) {
	var exists bool
	err := q.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM poll WHERE id = $1)
	`, pollID).Scan(&exists)
	if err != nil {
		return nil, errs.Persistence(err, "failed to query poll")
	}
	if !exists {
		return nil, errs.NotFound("poll %s not found", pollID)
	}

	rows, err := q.Query(`
		SELECT o.option_index, o.title, COUNT(v.id)
		FROM poll_option o
		LEFT JOIN vote v ON v.poll_id = o.poll_id AND v.option_index = o.option_index
		WHERE o.poll_id = $1
		GROUP BY o.option_index, o.title
		ORDER BY COUNT(v.id) DESC, o.option_index ASC
	`, pollID)

	if err != nil {
		return nil, errs.Persistence(err, "failed to query tally")
	}
	defer rows.Close()

	entries := []models.TallyEntry{}
	for rows.Next() {
		var e models.TallyEntry
		if err := rows.Scan(&e.OptionIndex, &e.Title, &e.Votes); err != nil {
			return nil, errs.Persistence(err, "failed to scan tally entry")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence(err, "failed to read tally")
	}

	return entries, nil
}
