// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/next-read/errs"
	"github.com/danielhkuo/next-read/models"
	"github.com/danielhkuo/next-read/nominations"
	"github.com/danielhkuo/next-read/tally"
	"github.com/danielhkuo/next-read/winners"
)

// MinNominations is the floor for starting a nomination-round poll.
const MinNominations = 2

// RunoffSize is how many top options advance to the runoff.
const RunoffSize = 3

// Manager drives a poll lineage through its lifecycle:
//
//	absent → phase1-active → phase1-closed → phase2-active → phase2-closed
//
// A community has at most one active poll at a time regardless of phase.
type Manager struct {
	db      *sql.DB
	noms    *nominations.Store
	engine  *tally.Engine
	archive *winners.Archive
}

func NewManager(db *sql.DB, noms *nominations.Store, engine *tally.Engine, archive *winners.Archive) *Manager {
	return &Manager{db: db, noms: noms, engine: engine, archive: archive}
}

// StartPhase1 opens the multi-choice nomination round. Options are the
// month's nomination labels in submission order. The month is frozen
// into the poll row here; a calendar rollover mid-poll changes nothing.
func (m *Manager) StartPhase1(communityID, month, createdBy string) (models.Poll, error) {
	if communityID == "" {
		return models.Poll{}, errs.Validation("community_id is required")
	}
	if !models.ValidMonth(month) {
		return models.Poll{}, errs.Validation("month must be YYYY-MM, got %q", month)
	}

	active, err := m.hasActivePoll(communityID)
	if err != nil {
		return models.Poll{}, err
	}
	if active {
		return models.Poll{}, errs.Conflict("community %s already has an active poll", communityID)
	}

	noms, err := m.noms.List(communityID, month)
	if err != nil {
		return models.Poll{}, err
	}
	if len(noms) < MinNominations {
		return models.Poll{}, errs.Precondition("need at least %d nominations to start a poll, have %d", MinNominations, len(noms))
	}

	options := make([]string, len(noms))
	for i, n := range noms {
		options[i] = n.OptionLabel()
	}

	poll := models.Poll{
		ID:          uuid.NewString(),
		CommunityID: communityID,
		Month:       month,
		Phase:       models.PhaseNomination,
		Options:     options,
		MultiVote:   true,
		Active:      true,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}

	if err := m.createPoll(poll); err != nil {
		return models.Poll{}, err
	}

	return poll, nil
}

// StartPhase2 promotes the community's latest closed nomination round to
// a single-choice runoff over its top three options, in ranked order.
// Each nomination round is promoted at most once; after its runoff has
// closed, the lineage is terminal.
func (m *Manager) StartPhase2(communityID, createdBy string) (models.Poll, error) {
	if communityID == "" {
		return models.Poll{}, errs.Validation("community_id is required")
	}

	parent, err := m.latestClosedPhase1(communityID)
	if err != nil {
		return models.Poll{}, err
	}

	active, err := m.hasActivePoll(communityID)
	if err != nil {
		return models.Poll{}, err
	}
	if active {
		return models.Poll{}, errs.Conflict("community %s already has an active poll", communityID)
	}

	if len(parent.Options) < RunoffSize {
		return models.Poll{}, errs.Precondition("nomination round had only %d options, need %d for a runoff", len(parent.Options), RunoffSize)
	}

	top, err := m.engine.SelectTopN(parent.ID, RunoffSize)
	if err != nil {
		return models.Poll{}, err
	}

	voted := 0
	for _, entry := range top {
		if entry.Votes > 0 {
			voted++
		}
	}
	if voted < RunoffSize {
		return models.Poll{}, errs.Precondition("only %d options received votes, need %d for a runoff", voted, RunoffSize)
	}

	options := make([]string, len(top))
	for i, entry := range top {
		options[i] = entry.Title
	}

	poll := models.Poll{
		ID:           uuid.NewString(),
		CommunityID:  communityID,
		Month:        parent.Month,
		Phase:        models.PhaseRunoff,
		Options:      options,
		MultiVote:    false,
		Active:       true,
		ParentPollID: &parent.ID,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now().UTC(),
	}

	if err := m.createPoll(poll); err != nil {
		return models.Poll{}, err
	}

	return poll, nil
}

// Close deactivates the community's active poll and returns the final
// ranking. Closing a runoff also archives the winner; the flip and the
// winner row commit in one transaction.
func (m *Manager) Close(communityID string) (models.Poll, []models.TallyEntry, *models.Winner, error) {
	poll, err := m.Active(communityID)
	if err != nil {
		return models.Poll{}, nil, nil, err
	}

	tx, err := m.db.Begin()
	if err != nil {
		return models.Poll{}, nil, nil, errs.Persistence(err, "failed to begin close transaction")
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE poll SET active = $1 WHERE id = $2 AND active = $3
	`, false, poll.ID, true)
	if err != nil {
		return models.Poll{}, nil, nil, errs.Persistence(err, "failed to close poll")
	}
	flipped, err := res.RowsAffected()
	if err != nil {
		return models.Poll{}, nil, nil, errs.Persistence(err, "failed to inspect close")
	}
	if flipped == 0 {
		// Lost a race with another close.
		return models.Poll{}, nil, nil, errs.NotFound("community %s has no active poll", communityID)
	}

	ranking, err := tally.Rank(tx, poll.ID)
	if err != nil {
		return models.Poll{}, nil, nil, err
	}

	var winner *models.Winner
	if poll.Phase == models.PhaseRunoff {
		if len(ranking) == 0 {
			return models.Poll{}, nil, nil, errs.Precondition("runoff %s has no options to rank", poll.ID)
		}
		top := ranking[0]
		w, err := winners.Record(tx, poll.CommunityID, poll.Month, top.Title, top.Votes)
		if err != nil {
			return models.Poll{}, nil, nil, err
		}
		winner = &w
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, nil, nil, errs.Persistence(err, "failed to commit close transaction")
	}

	poll.Active = false
	return poll, ranking, winner, nil
}

// Active returns the community's active poll with its options.
func (m *Manager) Active(communityID string) (models.Poll, error) {
	poll, err := m.queryPoll(`
		SELECT id, community_id, month, phase, multi_vote, active, parent_poll_id, created_by, created_at
		FROM poll
		WHERE community_id = $1 AND active = $2
	`, communityID, true)

	if errs.KindOf(err) == errs.KindNotFound {
		return models.Poll{}, errs.NotFound("community %s has no active poll", communityID)
	}
	return poll, err
}

// Status returns the active poll and its live ranking.
func (m *Manager) Status(communityID string) (models.Poll, []models.TallyEntry, error) {
	poll, err := m.Active(communityID)
	if err != nil {
		return models.Poll{}, nil, err
	}

	ranking, err := m.engine.Rank(poll.ID)
	if err != nil {
		return models.Poll{}, nil, err
	}

	return poll, ranking, nil
}

// latestClosedPhase1 finds the newest closed nomination-round poll that
// has not been promoted yet. A round whose id already appears as some
// poll's parent_poll_id has had its runoff; promoting it again would
// build a second runoff for the same month, whose close could never
// commit past the winner primary key.
func (m *Manager) latestClosedPhase1(communityID string) (models.Poll, error) {
	poll, err := m.queryPoll(`
		SELECT id, community_id, month, phase, multi_vote, active, parent_poll_id, created_by, created_at
		FROM poll
		WHERE community_id = $1 AND active = $2 AND phase = $3
		AND NOT EXISTS (SELECT 1 FROM poll child WHERE child.parent_poll_id = poll.id)
		ORDER BY created_at DESC
		LIMIT 1
	`, communityID, false, models.PhaseNomination)

	if errs.KindOf(err) == errs.KindNotFound {
		return models.Poll{}, errs.Precondition("community %s has no closed nomination round awaiting a runoff", communityID)
	}
	return poll, err
}

func (m *Manager) hasActivePoll(communityID string) (bool, error) {
	var exists bool
	err := m.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM poll WHERE community_id = $1 AND active = $2)
	`, communityID, true).Scan(&exists)
	if err != nil {
		return false, errs.Persistence(err, "failed to query active poll")
	}
	return exists, nil
}

// createPoll inserts the poll row and its options in one transaction.
// The partial unique index on (community_id) WHERE active closes the
// check-then-act window between hasActivePoll and this insert.
func (m *Manager) createPoll(poll models.Poll) error {
	tx, err := m.db.Begin()
	if err != nil {
		return errs.Persistence(err, "failed to begin poll transaction")
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO poll (id, community_id, month, phase, multi_vote, active, parent_poll_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, poll.ID, poll.CommunityID, poll.Month, poll.Phase, poll.MultiVote, poll.Active, poll.ParentPollID, poll.CreatedBy, poll.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("community %s already has an active poll", poll.CommunityID)
		}
		return errs.Persistence(err, "failed to insert poll")
	}

	for i, title := range poll.Options {
		_, err = tx.Exec(`
			INSERT INTO poll_option (poll_id, option_index, title)
			VALUES ($1, $2, $3)
		`, poll.ID, i, title)
		if err != nil {
			return errs.Persistence(err, "failed to insert poll option")
		}
	}

	if err := tx.Commit(); err != nil {
		return errs.Persistence(err, "failed to commit poll transaction")
	}

	return nil
}

func (m *Manager) queryPoll(query string, args ...any) (models.Poll, error) {
	var poll models.Poll
	err := m.db.QueryRow(query, args...).Scan(
		&poll.ID, &poll.CommunityID, &poll.Month, &poll.Phase,
		&poll.MultiVote, &poll.Active, &poll.ParentPollID,
		&poll.CreatedBy, &poll.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, errs.NotFound("no matching poll")
	}
	if err != nil {
		return models.Poll{}, errs.Persistence(err, "failed to query poll")
	}

	rows, err := m.db.Query(`
		SELECT title FROM poll_option
		WHERE poll_id = $1
		ORDER BY option_index
	`, poll.ID)
	if err != nil {
		return models.Poll{}, errs.Persistence(err, "failed to query poll options")
	}
	defer rows.Close()

	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return models.Poll{}, errs.Persistence(err, "failed to scan poll option")
		}
		poll.Options = append(poll.Options, title)
	}
	if err := rows.Err(); err != nil {
		return models.Poll{}, errs.Persistence(err, "failed to read poll options")
	}

	return poll, nil
}

// isUniqueViolation matches constraint errors from both supported
// drivers (modernc.org/sqlite and lib/pq).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
