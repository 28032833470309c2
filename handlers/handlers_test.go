// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"testing"

	"github.com/danielhkuo/next-read/auth"
	"github.com/danielhkuo/next-read/nominations"
	"github.com/danielhkuo/next-read/polls"
	"github.com/danielhkuo/next-read/tally"
	"github.com/danielhkuo/next-read/testutil"
	"github.com/danielhkuo/next-read/votes"
	"github.com/danielhkuo/next-read/winners"
)

// newTestHandlers wires the full handler stack over a fresh database,
// the same composition the server performs at boot.
func newTestHandlers(t *testing.T) (*NominationHandler, *PollHandler, *WinnerHandler, *sql.DB) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	noms := nominations.NewStore(conn)
	engine := tally.NewEngine(conn)
	archive := winners.NewArchive(conn)
	ledger := votes.NewLedger(conn, cfg.DatabaseType)
	mgr := polls.NewManager(conn, noms, engine, archive)

	nh := NewNominationHandler(noms, cfg)
	ph := NewPollHandler(mgr, ledger, cfg)
	wh := NewWinnerHandler(archive, cfg)

	return nh, ph, wh, conn
}

// operatorHeaders returns the auth header an operator request needs.
func operatorHeaders(communityID string) map[string]string {
	key := auth.GenerateOperatorKey(communityID, testutil.GetTestConfig().OperatorKeySalt)
	return map[string]string{"X-Operator-Key": key}
}
