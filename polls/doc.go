// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls orchestrates the monthly two-round poll lifecycle.

# State Machine

Each poll lineage moves through:

	absent → phase1-active → phase1-closed → phase2-active → phase2-closed

phase2-closed is terminal. A community holds at most one active poll at
a time regardless of phase; the schema's partial unique index enforces
that even across racing starts.

# Operations

	mgr := polls.NewManager(db, noms, engine, archive)

	poll, err := mgr.StartPhase1(communityID, "2026-01", operator)
	poll, ranking, winner, err := mgr.Close(communityID)
	poll, err := mgr.StartPhase2(communityID, operator)
	poll, ranking, err := mgr.Status(communityID)

StartPhase1 needs at least two nominations for the month and builds the
option list from them in submission order, multi-vote. StartPhase2 needs
a closed nomination round with at least three options, three of which
received at least one vote; it promotes the top three in ranked order to
a single-vote runoff with parent_poll_id set. Close flips active
exactly once; closing a runoff also archives the winner in the same
transaction.

# Months

The month is frozen into the poll at StartPhase1 and inherited by the
runoff and the winner row. A calendar rollover while a poll is open has
no effect on any of them.
*/
package polls
