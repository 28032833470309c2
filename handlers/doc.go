// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Next Read API.

# Handler Types

Each handler is a struct wrapping its core component plus config:

  - NominationHandler: submit, list, and clear nominations
  - PollHandler: poll lifecycle and vote toggling
  - WinnerHandler: past selection history

Handlers are created via constructor functions in the composition root:

	pollHandler := handlers.NewPollHandler(mgr, ledger, cfg)

# Poll Lifecycle

Each month runs two rounds: a multi-choice round over all nominations,
then a single-choice runoff among the top three.

	POST /communities/{id}/poll        → Start (nomination round)
	POST /communities/{id}/poll/close  → Close (ranks; runoff close archives winner)
	POST /communities/{id}/poll/final  → StartFinal (runoff over top 3)
	GET  /communities/{id}/poll        → Status (active poll + live ranking)

Operator operations require the X-Operator-Key header.

# Voting

	POST /polls/{id}/votes → Vote

Toggles the voter's mark on an option and returns the updated tally.
Voters are opaque IDs supplied by the caller; there is no voter auth at
this layer.

# Error Mapping

Core errors carry a kind from the errs package; middleware.WriteError
maps them onto 400/404/409/412 and degrades everything else to 500.
*/
package handlers
