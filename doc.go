// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Next Read API server.

Next Read coordinates a community's monthly book selection: members
nominate titles, a multi-choice poll runs over all nominations, and a
single-choice runoff among the top three picks the winner, which is
archived per community and month.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=next-read.db OPERATOR_KEY_SALT=... go run .

Or with flags:

	go run . -p 3419 -d next-read.db --operator-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite path or PostgreSQL connection string
  - OPERATOR_KEY_SALT (--operator-salt): Secret for operator key HMAC

Optional settings:

  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - PORT (-p): Server port (default: 3419)

# Architecture

The server wires the poll engine behind a thin HTTP adapter:

  - nominations: candidate titles per community/month
  - votes: transactional vote toggling
  - tally: deterministic rankings
  - polls: two-round lifecycle state machine
  - winners: per-month selection archive
  - handlers/router/middleware: HTTP surface
  - models: domain and API types
  - errs: error taxonomy
  - auth: operator key HMAC
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
