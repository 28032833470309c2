// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - nomination: Candidate titles per community and month
  - poll: Poll metadata and lifecycle state
  - poll_option: Ordered, index-addressed option list per poll
  - vote: One row per voter mark against an option index
  - winner: Archived runoff result per community/month

# Relationships

	poll 1──* poll_option
	poll 1──* vote
	poll 1──? poll (parent_poll_id, runoff → nomination round)

Foreign keys on child tables use ON DELETE CASCADE.

# Constraints

Two constraints back the core invariants rather than application checks:

  - UNIQUE (poll_id, voter_id, option_index) on vote: same-voter toggle
    races cannot produce duplicate rows
  - partial UNIQUE index on poll(community_id) WHERE active: at most one
    active poll per community survives a racing pair of starts

The DDL is restricted to the dialect subset shared by SQLite
(modernc.org/sqlite) and PostgreSQL (lib/pq); both drivers run the same
statements.
*/
package db
