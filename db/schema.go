// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The DDL below sticks to the subset SQLite and PostgreSQL share.
// Timestamps are always written by the application; defaults exist only
// as a safety net.
const schema = `
-- Nominations
CREATE TABLE IF NOT EXISTS nomination (
    id TEXT PRIMARY KEY,
    community_id TEXT NOT NULL,
    month TEXT NOT NULL,
    title TEXT NOT NULL,
    author TEXT NOT NULL,
    nominated_by TEXT NOT NULL,
    nominated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_nomination_community_month ON nomination(community_id, month);

-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    community_id TEXT NOT NULL,
    month TEXT NOT NULL,
    phase INTEGER NOT NULL CHECK (phase IN (1, 2)),
    multi_vote BOOLEAN NOT NULL,
    active BOOLEAN NOT NULL,
    parent_poll_id TEXT REFERENCES poll(id),
    created_by TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_poll_community ON poll(community_id);

-- At most one active poll per community, enforced at the storage layer
-- so a racing pair of admin-initiated starts cannot both commit.
CREATE UNIQUE INDEX IF NOT EXISTS idx_poll_one_active ON poll(community_id) WHERE active;

-- Poll options, index-addressed in presentation order
CREATE TABLE IF NOT EXISTS poll_option (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    option_index INTEGER NOT NULL,
    title TEXT NOT NULL,
    PRIMARY KEY (poll_id, option_index)
);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    option_index INTEGER NOT NULL,
    voter_id TEXT NOT NULL,
    voted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (poll_id, voter_id, option_index)
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
CREATE INDEX IF NOT EXISTS idx_vote_poll_voter ON vote(poll_id, voter_id);

-- Winners
CREATE TABLE IF NOT EXISTS winner (
    community_id TEXT NOT NULL,
    month TEXT NOT NULL,
    title TEXT NOT NULL,
    vote_count INTEGER NOT NULL,
    announced_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (community_id, month)
);
`
