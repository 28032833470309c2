// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"regexp"
	"time"
)

// Poll phase constants
const (
	PhaseNomination = 1
	PhaseRunoff     = 2
)

// monthPattern matches the literal YYYY-MM month format, e.g. "2026-01".
var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidMonth reports whether s is a well-formed YYYY-MM month identifier.
func ValidMonth(s string) bool {
	return monthPattern.MatchString(s)
}

// CurrentMonth returns now's UTC month in YYYY-MM format.
func CurrentMonth(now time.Time) string {
	return now.UTC().Format("2006-01")
}

// Request types

type NominateRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	UserID string `json:"user_id"`
	Month  string `json:"month,omitempty"`
}

type StartPollRequest struct {
	Month  string `json:"month,omitempty"`
	UserID string `json:"user_id,omitempty"`
}

type VoteRequest struct {
	VoterID     string `json:"voter_id"`
	OptionIndex int    `json:"option_index"`
}

// Response types

type NominationListResponse struct {
	Month       string       `json:"month"`
	Nominations []Nomination `json:"nominations"`
}

type VoteResponse struct {
	PollID string       `json:"poll_id"`
	Tally  []TallyEntry `json:"tally"`
}

type PollStatusResponse struct {
	Poll    Poll         `json:"poll"`
	Ranking []TallyEntry `json:"ranking"`
	Started string       `json:"started"` // humanized, e.g. "2 days ago"
}

type ClosePollResponse struct {
	Poll    Poll         `json:"poll"`
	Ranking []TallyEntry `json:"ranking"`
	Winner  *Winner      `json:"winner,omitempty"`
}

type PastWinner struct {
	Month     string    `json:"month"`
	Title     string    `json:"title"`
	VoteCount int       `json:"vote_count"`
	Announced time.Time `json:"announced_at"`
	Ago       string    `json:"announced,omitempty"` // humanized
}

type PastWinnersResponse struct {
	CommunityID string       `json:"community_id"`
	Winners     []PastWinner `json:"winners"`
}

// Domain types

type Nomination struct {
	ID          string    `json:"id"`
	CommunityID string    `json:"community_id"`
	Month       string    `json:"month"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	NominatedBy string    `json:"nominated_by"`
	NominatedAt time.Time `json:"nominated_at"`
}

// OptionLabel is the poll option rendering of a nomination.
func (n Nomination) OptionLabel() string {
	return n.Title + " by " + n.Author
}

type Poll struct {
	ID           string    `json:"id"`
	CommunityID  string    `json:"community_id"`
	Month        string    `json:"month"`
	Phase        int       `json:"phase"`
	Options      []string  `json:"options"`
	MultiVote    bool      `json:"multi_vote"`
	Active       bool      `json:"active"`
	ParentPollID *string   `json:"parent_poll_id,omitempty"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

type Vote struct {
	ID          string    `json:"id"`
	PollID      string    `json:"poll_id"`
	OptionIndex int       `json:"option_index"`
	VoterID     string    `json:"-"` // Never expose in JSON
	VotedAt     time.Time `json:"voted_at"`
}

type Winner struct {
	CommunityID string    `json:"community_id"`
	Month       string    `json:"month"`
	Title       string    `json:"title"`
	VoteCount   int       `json:"vote_count"`
	AnnouncedAt time.Time `json:"announced_at"`
}

// Tally types

type TallyEntry struct {
	OptionIndex int    `json:"option_index"`
	Title       string `json:"title"`
	Votes       int    `json:"votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
