// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - NominateRequest: title, author, user_id, optional month
  - StartPollRequest: optional month
  - VoteRequest: voter_id, option_index

# Response Types

Types for JSON responses:

  - NominationListResponse: month, nominations
  - VoteResponse: poll_id, tally
  - PollStatusResponse: poll, ranking, started
  - ClosePollResponse: poll, ranking, optional winner
  - PastWinnersResponse: community_id, winners
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Nomination: a candidate title+author proposed for a month
  - Poll: poll metadata, ordered option list, lifecycle state
  - Vote: one voter's mark against one option index
  - Winner: archived runoff result per community/month
  - TallyEntry: per-option distinct-voter count

# Months

Months are literal YYYY-MM strings (e.g. "2026-01"). ValidMonth checks
the format, CurrentMonth derives the identifier from a wall-clock time.
Months are frozen into rows at creation time; nothing re-reads the clock
after that.

# Phases

	PhaseNomination = 1  (multi-choice round over all nominations)
	PhaseRunoff     = 2  (single-choice round over the top three)
*/
package models
