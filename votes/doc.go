// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package votes records and toggles individual votes against poll options.

Toggle is the single write path. Multi-vote polls toggle per option, so
a voter may hold marks on several options at once; single-vote polls
keep at most one row per voter and move it between options. Every toggle
runs in one transaction and returns the post-toggle ranking read inside
that transaction, so callers never observe a voter with zero or two rows
mid-move.

Writes against a closed poll fail with a Conflict; unknown polls with
NotFound; out-of-range option indexes with Validation.
*/
package votes
