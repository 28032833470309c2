// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package winners archives the final selection per community and month.
// Record writes exactly one row per runoff close; duplicates are a
// caller bug rejected by the (community_id, month) primary key.
package winners
