// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally aggregates votes into ranked results.

Rank orders every option by distinct-voter count descending with ties
broken by ascending option index, which makes the ordering total and
deterministic: given counts [5, 5, 2] for options [0, 1, 2], Rank
returns [0, 1, 2]. Winner is Rank's head, so on a tie for the maximum
the lowest option index wins. SelectTopN is the rank prefix used to
seed the runoff.

The package-level Rank accepts anything satisfying Querier (both
*sql.DB and *sql.Tx), so the vote ledger can read a consistent snapshot
inside its toggle transaction.
*/
package tally
