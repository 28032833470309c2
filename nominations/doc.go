// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package nominations stores candidate titles per community and month.
// Rows are insert-only and cleared in bulk; Submit trims input and
// rejects empty titles or authors, but identical titles are allowed.
package nominations
