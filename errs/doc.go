// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package errs defines the error taxonomy shared by all core components.

# Kinds

  - KindValidation: empty or malformed input (empty title, out-of-range
    option index, bad month format)
  - KindNotFound: poll or nomination absent
  - KindConflict: active poll already exists, vote against a closed poll
  - KindPrecondition: insufficient nominations, insufficient voted
    options, no closed nomination-round poll to promote
  - KindPersistence: storage I/O failure

# Usage

Components construct errors via the kind constructors:

	return errs.Conflict("community %s already has an active poll", id)

Callers classify with KindOf, which sees through wrapping:

	if errs.KindOf(err) == errs.KindNotFound { ... }

Persistence errors carry the underlying driver error for logging but the
Msg alone is what callers may surface.
*/
package errs
