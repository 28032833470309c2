// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Logging

WithLogging wraps handlers with request/completion logging via slog.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ParseJSONBody(r, &req)

# Error Mapping

WriteError translates the errs taxonomy onto HTTP statuses:

	Validation   → 400
	NotFound     → 404
	Conflict     → 409
	Precondition → 412
	anything else → 500 (generic message, details only logged)
*/
package middleware
