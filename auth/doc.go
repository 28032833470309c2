// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides operator key generation and validation.

# Operator Keys

Operator keys use HMAC-SHA256 to create deterministic, verifiable keys
for the admin-gated lifecycle operations (start, close, promote, clear):

	key := auth.GenerateOperatorKey(communityID, salt)
	err := auth.ValidateOperatorKey(communityID, key, salt)

The key is URL-safe base64 encoded without padding. Since it's
deterministic, the same community ID and salt always produce the same
key. This allows validation without storing the key in the database.
Comparison is constant-time via hmac.Equal.

Voter identity is not handled here: voters arrive as opaque IDs assigned
by the chat platform the command dispatcher fronts.
*/
package auth
