// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidOperatorKey = errors.New("invalid operator key")

// GenerateOperatorKey creates an HMAC-based operator key for a community.
// This is deterministic and verifiable.
func GenerateOperatorKey(communityID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(communityID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateOperatorKey checks if the provided key is valid for the community.
func ValidateOperatorKey(communityID, key, salt string) error {
	expected := GenerateOperatorKey(communityID, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidOperatorKey
	}
	return nil
}
