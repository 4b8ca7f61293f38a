// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// AnonymousPrefix marks identifiers derived for callers without an identity
const AnonymousPrefix = "anon-"

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough to tell clients apart
	return hex.EncodeToString(sum[:8])
}

// AnonymousID derives a stable placeholder identity for a client address
func AnonymousID(ip, salt string) string {
	return AnonymousPrefix + HashIP(ip, salt)
}

// IsAnonymous reports whether id was produced by AnonymousID
func IsAnonymous(id string) bool {
	return strings.HasPrefix(id, AnonymousPrefix)
}
