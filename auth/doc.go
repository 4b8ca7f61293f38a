// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifier generation utilities.

Sign-in is handled by an external identity provider; this package only
produces the opaque identifiers the rest of the server works with.

# ID Generation

Random hex IDs, used for voting session IDs:

	id, err := auth.GenerateID(16)  // 128 bits, 32 hex characters

# Anonymous Identities

Callers without an identity get a stable placeholder derived from their
address with a salted HMAC, so repeat requests map to the same voter:

	voterID := auth.AnonymousID(ipAddress, salt)  // "anon-" + 16 hex chars
	auth.IsAnonymous(voterID)                     // true

The "anon-" prefix is reserved: handlers reject client-supplied IDs that
carry it, so a caller cannot pose as another address.
*/
package auth
