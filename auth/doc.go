// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides caller authentication and identity utilities.

# Caller Keys

Caller keys use HMAC-SHA256 to bind a key to an identity:

	key := auth.GenerateCallerKey(identity, salt)
	err := auth.ValidateCallerKey(identity, key, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same identity and salt always produce the same key. This allows
validation without storing keys in the database. Anyone holding the salt can
mint keys, so it must stay server-side.

# Identities

Fresh identities are random UUIDs:

	id := auth.NewIdentity()

Identities are opaque to the ledger; any string of 1-128 bytes works, so
operators can also issue keys for names they choose (see --issue-key).

# IP Hashing

For privacy-preserving audit records:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
