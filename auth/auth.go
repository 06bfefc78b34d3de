// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrMissingCaller    = errors.New("caller identity and key required")
	ErrInvalidCallerKey = errors.New("invalid caller key")
)

// NewIdentity issues a fresh random caller identity.
func NewIdentity() string {
	return uuid.NewString()
}

// GenerateCallerKey creates an HMAC-based key proving control of identity.
// This is deterministic and verifiable
func GenerateCallerKey(identity, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(identity))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateCallerKey checks the key presented for identity.
func ValidateCallerKey(identity, key, salt string) error {
	if identity == "" || key == "" {
		return ErrMissingCaller
	}
	expected := GenerateCallerKey(identity, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidCallerKey
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
