package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// StorageKey returns the provider key for a snapshot: "<ns>:<key>", or key
// alone when ns is empty.
func StorageKey(ns, key string) string {
	if ns == "" {
		return key
	}
	return ns + ":" + key
}

// ShortHash returns the first 16 hex chars of the SHA-256 of s. Used to keep
// raw keys out of logs.
func ShortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}
