// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writers

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/texreports/arrestx/pkg/types"
)

// redactionMarker replaces address lines when address redaction is on.
const redactionMarker = "[REDACTED]"

// Redact returns a copy of the records with the configured redactions
// applied. The input is never mutated; with no redactions configured it is
// returned as-is.
func Redact(records []types.Record, cfg types.OutputConfig) []types.Record {
	if !cfg.RedactAddress && !cfg.HashIdentifier {
		return records
	}

	out := make([]types.Record, len(records))
	for i, r := range records {
		if cfg.RedactAddress && len(r.Address) > 0 {
			r.Address = []string{redactionMarker}
		}
		if cfg.HashIdentifier && r.Identifier != "" {
			r.Identifier = HashIdentifier(r.Identifier)
		}
		out[i] = r
	}
	return out
}

// HashIdentifier returns the SHA-256 hex digest of an identifier. Hashing
// keeps records joinable across runs without exposing the number itself.
func HashIdentifier(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
