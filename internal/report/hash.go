package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainResult separates result fingerprints from other hashes.
const DomainResult = "rdfexpr/result/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint identifies the solutions of r. It covers variables and rows
// only, so two executions with different tokens and the same answer share
// a fingerprint.
func (r Report) Fingerprint() (string, error) {
	m := r.Map()
	canonical, err := MarshalCanonical(map[string]any{
		"variables": m["variables"],
		"rows":      m["rows"],
	})
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hashWithDomain(DomainResult, canonical), nil
}
