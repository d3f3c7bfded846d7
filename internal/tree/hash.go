package tree

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainForest prefixes forest fingerprints.
// The version suffix leaves room for a future algorithm change.
const DomainForest = "treelab/forest/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint returns a content hash of f.
// Two forests with equal values have equal fingerprints regardless of how much
// structure they share.
func Fingerprint(f Forest) string {
	return hashWithDomain(DomainForest, MarshalCanonical(f))
}
