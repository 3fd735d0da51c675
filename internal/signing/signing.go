// Package signing computes the X-TBA-Auth-Sig value for trusted writes.
package signing

import (
	"crypto/md5" //nolint:gosec // the trusted API verifies md5 signatures
	"encoding/hex"
	"hash"

	"github.com/frc1418/go-tba/internal/paths"
)

// Signer hashes secret + trusted prefix + path + body and hex-encodes the digest.
type Signer struct {
	newHash func() hash.Hash
}

// New returns a Signer using the given hash constructor. A nil constructor
// selects md5, the digest the server checks.
func New(newHash func() hash.Hash) Signer {
	if newHash == nil {
		newHash = md5.New
	}
	return Signer{newHash: newHash}
}

// Sign returns the signature for a write to path (relative to the trusted
// prefix, event already substituted) carrying body.
func (s Signer) Sign(secret, path string, body []byte) string {
	newHash := s.newHash
	if newHash == nil {
		newHash = md5.New
	}

	h := newHash()
	h.Write([]byte(secret))
	h.Write([]byte(paths.TrustedPrefix))
	h.Write([]byte(path))
	h.Write(body)

	return hex.EncodeToString(h.Sum(nil))
}

// Sign is Signer.Sign with the default digest.
func Sign(secret, path string, body []byte) string {
	return Signer{}.Sign(secret, path, body)
}
