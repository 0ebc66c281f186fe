package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMACSignatureVerifier implements ports.SignatureVerifier using HMAC-SHA256
// over the raw callback body. It is a pure function of its inputs and the
// shared secret; it holds no state and performs no I/O.
type HMACSignatureVerifier struct{}

// NewHMACSignatureVerifier creates a new HMAC-SHA256 signature verifier.
func NewHMACSignatureVerifier() *HMACSignatureVerifier {
	return &HMACSignatureVerifier{}
}

// Sign computes HMAC-SHA256 of the raw body using the shared secret.
// Returns lowercase hex-encoded signature.
func (s *HMACSignatureVerifier) Sign(secret string, rawBody []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks providedSignature against HMAC-SHA256(secret, rawBody).
// Constant-time comparison; fails closed on empty signature or secret.
func (s *HMACSignatureVerifier) Verify(secret string, rawBody []byte, providedSignature string) bool {
	if secret == "" || providedSignature == "" {
		return false
	}
	expected := s.Sign(secret, rawBody)
	return hmac.Equal([]byte(expected), []byte(providedSignature))
}
