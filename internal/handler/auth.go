package handler

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/namsport/fixturedesk/internal/domain"
)

// StaticTokens identifies federation staff by bearer token. Keys are tokens,
// values display names.
type StaticTokens map[string]string

// Identify resolves "Authorization: Bearer <token>". A missing header or an
// unknown token yields nil.
func (t StaticTokens) Identify(r *http.Request) *domain.UserIdentity {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return nil
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	for known, name := range t {
		if subtle.ConstantTimeCompare([]byte(known), []byte(token)) == 1 {
			return &domain.UserIdentity{Subject: tokenSubject(known), Name: name, Staff: true}
		}
	}
	return nil
}

// tokenSubject is a stable, non-secret identifier for a token.
func tokenSubject(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:" + hex.EncodeToString(sum[:6])
}
