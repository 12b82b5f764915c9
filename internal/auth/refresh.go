package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type refreshEntry struct {
	subject   string
	expiresAt time.Time
}

var (
	refreshTokens = map[string]refreshEntry{}
	mu            sync.Mutex
)

// NewRefreshToken issues an opaque refresh token for the given subject.
func NewRefreshToken(subject string) string {
	token := uuid.NewString()
	mu.Lock()
	refreshTokens[token] = refreshEntry{subject: subject, expiresAt: time.Now().Add(refreshTokenTTL)}
	mu.Unlock()
	return token
}

// RedeemRefreshToken returns the subject a refresh token was issued for, or
// false when the token is unknown or expired.
func RedeemRefreshToken(token string) (string, bool) {
	mu.Lock()
	defer mu.Unlock()

	entry, ok := refreshTokens[token]
	if !ok {
		return "", false
	}
	if time.Now().After(entry.expiresAt) {
		delete(refreshTokens, token)
		return "", false
	}
	return entry.subject, true
}

// StartRefreshTokenCleaner drops expired refresh tokens on an interval.
func StartRefreshTokenCleaner(interval time.Duration) {
	for {
		time.Sleep(interval)
		now := time.Now()
		mu.Lock()
		for token, entry := range refreshTokens {
			if now.After(entry.expiresAt) {
				delete(refreshTokens, token)
			}
		}
		mu.Unlock()
	}
}
