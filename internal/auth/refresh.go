package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

const refreshTokenTTL = 24 * time.Hour

type refreshEntry struct {
	Username  string
	ExpiresAt time.Time
}

var (
	refreshTokenStore = map[string]refreshEntry{}
	mu                sync.Mutex
)

// IssueRefreshToken creates an opaque refresh token for the user.
func IssueRefreshToken(username string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	mu.Lock()
	refreshTokenStore[token] = refreshEntry{
		Username:  username,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	mu.Unlock()

	return token, nil
}

// RedeemRefreshToken exchanges a refresh token for the username it was issued
// to and rotates it out of the store. Returns ok=false for unknown or expired
// tokens.
func RedeemRefreshToken(token string) (string, bool) {
	mu.Lock()
	defer mu.Unlock()

	entry, ok := refreshTokenStore[token]
	if !ok {
		return "", false
	}
	delete(refreshTokenStore, token)

	if time.Now().After(entry.ExpiresAt) {
		return "", false
	}
	return entry.Username, true
}

// StartRefreshTokenCleaner drops expired refresh tokens on the given interval.
// Intended to run as a goroutine for the lifetime of the process.
func StartRefreshTokenCleaner(interval time.Duration) {
	for {
		time.Sleep(interval)
		cleanExpiredRefreshTokens(time.Now())
	}
}

func cleanExpiredRefreshTokens(now time.Time) {
	mu.Lock()
	for token, entry := range refreshTokenStore {
		if now.After(entry.ExpiresAt) {
			delete(refreshTokenStore, token)
		}
	}
	mu.Unlock()
}
