package auth

import (
	"testing"
	"time"
)

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := IssueRefreshToken("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	username, ok := RedeemRefreshToken(token)
	if !ok {
		t.Fatal("expected token to be redeemable")
	}
	if username != "alice" {
		t.Errorf("expected alice, got %q", username)
	}

	if _, ok := RedeemRefreshToken(token); ok {
		t.Error("expected token to be single-use")
	}
}

func TestRedeemUnknownToken(t *testing.T) {
	if _, ok := RedeemRefreshToken("no-such-token"); ok {
		t.Error("expected unknown token rejected")
	}
}

func TestCleanExpiredRefreshTokens(t *testing.T) {
	token, err := IssueRefreshToken("bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cleanExpiredRefreshTokens(time.Now().Add(refreshTokenTTL + time.Minute))

	if _, ok := RedeemRefreshToken(token); ok {
		t.Error("expected expired token cleaned up")
	}
}
