package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	api "github.com/rogerio-castellano/pantry-tracker/internal/http"
	handler "github.com/rogerio-castellano/pantry-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/pantry-tracker/internal/http/rate_limiter"
)

func TestRegisterHandler(t *testing.T) {
	t.Cleanup(clearAll)
	rl.CleanupAllVisitors()
	r := api.NewRouter()

	w := serve(r, newUnauthenticatedPost("/register", `{"username":"alice","password":"wonderland"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.RegisterResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token in the register response")
	}

	// same username again
	w = serve(r, newUnauthenticatedPost("/register", `{"username":"alice","password":"wonderland"}`))
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate username, got %d", w.Code)
	}
}

func TestRegisterHandler_ShortCredentials(t *testing.T) {
	t.Cleanup(clearAll)
	rl.CleanupAllVisitors()
	r := api.NewRouter()

	tests := []struct {
		name    string
		payload string
	}{
		{"short username", `{"username":"ab","password":"longenough"}`},
		{"short password", `{"username":"bob","password":"pw"}`},
		{"missing credentials", `{"username":"","password":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, newUnauthenticatedPost("/register", tt.payload))
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	t.Cleanup(clearAll)
	rl.CleanupAllVisitors()
	r := api.NewRouter()

	w := serve(r, newUnauthenticatedPost("/login", `{"username":"admin","password":"wrong"}`))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong password, got %d", w.Code)
	}

	w = serve(r, newUnauthenticatedPost("/login", `{"username":"nobody","password":"whatever"}`))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown user, got %d", w.Code)
	}
}

func TestRefreshHandler_SingleUse(t *testing.T) {
	t.Cleanup(clearAll)
	rl.CleanupAllVisitors()
	r := api.NewRouter()

	w := serve(r, newUnauthenticatedPost("/login", `{"username":"admin","password":"secret"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	var login handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&login); err != nil {
		t.Fatalf("error decoding login response: %v", err)
	}
	if login.RefreshToken == "" {
		t.Fatal("expected a refresh token from login")
	}

	body, _ := json.Marshal(handler.RefreshRequest{RefreshToken: login.RefreshToken})
	w = serve(r, newUnauthenticatedPost("/refresh", string(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on refresh, got %d: %s", w.Code, w.Body.String())
	}
	var refreshed handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&refreshed); err != nil {
		t.Fatalf("error decoding refresh response: %v", err)
	}
	if refreshed.Token == "" || refreshed.RefreshToken == "" {
		t.Error("expected a fresh token pair")
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("expected a rotated refresh token")
	}

	// the original refresh token is spent
	w = serve(r, newUnauthenticatedPost("/refresh", string(body)))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 reusing a redeemed refresh token, got %d", w.Code)
	}
}

func TestRefreshHandler_InvalidToken(t *testing.T) {
	t.Cleanup(clearAll)
	rl.CleanupAllVisitors()
	r := api.NewRouter()

	w := serve(r, newUnauthenticatedPost("/refresh", `{"refresh_token":"deadbeef"}`))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown refresh token, got %d", w.Code)
	}

	w = serve(r, newUnauthenticatedPost("/refresh", `{}`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing refresh token, got %d", w.Code)
	}
}

func TestAuthEndpointsAreRateLimited(t *testing.T) {
	t.Cleanup(clearAll)
	rl.CleanupAllVisitors()
	r := api.NewRouter()

	limited := false
	for i := 0; i < 10; i++ {
		w := serve(r, newUnauthenticatedPost("/login", `not json`))
		if w.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("expected at least one 429 after a burst of requests")
	}
}
