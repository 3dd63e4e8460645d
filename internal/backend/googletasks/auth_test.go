package googletasks_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"tasklane/internal/backend/googletasks"
	"tasklane/internal/config"
)

func writeClient(t *testing.T, dir, tokenURI string) {
	t.Helper()
	body := fmt.Sprintf(`{"installed":{"client_id":"id","client_secret":"secret","redirect_uris":["http://localhost"],"token_uri":%q}}`, tokenURI)
	if err := os.WriteFile(filepath.Join(dir, "oauth_client.json"), []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestOAuthConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Dir: dir}

	if _, err := googletasks.OAuthConfig(cfg); !errors.Is(err, googletasks.ErrNoOAuthClient) {
		t.Errorf("expected ErrNoOAuthClient, got %v", err)
	}

	writeClient(t, dir, "https://oauth2.example.com/token")
	oc, err := googletasks.OAuthConfig(cfg)
	if err != nil {
		t.Fatalf("OAuthConfig: %v", err)
	}
	if len(oc.Scopes) != 1 || oc.Scopes[0] != googletasks.Scope {
		t.Errorf("scopes = %v", oc.Scopes)
	}
	if oc.Endpoint.TokenURL != "https://oauth2.example.com/token" {
		t.Errorf("token URL = %q", oc.Endpoint.TokenURL)
	}

	if err := os.WriteFile(cfg.OAuthClientPath(), []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := googletasks.OAuthConfig(cfg); err == nil {
		t.Error("expected error for a client file without credentials")
	}
}

func TestSaveAndLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	tok := &oauth2.Token{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"}

	if err := googletasks.SaveToken(path, tok); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := googletasks.LoadToken(path)
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if got.AccessToken != "a" || got.RefreshToken != "r" {
		t.Errorf("loaded %+v", got)
	}

	if err := os.WriteFile(path, []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := googletasks.LoadToken(path); err == nil {
		t.Error("expected error for a corrupt token")
	}
}

func TestTokenValid(t *testing.T) {
	var refreshes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		if err := r.ParseForm(); err != nil || r.Form.Get("refresh_token") != "good" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"fresh","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfg := &config.Config{Dir: dir}
	writeClient(t, dir, srv.URL)
	expired := time.Now().Add(-time.Hour)

	tests := []struct {
		name    string
		token   *oauth2.Token
		want    bool
		refresh bool
	}{
		{"no refresh token", &oauth2.Token{AccessToken: "x", Expiry: expired}, false, false},
		{"refreshable", &oauth2.Token{AccessToken: "x", RefreshToken: "good", Expiry: expired}, true, true},
		{"revoked", &oauth2.Token{AccessToken: "x", RefreshToken: "bad", Expiry: expired}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refreshes.Store(0)
			if err := googletasks.SaveToken(cfg.TokenPath(), tt.token); err != nil {
				t.Fatal(err)
			}
			if got := googletasks.TokenValid(context.Background(), cfg); got != tt.want {
				t.Errorf("TokenValid = %v, want %v", got, tt.want)
			}
			if (refreshes.Load() > 0) != tt.refresh {
				t.Errorf("refreshes = %d", refreshes.Load())
			}
		})
	}
}
