package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUsersMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/users/me" {
			t.Errorf("Expected /api/users/me, got %s", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"user": {
				"email": "jane@example.com",
				"name": "Jane Doe",
				"uid": "u1a2b3c4",
				"profile_image": "https://gyazo.com/avatars/u1a2b3c4.png"
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "token")
	user, err := client.Users().Me(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if user.Email != "jane@example.com" {
		t.Errorf("Email = %q, want jane@example.com", user.Email)
	}
	if user.Name != "Jane Doe" {
		t.Errorf("Name = %q, want Jane Doe", user.Name)
	}
	if user.UID != "u1a2b3c4" {
		t.Errorf("UID = %q, want u1a2b3c4", user.UID)
	}
	if user.ProfileImage != "https://gyazo.com/avatars/u1a2b3c4.png" {
		t.Errorf("ProfileImage = %q", user.ProfileImage)
	}
}

func TestUsersMeUnwrapsEnvelope(t *testing.T) {
	// Top-level fields outside the "user" envelope must be ignored.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"email": "outer@example.com", "user": {"email": "inner@example.com", "uid": "u9"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "token")
	user, err := client.Users().Me(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if user.Email != "inner@example.com" {
		t.Errorf("Email = %q, want the enveloped value", user.Email)
	}
}

func TestUsersMeAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "invalid token"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "bad-token")
	_, err := client.Users().Me(context.Background())
	if err == nil {
		t.Fatal("Expected error")
	}
	if !IsAuthError(err) {
		t.Errorf("Expected auth classification, got %v", err)
	}
}
