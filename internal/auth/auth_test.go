package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	s := NewService("secret")
	token, err := s.IssueToken("plotter-1")
	if err != nil {
		t.Fatal(err)
	}
	subject, err := s.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if subject != "plotter-1" {
		t.Errorf("got subject %q, want plotter-1", subject)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	s := NewService("secret")
	token, err := s.IssueToken("plotter-1")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewService("other").ValidateToken(token); err == nil {
		t.Error("accepted a token signed with another secret")
	}
	if _, err := s.ValidateToken("garbage"); err == nil {
		t.Error("accepted garbage")
	}

	later := NewService("secret")
	later.now = func() time.Time { return time.Now().Add(2 * tokenTTL) }
	if _, err := later.ValidateToken(token); err == nil {
		t.Error("accepted an expired token")
	}

	if _, err := s.IssueToken(""); !errors.Is(err, ErrEmptySubject) {
		t.Errorf("IssueToken(\"\") = %v, want ErrEmptySubject", err)
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := NewService("secret")
	token, err := s.IssueToken("plotter-1")
	if err != nil {
		t.Fatal(err)
	}

	var seen string
	h := s.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Token " + token, http.StatusUnauthorized},
		{"Bearer nope", http.StatusUnauthorized},
		{"Bearer " + token, http.StatusNoContent},
	}
	for _, tt := range tests {
		seen = ""
		req := httptest.NewRequest(http.MethodGet, "/api/drawings", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.status {
			t.Errorf("header %q: got status %d, want %d", tt.header, rec.Code, tt.status)
		}
		if tt.status == http.StatusNoContent && seen != "plotter-1" {
			t.Errorf("header %q: handler saw subject %q", tt.header, seen)
		}
	}
}
