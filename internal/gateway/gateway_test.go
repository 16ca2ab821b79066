package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tasktrack/webapp/internal/core/domain"
)

type stubSession struct {
	access  string
	refresh string
	cleared bool
	notes   []domain.Notification
}

func (s *stubSession) AccessToken() string          { return s.access }
func (s *stubSession) RefreshToken() string         { return s.refresh }
func (s *stubSession) SetAccessToken(token string)  { s.access = token }
func (s *stubSession) Clear()                       { s.access, s.refresh, s.cleared = "", "", true }
func (s *stubSession) Notify(n domain.Notification) { s.notes = append(s.notes, n) }

func TestGateway_AttachesBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g := New(srv.URL, 0, zerolog.Nop())
	sess := &stubSession{access: "tok-123"}

	if err := g.Do(context.Background(), sess, Request{Method: http.MethodGet, Path: "/tasks/"}, nil); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if got != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

func TestGateway_NoTokenNoHeader(t *testing.T) {
	var got string
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, present = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g := New(srv.URL, 0, zerolog.Nop())
	sess := &stubSession{}

	if err := g.Do(context.Background(), sess, Request{Method: http.MethodGet, Path: "/tasks/"}, nil); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if present || got != "" {
		t.Fatalf("expected no Authorization header, got %q", got)
	}
}

func TestGateway_RefreshAndReplayOn401(t *testing.T) {
	var refreshCalls, protectedCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		if r.Header.Get("Authorization") != "" {
			t.Errorf("refresh exchange must be unauthenticated")
		}
		var body struct {
			Refresh string `json:"refresh"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Refresh != "refresh-ok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access": "fresh-token"})
	})
	mux.HandleFunc("/tasks/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&protectedCalls, 1)
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Given token not valid for any token type"}`))
			return
		}
		w.Write([]byte(`[{"id": 1}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g := New(srv.URL, 0, zerolog.Nop())
	sess := &stubSession{access: "stale-token", refresh: "refresh-ok"}

	body, err := g.DoRaw(context.Background(), sess, Request{Method: http.MethodGet, Path: "/tasks/"})
	if err != nil {
		t.Fatalf("DoRaw returned error: %v", err)
	}
	if string(body) != `[{"id": 1}]` {
		t.Fatalf("unexpected body: %s", body)
	}
	if n := atomic.LoadInt32(&refreshCalls); n != 1 {
		t.Fatalf("expected exactly 1 refresh attempt, got %d", n)
	}
	if n := atomic.LoadInt32(&protectedCalls); n != 2 {
		t.Fatalf("expected original call plus one replay, got %d calls", n)
	}
	if sess.access != "fresh-token" {
		t.Fatalf("new access token not persisted, have %q", sess.access)
	}
	if sess.refresh != "refresh-ok" {
		t.Fatalf("refresh token must survive a refresh, have %q", sess.refresh)
	}
	if len(sess.notes) != 0 {
		t.Fatalf("successful recovery must not notify, got %v", sess.notes)
	}
}

func TestGateway_ReplayedRequestNeverRefreshesTwice(t *testing.T) {
	var refreshCalls, protectedCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		json.NewEncoder(w).Encode(map[string]string{"access": "fresh-token"})
	})
	mux.HandleFunc("/tasks/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&protectedCalls, 1)
		// Upstream keeps rejecting even the fresh token.
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "account disabled"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g := New(srv.URL, 0, zerolog.Nop())
	sess := &stubSession{access: "stale-token", refresh: "refresh-ok"}

	_, err := g.DoRaw(context.Background(), sess, Request{Method: http.MethodGet, Path: "/tasks/"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected terminal ErrUnauthorized, got %v", err)
	}
	if n := atomic.LoadInt32(&refreshCalls); n != 1 {
		t.Fatalf("replayed request must not refresh again, got %d refreshes", n)
	}
	if n := atomic.LoadInt32(&protectedCalls); n != 2 {
		t.Fatalf("expected exactly one replay, got %d calls", n)
	}
	if len(sess.notes) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(sess.notes))
	}
	if sess.notes[0].Message != "account disabled" {
		t.Fatalf("expected payload detail surfaced, got %q", sess.notes[0].Message)
	}
}

func TestGateway_RefreshFailureClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Token is invalid or expired"}`))
	})
	mux.HandleFunc("/tasks/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g := New(srv.URL, 0, zerolog.Nop())
	sess := &stubSession{access: "stale-token", refresh: "dead-refresh"}

	_, err := g.DoRaw(context.Background(), sess, Request{Method: http.MethodGet, Path: "/tasks/"})
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if !sess.cleared || sess.access != "" || sess.refresh != "" {
		t.Fatalf("expected both tokens cleared, have access=%q refresh=%q", sess.access, sess.refresh)
	}
	if len(sess.notes) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(sess.notes))
	}
}

func TestGateway_401WithoutRefreshTokenSurfacesDetail(t *testing.T) {
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "No active account found with the given credentials"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g := New(srv.URL, 0, zerolog.Nop())
	sess := &stubSession{}

	_, err := g.DoRaw(context.Background(), sess, Request{
		Method: http.MethodPost,
		Path:   "/auth/login/",
		Body:   map[string]string{"username": "alice", "password": "wrong"},
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if n := atomic.LoadInt32(&refreshCalls); n != 0 {
		t.Fatalf("a session without a refresh token must never attempt a refresh, got %d", n)
	}
	if sess.cleared {
		t.Fatalf("session must not be cleared on a failed unauthenticated call")
	}
	if len(sess.notes) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(sess.notes))
	}
	if sess.notes[0].Message != "No active account found with the given credentials" {
		t.Fatalf("expected upstream detail surfaced, got %q", sess.notes[0].Message)
	}
}

func TestGateway_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	g := New(srv.URL, 0, zerolog.Nop())
	sess := &stubSession{}

	err := g.Do(context.Background(), sess, Request{Method: http.MethodGet, Path: "/tasks/"}, nil)
	if !errors.Is(err, domain.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
	if len(sess.notes) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(sess.notes))
	}
}

func TestGateway_DecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 7, "username": "alice", "role": "admin"}`))
	}))
	defer srv.Close()

	g := New(srv.URL, 0, zerolog.Nop())
	var user domain.User
	if err := g.Do(context.Background(), &stubSession{}, Request{Method: http.MethodGet, Path: "/auth/profile/"}, &user); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if user.ID != 7 || user.Username != "alice" || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
}
