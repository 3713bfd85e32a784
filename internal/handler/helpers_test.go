package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskboard/taskboard-go/internal/clock"
	"github.com/taskboard/taskboard-go/internal/crypto"
	"github.com/taskboard/taskboard-go/internal/repository"
	"github.com/taskboard/taskboard-go/internal/service"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	clock   *clock.FakeClock
	tokens  *crypto.TokenIssuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctx := context.Background()
	db, err := repository.NewDB(ctx, repository.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := repository.Migrate(ctx, db, repository.DriverSQLite); err != nil {
		t.Fatalf("Migrate() unexpected error: %v", err)
	}

	clk := clock.Fake(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	tokens := crypto.NewTokenIssuer("test-secret", 0, clk)
	projectRepo := repository.NewProjectRepository(db)

	h := NewRouter(t.Context(), Deps{
		Auth:     service.NewAuthService(repository.NewUserRepository(db), tokens, clk),
		Projects: service.NewProjectService(projectRepo, clk),
		Tasks:    service.NewTaskService(projectRepo, repository.NewTaskRepository(db), clk),
		Tokens:   tokens,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return &testServer{t: t, handler: h, clock: clk, tokens: tokens}
}

// do sends a request and returns the recorder. body is JSON-encoded unless it
// is already a string.
func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			s.t.Fatalf("encoding body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	r := httptest.NewRequest(method, path, reader)
	if reader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	return w
}

// register creates an account and returns its token.
func (s *testServer) register(email string) string {
	s.t.Helper()

	w := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
	})
	if w.Code != http.StatusCreated {
		s.t.Fatalf("register status = %d, body = %s", w.Code, w.Body)
	}

	var resp struct {
		Token string `json:"token"`
	}
	decode(s.t, w, &resp)
	return resp.Token
}

func (s *testServer) createProject(token, name string) int64 {
	s.t.Helper()

	w := s.do(http.MethodPost, "/projects", token, map[string]string{"name": name})
	if w.Code != http.StatusCreated {
		s.t.Fatalf("create project status = %d, body = %s", w.Code, w.Body)
	}

	var p struct {
		ID int64 `json:"id"`
	}
	decode(s.t, w, &p)
	return p.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding %q: %v", w.Body.String(), err)
	}
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	decode(t, w, &body)
	return body.Error
}
