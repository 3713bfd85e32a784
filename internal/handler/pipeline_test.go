package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPipeline_StepsRunInOrderAndStopOnError(t *testing.T) {
	var calls []string
	step := func(name string, err error) Step {
		return func(_ http.ResponseWriter, r *http.Request) (*http.Request, error) {
			calls = append(calls, name)
			return r, err
		}
	}
	endpoint := func(r *http.Request) (int, any, error) {
		calls = append(calls, "endpoint")
		return http.StatusOK, map[string]string{"ok": "yes"}, nil
	}

	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	w := httptest.NewRecorder()
	Pipeline(log, endpoint, step("a", nil), step("b", nil))(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := strings.Join(calls, ","); got != "a,b,endpoint" {
		t.Errorf("calls = %s, want a,b,endpoint", got)
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	calls = nil
	w = httptest.NewRecorder()
	Pipeline(log, endpoint, step("a", errInvalidBody), step("b", nil))(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := strings.Join(calls, ","); got != "a" {
		t.Errorf("calls = %s, want a", got)
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPipeline_UnknownErrorIsLoggedAs500(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	endpoint := func(r *http.Request) (int, any, error) {
		return 0, nil, errors.New("connection refused")
	}

	w := httptest.NewRecorder()
	Pipeline(log, endpoint)(w, httptest.NewRequest(http.MethodGet, "/projects", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Internal server error" {
		t.Errorf("error = %q, want %q", msg, "Internal server error")
	}
	if !strings.Contains(buf.String(), "connection refused") {
		t.Errorf("log missing cause: %s", buf.String())
	}
}

func TestBound_MissingValue(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if v := bound[struct{ X int }](r); v != nil {
		t.Errorf("bound() = %v, want nil", v)
	}
}
