package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestRegisterThenMe(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "a@b.com",
		"password": "password123",
		"name":     "A",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201; body = %s", w.Code, w.Body)
	}

	var reg struct {
		User struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
		Token string `json:"token"`
	}
	decode(t, w, &reg)
	if reg.Token == "" {
		t.Fatal("expected a token")
	}

	w = s.do(http.MethodGet, "/auth/me", reg.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d, want 200; body = %s", w.Code, w.Body)
	}

	var me map[string]any
	decode(t, w, &me)
	if me["email"] != "a@b.com" || me["name"] != "A" || me["id"] != float64(reg.User.ID) {
		t.Errorf("me = %v, want id %d email a@b.com name A", me, reg.User.ID)
	}
	if _, ok := me["password_hash"]; ok {
		t.Error("me exposes password hash")
	}
}

func TestRegister_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "nope",
		"password": "123",
		"name":     "  ",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var body struct {
		Error  string `json:"error"`
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	decode(t, w, &body)

	if body.Error != "Validation failed" {
		t.Errorf("error = %q, want %q", body.Error, "Validation failed")
	}
	want := []string{"email", "password", "name"}
	if len(body.Errors) != len(want) {
		t.Fatalf("errors = %+v, want one per field %v", body.Errors, want)
	}
	for i, field := range want {
		if body.Errors[i].Field != field {
			t.Errorf("errors[%d].field = %q, want %q", i, body.Errors[i].Field, field)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	s.register("a@b.com")

	w := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "A@B.com",
		"password": "password123",
		"name":     "Again",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Email already registered" {
		t.Errorf("error = %q, want %q", msg, "Email already registered")
	}
}

func TestRegister_BadBodies(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "malformed json", body: `{"email":`, wantStatus: http.StatusBadRequest, wantError: "invalid request body"},
		{name: "wrong type", body: `{"email": 42}`, wantStatus: http.StatusBadRequest, wantError: "invalid request body"},
		{name: "empty body", body: ``, wantStatus: http.StatusBadRequest, wantError: "Validation failed"},
		{
			name:       "too large",
			body:       `{"name":"` + strings.Repeat("x", maxBodyBytes) + `"}`,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantError:  "request body too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/auth/register", "", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body = %s", w.Code, tt.wantStatus, w.Body)
			}
			if msg := errorMessage(t, w); msg != tt.wantError {
				t.Errorf("error = %q, want %q", msg, tt.wantError)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.register("a@b.com")

	w := s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "a@b.com", "password": "password123"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body)
	}

	var resp struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	decode(t, w, &resp)

	claims, err := s.tokens.Verify(resp.Token)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("token user_id = %d, want %d", claims.UserID, resp.User.ID)
	}
}

func TestLogin_Failures(t *testing.T) {
	s := newTestServer(t)
	s.register("a@b.com")

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
		wantError  string
	}{
		{
			name:       "wrong password",
			body:       map[string]string{"email": "a@b.com", "password": "wrong-password"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid email or password",
		},
		{
			name:       "unknown email",
			body:       map[string]string{"email": "ghost@b.com", "password": "password123"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid email or password",
		},
		{
			name:       "missing password",
			body:       map[string]string{"email": "a@b.com"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/auth/login", "", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if msg := errorMessage(t, w); msg != tt.wantError {
				t.Errorf("error = %q, want %q", msg, tt.wantError)
			}
		})
	}
}

func TestMe_Unauthorized(t *testing.T) {
	s := newTestServer(t)
	token := s.register("a@b.com")

	expired := newTestServer(t)
	stale := expired.register("old@b.com")
	expired.clock.Advance(8 * 24 * time.Hour)

	tests := []struct {
		name      string
		server    *testServer
		token     string
		wantError string
	}{
		{name: "no token", server: s, wantError: "Authentication required"},
		{name: "garbage token", server: s, token: "abc.def.ghi", wantError: "Invalid or expired token"},
		{name: "tampered token", server: s, token: token + "x", wantError: "Invalid or expired token"},
		{name: "expired token", server: expired, token: stale, wantError: "Invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.server.do(http.MethodGet, "/auth/me", tt.token, nil)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			if msg := errorMessage(t, w); msg != tt.wantError {
				t.Errorf("error = %q, want %q", msg, tt.wantError)
			}
		})
	}
}

func TestMe_UserGone(t *testing.T) {
	s := newTestServer(t)

	token, err := s.tokens.Issue(999, "ghost@b.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	w := s.do(http.MethodGet, "/auth/me", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if msg := errorMessage(t, w); msg != "User not found" {
		t.Errorf("error = %q, want %q", msg, "User not found")
	}
}
