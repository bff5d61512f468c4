package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"auth_portal/internal/models"
	"auth_portal/internal/service"
)

func decodeBody(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("invalid JSON body %q: %v", b, err)
	}
	return m
}

func TestSignUpHandler(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		auth        *mockAuth
		wantStatus  int
		wantSuccess bool
		wantMessage string
	}{
		{
			name:        "success",
			body:        `{"username":"alice","email":"a@x.com","password":"secret1"}`,
			auth:        &mockAuth{signUpID: 42},
			wantStatus:  http.StatusCreated,
			wantSuccess: true,
			wantMessage: msgSignupOK,
		},
		{
			name:        "missing fields",
			body:        `{"username":"","email":"","password":""}`,
			auth:        &mockAuth{signUpErr: &service.ValidationError{Msg: msgAllFieldsRequired}},
			wantStatus:  http.StatusBadRequest,
			wantMessage: msgAllFieldsRequired,
		},
		{
			name:        "duplicate user",
			body:        `{"username":"alice","email":"a@x.com","password":"secret1"}`,
			auth:        &mockAuth{signUpErr: service.ErrUserExists},
			wantStatus:  http.StatusConflict,
			wantMessage: msgUserExists,
		},
		{
			name:        "pre-check store failure",
			body:        `{"username":"alice","email":"a@x.com","password":"secret1"}`,
			auth:        &mockAuth{signUpErr: fmt.Errorf("%w: check existing user: db down", service.ErrStore)},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: msgDatabaseError,
		},
		{
			name:        "insert failure",
			body:        `{"username":"alice","email":"a@x.com","password":"secret1"}`,
			auth:        &mockAuth{signUpErr: fmt.Errorf("%w: db down", service.ErrCreateUser)},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: msgCreateUserFailed,
		},
		{
			name:        "unclassified failure",
			body:        `{"username":"alice","email":"a@x.com","password":"secret1"}`,
			auth:        &mockAuth{signUpErr: errors.New("hash blew up")},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: msgServerError,
		},
		{
			name:        "malformed body",
			body:        `{"username":1}`,
			auth:        &mockAuth{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: msgAllFieldsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: tt.auth})

			w := doJSON(r, http.MethodPost, "/api/signup", tt.body, nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}

			m := decodeBody(t, w.Body.Bytes())
			if got, _ := m["success"].(bool); got != tt.wantSuccess {
				t.Fatalf("success=%v, want %v", got, tt.wantSuccess)
			}
			if m["message"] != tt.wantMessage {
				t.Fatalf("message=%v, want %q", m["message"], tt.wantMessage)
			}
			if tt.wantSuccess {
				if int(m["userId"].(float64)) != 42 {
					t.Fatalf("expected userId=42, got %v", m["userId"])
				}
			}
		})
	}
}

func TestLogInHandler_SuccessSetsSessionCookie(t *testing.T) {
	auth := &mockAuth{
		loginSession: models.Session{
			Token:     "tok123",
			UserID:    7,
			Username:  "alice",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doJSON(r, http.MethodPost, "/api/login", `{"email":"a@x.com","password":"secret1"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	m := decodeBody(t, w.Body.Bytes())
	if m["success"] != true || m["username"] != "alice" {
		t.Fatalf("unexpected body: %v", m)
	}
	if auth.lastLoginEmail != "a@x.com" {
		t.Fatalf("expected login with a@x.com, got %q", auth.lastLoginEmail)
	}

	var found *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookieName {
			found = ck
		}
	}
	if found == nil {
		t.Fatalf("expected %s cookie, got %v", sessionCookieName, w.Result().Cookies())
	}
	if found.Value != "tok123" {
		t.Fatalf("cookie value=%q, want tok123", found.Value)
	}
	if !found.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	if found.MaxAge < 3595 || found.MaxAge > 3600 {
		t.Fatalf("cookie MaxAge=%d, want ~3600 (1h session)", found.MaxAge)
	}
}

// The cookie lifetime must follow the session TTL, not a fixed hour.
func TestLogInHandler_CookieMaxAgeTracksSessionExpiry(t *testing.T) {
	auth := &mockAuth{
		loginSession: models.Session{
			Token:     "tok456",
			UserID:    7,
			Username:  "alice",
			ExpiresAt: time.Now().Add(30 * time.Minute),
		},
	}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doJSON(r, http.MethodPost, "/api/login", `{"email":"a@x.com","password":"secret1"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var found *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookieName {
			found = ck
		}
	}
	if found == nil {
		t.Fatalf("expected %s cookie", sessionCookieName)
	}
	if found.MaxAge < 1795 || found.MaxAge > 1800 {
		t.Fatalf("cookie MaxAge=%d, want ~1800 (30m session)", found.MaxAge)
	}
}

func TestLogInHandler_Failures(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		auth        *mockAuth
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "missing fields",
			body:        `{"email":"","password":""}`,
			auth:        &mockAuth{loginErr: &service.ValidationError{Msg: msgEmailPasswordRequired}},
			wantStatus:  http.StatusBadRequest,
			wantMessage: msgEmailPasswordRequired,
		},
		{
			name:        "invalid credentials",
			body:        `{"email":"a@x.com","password":"wrong"}`,
			auth:        &mockAuth{loginErr: service.ErrInvalidCredentials},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: msgInvalidCreds,
		},
		{
			name:        "lookup store failure",
			body:        `{"email":"a@x.com","password":"secret1"}`,
			auth:        &mockAuth{loginErr: fmt.Errorf("%w: lookup user: db down", service.ErrStore)},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: msgDatabaseError,
		},
		{
			name:        "unclassified failure",
			body:        `{"email":"a@x.com","password":"secret1"}`,
			auth:        &mockAuth{loginErr: errors.New("session blew up")},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: msgServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: tt.auth})

			w := doJSON(r, http.MethodPost, "/api/login", tt.body, nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}

			m := decodeBody(t, w.Body.Bytes())
			if m["success"] != false || m["message"] != tt.wantMessage {
				t.Fatalf("unexpected body: %v", m)
			}

			// No cookie on failed login.
			for _, ck := range w.Result().Cookies() {
				if ck.Name == sessionCookieName && ck.Value != "" {
					t.Fatalf("failed login must not set a session cookie")
				}
			}
		})
	}
}

func TestCheckAuthHandler(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		auth := &mockAuth{
			checkOK:      true,
			checkSession: models.Session{Token: "tok123", UserID: 7, Username: "alice"},
		}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(r, http.MethodGet, "/api/check-auth", "", sessionCookie("tok123"))
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		m := decodeBody(t, w.Body.Bytes())
		if m["authenticated"] != true || m["username"] != "alice" {
			t.Fatalf("unexpected body: %v", m)
		}
		if auth.lastCheckToken != "tok123" {
			t.Fatalf("expected check with tok123, got %q", auth.lastCheckToken)
		}
	})

	t.Run("unauthenticated never errors", func(t *testing.T) {
		r := newTestRouter(&service.Service{Authorization: &mockAuth{}})

		// With a stale cookie and with no cookie at all.
		for _, ck := range []*http.Cookie{sessionCookie("stale"), nil} {
			w := doJSON(r, http.MethodGet, "/api/check-auth", "", ck)
			if w.Code != http.StatusOK {
				t.Fatalf("status=%d, want 200", w.Code)
			}
			m := decodeBody(t, w.Body.Bytes())
			if m["authenticated"] != false {
				t.Fatalf("expected authenticated=false, got %v", m)
			}
			if _, present := m["username"]; present {
				t.Fatalf("username must be omitted when unauthenticated")
			}
		}
	})
}

func TestLogOutHandler(t *testing.T) {
	auth := &mockAuth{}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doJSON(r, http.MethodGet, "/api/logout", "", sessionCookie("tok123"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	m := decodeBody(t, w.Body.Bytes())
	if m["success"] != true || m["message"] != msgLogoutOK {
		t.Fatalf("unexpected body: %v", m)
	}
	if len(auth.logoutTokens) != 1 || auth.logoutTokens[0] != "tok123" {
		t.Fatalf("expected Logout(tok123), got %v", auth.logoutTokens)
	}

	// Cookie is expired on the client.
	var cleared bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookieName && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected the session cookie to be expired in the response")
	}

	// Logout without any cookie is still a success (idempotent).
	w = doJSON(r, http.MethodGet, "/api/logout", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cookieless logout status=%d", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}})

	w := doJSON(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	m := decodeBody(t, w.Body.Bytes())
	if m["status"] != "ok" {
		t.Fatalf("unexpected body: %v", m)
	}
}
