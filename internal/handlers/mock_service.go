package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"

	"auth_portal/internal/models"
	"auth_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID     int
	signUpErr    error
	loginSession models.Session
	loginErr     error
	checkSession models.Session
	checkOK      bool

	lastSignUpUsername string
	lastSignUpEmail    string
	lastSignUpPassword string
	lastLoginEmail     string
	lastLoginPassword  string
	lastCheckToken     string
	logoutTokens       []string
}

func (m *mockAuth) SignUp(_ context.Context, username, email, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpEmail = email
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) Login(_ context.Context, email, password string) (models.Session, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginSession, m.loginErr
}

func (m *mockAuth) CheckAuth(token string) (models.Session, bool) {
	m.lastCheckToken = token
	return m.checkSession, m.checkOK
}

func (m *mockAuth) Logout(token string) {
	m.logoutTokens = append(m.logoutTokens, token)
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, "../../web")
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func doJSON(r http.Handler, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: sessionCookieName, Value: token}
}
