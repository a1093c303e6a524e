package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/dossierhub/internal/app/system/auth"
	"go.uber.org/zap"
)

func TestRequireSignedIn_NoUser_Returns401(t *testing.T) {
	handler := auth.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("protected content"))
	}))

	req := httptest.NewRequest("GET", "/api/documents/my-latest", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Errorf("expected failure envelope, got %q", rec.Body.String())
	}
}

func TestRequireSignedIn_WithUser_Proceeds(t *testing.T) {
	called := false
	handler := auth.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := withTestUser(httptest.NewRequest("GET", "/api/documents/my-latest", nil), "member")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireRole_NoUser_Returns401(t *testing.T) {
	handler := auth.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/db/files/purge", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireRole_WrongRole_Returns403(t *testing.T) {
	handler := auth.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := withTestUser(httptest.NewRequest("POST", "/api/db/files/purge", nil), "member")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Errorf("expected failure envelope, got %q", rec.Body.String())
	}
}

func TestRequireRole_CorrectRole_Proceeds(t *testing.T) {
	called := false
	handler := auth.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := withTestUser(httptest.NewRequest("POST", "/api/db/files/purge", nil), "admin")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	handler := auth.RequireRole("admin", "analyst")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		role     string
		expected int
	}{
		{"admin", http.StatusOK},
		{"analyst", http.StatusOK},
		{"member", http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.role, func(t *testing.T) {
			req := withTestUser(httptest.NewRequest("GET", "/api/db/files", nil), tc.role)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.expected {
				t.Errorf("role %q: expected status %d, got %d", tc.role, tc.expected, rec.Code)
			}
		})
	}
}

func TestRequireRole_CaseInsensitive(t *testing.T) {
	handler := auth.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := withTestUser(httptest.NewRequest("GET", "/api/db/files", nil), "ADMIN")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d for uppercase role, got %d", http.StatusOK, rec.Code)
	}
}

func TestCurrentUser_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	user, ok := auth.CurrentUser(req)

	if ok {
		t.Error("expected ok to be false when no user in context")
	}
	if user != nil {
		t.Error("expected user to be nil when no user in context")
	}
}

func TestCurrentUser_WithUser(t *testing.T) {
	req := withTestUser(httptest.NewRequest("GET", "/", nil), "admin")

	user, ok := auth.CurrentUser(req)

	if !ok {
		t.Error("expected ok to be true when user in context")
	}
	if user == nil {
		t.Fatal("expected user to not be nil")
	}
	if user.Role != "admin" {
		t.Errorf("expected role 'admin', got %q", user.Role)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	if err := auth.InitSessionStore("0123456789abcdef0123456789abcdef", "", false, zap.NewNop()); err != nil {
		t.Fatalf("InitSessionStore failed: %v", err)
	}

	u := auth.SessionUser{
		ID:    "507f1f77bcf86cd799439011",
		Name:  "Marie Dupont",
		Email: "marie@example.com",
		Role:  "member",
	}

	// Sign in and capture the cookie
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/session", nil)
	if err := auth.SignIn(rec, req, u); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	// A request carrying the cookie should have the user loaded
	var got *auth.SessionUser
	handler := auth.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	req = httptest.NewRequest("GET", "/api/documents/my-latest", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected user loaded from session cookie")
	}
	if got.ID != u.ID || got.Role != u.Role || got.Email != u.Email {
		t.Errorf("loaded user: got %+v, want %+v", got, u)
	}

	// Signing out clears the session
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/session/signout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if err := auth.SignOut(rec, req); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	got = nil
	req = httptest.NewRequest("GET", "/api/documents/my-latest", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if got != nil {
		t.Errorf("expected no user after sign-out, got %+v", got)
	}
}

// withTestUser injects a SessionUser into the request context for testing.
// This simulates what LoadSessionUser middleware does.
func withTestUser(r *http.Request, role string) *http.Request {
	user := &auth.SessionUser{
		ID:    "507f1f77bcf86cd799439011", // Valid ObjectID hex
		Name:  "Test User",
		Email: "test@example.com",
		Role:  role,
	}
	return auth.WithTestUser(r, user)
}
