package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type testUser struct {
	Name  string
	Admin bool
}

func (u *testUser) IsAdmin() bool { return u != nil && u.Admin }

func TestWithUserAndFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	user := &testUser{Name: "alice"}

	r = WithUser(r, user)

	got, ok := FromRequest[*testUser](r)
	if !ok {
		t.Fatal("Expected user on request context")
	}
	if got.Name != "alice" {
		t.Errorf("Expected alice, got %s", got.Name)
	}
}

func TestFromRequestMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := FromRequest[*testUser](r); ok {
		t.Error("Expected no user on a fresh request")
	}
}

func TestFromRequestAsPrincipal(t *testing.T) {
	r := WithUser(httptest.NewRequest(http.MethodGet, "/", nil), &testUser{Admin: true})
	p, ok := FromRequest[Principal](r)
	if !ok {
		t.Fatal("Stored user should satisfy Principal")
	}
	if !p.IsAdmin() {
		t.Error("Expected admin principal")
	}
}

func TestRequireAuth(t *testing.T) {
	called := false
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a user, got %d", w.Code)
	}
	if called {
		t.Error("Handler should not run without a user")
	}

	w = httptest.NewRecorder()
	handler(w, WithUser(httptest.NewRequest(http.MethodGet, "/", nil), &testUser{}))
	if w.Code != http.StatusOK || !called {
		t.Errorf("Expected handler to run with a user, got %d", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a user, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler(w, WithUser(httptest.NewRequest(http.MethodGet, "/", nil), &testUser{Admin: false}))
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-admin, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler(w, WithUser(httptest.NewRequest(http.MethodGet, "/", nil), &testUser{Admin: true}))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for admin, got %d", w.Code)
	}
}
