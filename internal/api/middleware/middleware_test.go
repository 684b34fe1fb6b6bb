package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/voltgrid/market-platform/internal/core/domain"
	"github.com/voltgrid/market-platform/internal/core/ports"
)

// stubSessions serves a fixed session snapshot.
type stubSessions struct {
	session domain.Session
}

func (s *stubSessions) SignIn(context.Context, string, string) (domain.Session, error) {
	return s.session, nil
}
func (s *stubSessions) SignUp(context.Context, ports.SignUpInput) (domain.Session, error) {
	return s.session, nil
}
func (s *stubSessions) SignOut() domain.Session { return s.session }
func (s *stubSessions) UpdateProfile(ports.ProfileUpdate) (domain.Session, error) {
	return s.session, nil
}
func (s *stubSessions) SwitchUserType(context.Context, domain.Role) (domain.Session, error) {
	return s.session, nil
}
func (s *stubSessions) Session() domain.Session { return s.session }

func signedIn(role domain.Role) *stubSessions {
	return &stubSessions{session: domain.Session{
		User:          &domain.User{ID: "u1", Role: role},
		Authenticated: true,
	}}
}

func newContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireSession_Allows(t *testing.T) {
	c, rec := newContext(t)

	called := false
	mw := RequireSession(signedIn(domain.RoleConsumer))
	handler := mw(func(c echo.Context) error {
		called = true
		if u, ok := c.Get("user").(*domain.User); !ok || u.ID != "u1" {
			t.Fatalf("identity not injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireSession_Rejects(t *testing.T) {
	c, _ := newContext(t)

	mw := RequireSession(&stubSessions{})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestPermit_Allows(t *testing.T) {
	c, rec := newContext(t)

	called := false
	mw := Permit(signedIn(domain.RoleOperator), domain.ActionAccessAdmin)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("operator with access_admin must pass, got %d", rec.Code)
	}
}

func TestPermit_Forbids(t *testing.T) {
	c, rec := newContext(t)

	mw := Permit(signedIn(domain.RoleConsumer), domain.ActionAccessAdmin)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestPermit_NoSession(t *testing.T) {
	c, _ := newContext(t)

	mw := Permit(&stubSessions{}, domain.ActionAccessAdmin)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 before 403, got %v", err)
	}
}
