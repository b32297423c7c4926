package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/edutrack/exam-prediction/internal/core/domain"
	"github.com/edutrack/exam-prediction/internal/core/service"
)

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func request(t *testing.T, target string, header string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if header != "" {
		req.Header.Set(SessionHeader, header)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestSession_MissingOrUnknown(t *testing.T) {
	sessions := service.NewSessionRegistry()
	mw := Session(sessions)(okHandler)

	for _, target := range []string{"/api/students", "/api/students?session_id=nope"} {
		err := mw(request(t, target, ""))
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %v", target, err)
		}
	}
}

func TestSession_InjectsIdentity(t *testing.T) {
	sessions := service.NewSessionRegistry()
	identity := domain.Identity{ID: 1, Username: "alice", Role: domain.RoleUser}
	sid := sessions.Create(identity)

	var seen domain.Identity
	mw := Session(sessions)(func(c echo.Context) error {
		seen = c.Get(IdentityKey).(domain.Identity)
		return c.NoContent(http.StatusOK)
	})

	if err := mw(request(t, "/api/students", sid)); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if seen != identity {
		t.Fatalf("identity = %+v, want %+v", seen, identity)
	}
}

func TestRequireRole_Split(t *testing.T) {
	sessions := service.NewSessionRegistry()
	userSID := sessions.Create(domain.Identity{ID: 1, Username: "alice", Role: domain.RoleUser})
	adminSID := sessions.Create(domain.Identity{ID: 2, Username: "admin", Role: domain.RoleAdmin})

	mw := RequireRole(sessions, domain.RoleAdmin)(okHandler)

	// Valid session, wrong role: 403.
	err := mw(request(t, "/api/admin/students", userSID))
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user session, got %v", err)
	}

	// Unknown session: 401, never 403.
	err = mw(request(t, "/api/admin/students", "bogus"))
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown session, got %v", err)
	}

	if err := mw(request(t, "/api/admin/students", adminSID)); err != nil {
		t.Fatalf("admin session rejected: %v", err)
	}
}

func TestSessionID_Sources(t *testing.T) {
	e := echo.New()

	// Header wins over query parameter.
	req := httptest.NewRequest(http.MethodGet, "/x?session_id=fromquery", nil)
	req.Header.Set(SessionHeader, "fromheader")
	if sid := SessionID(e.NewContext(req, httptest.NewRecorder())); sid != "fromheader" {
		t.Fatalf("sid = %q, want fromheader", sid)
	}

	req = httptest.NewRequest(http.MethodGet, "/x?session_id=fromquery", nil)
	if sid := SessionID(e.NewContext(req, httptest.NewRecorder())); sid != "fromquery" {
		t.Fatalf("sid = %q, want fromquery", sid)
	}

	form := url.Values{"session_id": {"fromform"}}
	req = httptest.NewRequest(http.MethodPost, "/x", nil)
	req.PostForm = form
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if sid := SessionID(e.NewContext(req, httptest.NewRecorder())); sid != "fromform" {
		t.Fatalf("sid = %q, want fromform", sid)
	}
}
