package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"giftnest/internal/common"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-session-secret")

func issueCookie(t *testing.T, ident *common.Identity) *http.Cookie {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, IssueSession(c, testSecret, ident, time.Hour))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, SessionCookieName, cookies[0].Name)
	return cookies[0]
}

func TestSessionRoundTrip(t *testing.T) {
	familyID := uuid.New()
	adminID := uuid.New()
	cookie := issueCookie(t, &common.Identity{
		FamilyID:   &familyID,
		FamilyName: "The Parkers",
		AdminID:    &adminID,
		AdminEmail: "mom@example.com",
	})

	e := echo.New()
	e.Use(Session(testSecret))
	e.GET("/whoami", func(c echo.Context) error {
		ident, ok := common.IdentityFromContext(c.Request().Context())
		require.True(t, ok)
		assert.Equal(t, familyID, *ident.FamilyID)
		assert.Equal(t, "The Parkers", ident.FamilyName)
		assert.Equal(t, adminID, *ident.AdminID)
		assert.Equal(t, "mom@example.com", ident.AdminEmail)
		assert.False(t, ident.HasSuperadmin())
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionAnonymousContinues(t *testing.T) {
	e := echo.New()
	e.Use(Session(testSecret))
	e.GET("/public", func(c echo.Context) error {
		_, ok := common.IdentityFromContext(c.Request().Context())
		assert.False(t, ok)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionTamperedCookieIsAnonymous(t *testing.T) {
	familyID := uuid.New()
	cookie := issueCookie(t, &common.Identity{FamilyID: &familyID})
	cookie.Value += "x"

	e := echo.New()
	e.Use(Session(testSecret))
	e.GET("/family", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RequireFamily)

	req := httptest.NewRequest(http.MethodGet, "/family", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/family-login", rec.Header().Get("Location"))
}

// Guards redirect to the matching login page rather than returning an
// error status.
func TestGuardsRedirectAnonymous(t *testing.T) {
	e := echo.New()
	e.Use(Session(testSecret))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/family", ok, RequireFamily)
	e.GET("/admin", ok, RequireAdmin)
	e.GET("/superadmin", ok, RequireSuperadmin)

	cases := map[string]string{
		"/family":     "/family-login",
		"/admin":      "/admin-login",
		"/superadmin": "/superadmin-login",
	}
	for path, loginPath := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, loginPath, rec.Header().Get("Location"), path)
	}
}

// A family session does not satisfy the admin guard, and an admin session
// carries the family slot with it.
func TestGuardTiers(t *testing.T) {
	familyID := uuid.New()
	familyCookie := issueCookie(t, &common.Identity{FamilyID: &familyID})

	e := echo.New()
	e.Use(Session(testSecret))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/family", ok, RequireFamily)
	e.GET("/admin", ok, RequireAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(familyCookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin-login", rec.Header().Get("Location"))

	adminID := uuid.New()
	adminCookie := issueCookie(t, &common.Identity{FamilyID: &familyID, AdminID: &adminID})

	for _, path := range []string{"/family", "/admin"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(adminCookie)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestClearSessionExpiresCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ClearSession(c)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
