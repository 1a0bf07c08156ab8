package middleware

import (
	"net/http"
	"time"

	"giftnest/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "giftnest_session"
	SessionTTL        = 24 * time.Hour

	familyLoginPath     = "/family-login"
	adminLoginPath      = "/admin-login"
	superadminLoginPath = "/superadmin-login"
)

// SessionClaims is the JWT payload behind the session cookie. The three
// slots are independent; empty means not logged in at that tier.
type SessionClaims struct {
	FamilyID     string `json:"fid,omitempty"`
	FamilyName   string `json:"fname,omitempty"`
	AdminID      string `json:"aid,omitempty"`
	AdminEmail   string `json:"aemail,omitempty"`
	SuperadminID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts the claims into the request-scoped identity. Malformed
// IDs are dropped rather than failing the request; the guard middleware
// redirects as if that slot were empty.
func (c *SessionClaims) Identity() *common.Identity {
	ident := &common.Identity{
		FamilyName: c.FamilyName,
		AdminEmail: c.AdminEmail,
	}
	if id, err := uuid.Parse(c.FamilyID); err == nil {
		ident.FamilyID = &id
	}
	if id, err := uuid.Parse(c.AdminID); err == nil {
		ident.AdminID = &id
	}
	if id, err := uuid.Parse(c.SuperadminID); err == nil {
		ident.SuperadminID = &id
	}
	return ident
}

// Session parses the session cookie on every request. Anonymous requests
// and bad tokens continue with no identity; access control is the guards'
// job, not the parser's.
func Session(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:             secret,
		TokenLookup:            "cookie:" + SessionCookieName,
		ContinueOnIgnoredError: true,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &SessionClaims{}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*SessionClaims)
			if !ok {
				return
			}
			ctx := common.WithIdentity(c.Request().Context(), claims.Identity())
			c.SetRequest(c.Request().WithContext(ctx))
		},
	})
}

// IssueSession signs the identity into the session cookie. Callers merge
// slots before issuing, so logging in at one tier keeps the others.
func IssueSession(c echo.Context, secret []byte, ident *common.Identity, ttl time.Duration) error {
	claims := &SessionClaims{
		FamilyName: ident.FamilyName,
		AdminEmail: ident.AdminEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	if ident.FamilyID != nil {
		claims.FamilyID = ident.FamilyID.String()
	}
	if ident.AdminID != nil {
		claims.AdminID = ident.AdminID.String()
	}
	if ident.SuperadminID != nil {
		claims.SuperadminID = ident.SuperadminID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
	})
	return nil
}

// ClearSession drops the cookie, logging out every tier at once.
func ClearSession(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// RequireFamily redirects to the family login unless the session has a
// family slot. Guards redirect rather than erroring so a stale session
// lands on a login form, not a JSON error.
func RequireFamily(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := common.IdentityFromContext(c.Request().Context())
		if !ok || !ident.HasFamily() {
			return c.Redirect(http.StatusFound, familyLoginPath)
		}
		return next(c)
	}
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := common.IdentityFromContext(c.Request().Context())
		if !ok || !ident.HasAdmin() {
			return c.Redirect(http.StatusFound, adminLoginPath)
		}
		return next(c)
	}
}

func RequireSuperadmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := common.IdentityFromContext(c.Request().Context())
		if !ok || !ident.HasSuperadmin() {
			return c.Redirect(http.StatusFound, superadminLoginPath)
		}
		return next(c)
	}
}
