package handlers

import (
	"errors"
	"net/http"

	"giftnest/internal/common"
	"giftnest/internal/middleware"
	"giftnest/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers covers the three login flows, logout, and the password
// reset endpoints.
type AuthHandlers struct {
	authService  services.AuthService
	resetService services.PasswordResetService
	secret       []byte
}

func NewAuthHandlers(authService services.AuthService, resetService services.PasswordResetService, secret []byte) *AuthHandlers {
	return &AuthHandlers{
		authService:  authService,
		resetService: resetService,
		secret:       secret,
	}
}

type FamilyLoginRequest struct {
	Password string `json:"password" form:"password"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" form:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" form:"token"`
	Password string `json:"password" form:"password"`
}

// Home routes the visitor to their family page or the login form.
func (h *AuthHandlers) Home(c echo.Context) error {
	if ident, ok := common.IdentityFromContext(c.Request().Context()); ok && ident.HasFamily() {
		return c.Redirect(http.StatusFound, "/family")
	}
	return c.Redirect(http.StatusFound, "/family-login")
}

func (h *AuthHandlers) FamilyLoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"page": "family-login"})
}

func (h *AuthHandlers) AdminLoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"page": "admin-login"})
}

func (h *AuthHandlers) SuperadminLoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"page": "superadmin-login"})
}

// FamilyLogin verifies the shared password and fills the family slot,
// keeping whatever other slots the session already holds.
func (h *AuthHandlers) FamilyLogin(c echo.Context) error {
	var req FamilyLoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	family, err := h.authService.FamilyLogin(c.Request().Context(), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid password")
		}
		return common.SendServerError(c, "Login failed")
	}

	ident := currentIdentity(c)
	ident.FamilyID = &family.ID
	ident.FamilyName = family.Name

	if err := middleware.IssueSession(c, h.secret, ident, middleware.SessionTTL); err != nil {
		return common.SendServerError(c, "Failed to create session")
	}
	return c.Redirect(http.StatusFound, "/family")
}

// AdminLogin fills both the admin and family slots, so an admin lands on
// their family page without a second login.
func (h *AuthHandlers) AdminLogin(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	admin, family, err := h.authService.AdminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		}
		return common.SendServerError(c, "Login failed")
	}

	ident := currentIdentity(c)
	ident.AdminID = &admin.ID
	ident.AdminEmail = admin.Email
	ident.FamilyID = &family.ID
	ident.FamilyName = family.Name

	if err := middleware.IssueSession(c, h.secret, ident, middleware.SessionTTL); err != nil {
		return common.SendServerError(c, "Failed to create session")
	}
	return c.Redirect(http.StatusFound, "/admin")
}

func (h *AuthHandlers) SuperadminLogin(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	superadmin, err := h.authService.SuperadminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		}
		return common.SendServerError(c, "Login failed")
	}

	ident := currentIdentity(c)
	ident.SuperadminID = &superadmin.ID

	if err := middleware.IssueSession(c, h.secret, ident, middleware.SessionTTL); err != nil {
		return common.SendServerError(c, "Failed to create session")
	}
	return c.Redirect(http.StatusFound, "/superadmin")
}

// Logout drops the whole session; all three tiers log out together.
func (h *AuthHandlers) Logout(c echo.Context) error {
	middleware.ClearSession(c)
	return c.Redirect(http.StatusFound, "/")
}

// ForgotPassword always answers the same way, whether or not the email is
// registered.
func (h *AuthHandlers) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.resetService.Request(c.Request().Context(), req.Email); err != nil {
		return common.SendServerError(c, "Failed to process request")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "If that email is registered, a reset link has been sent",
	})
}

func (h *AuthHandlers) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	err := h.resetService.Confirm(c.Request().Context(), req.Token, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return common.SendClientError(c, "Invalid or expired reset link")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated"})
}

// currentIdentity returns a copy of the session identity so login handlers
// can merge a new slot without mutating shared state.
func currentIdentity(c echo.Context) *common.Identity {
	if ident, ok := common.IdentityFromContext(c.Request().Context()); ok {
		copied := *ident
		return &copied
	}
	return &common.Identity{}
}
