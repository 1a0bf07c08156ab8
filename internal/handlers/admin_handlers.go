package handlers

import (
	"errors"
	"net/http"

	"giftnest/internal/common"
	"giftnest/internal/services"

	"github.com/labstack/echo/v4"
)

// AdminHandlers is the family-admin surface: child and gift management
// inside the admin's own family. Tenant scope always comes from the
// session, never from the request.
type AdminHandlers struct {
	childService services.ChildService
	giftService  services.GiftService
}

func NewAdminHandlers(childService services.ChildService, giftService services.GiftService) *AdminHandlers {
	return &AdminHandlers{
		childService: childService,
		giftService:  giftService,
	}
}

func (h *AdminHandlers) Dashboard(c echo.Context) error {
	ident, _ := common.IdentityFromContext(c.Request().Context())

	children, err := h.childService.ListForFamily(c.Request().Context(), *ident.FamilyID)
	if err != nil {
		return common.SendServerError(c, "Failed to load children")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"family_name": ident.FamilyName,
		"admin_email": ident.AdminEmail,
		"children":    children,
	})
}

func (h *AdminHandlers) CreateChild(c echo.Context) error {
	ident, _ := common.IdentityFromContext(c.Request().Context())

	var req services.CreateChildRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	child, err := h.childService.Create(c.Request().Context(), *ident.FamilyID, &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, child)
}

func (h *AdminHandlers) UpdateChild(c echo.Context) error {
	ident, _ := common.IdentityFromContext(c.Request().Context())

	childID, err := common.ValidateUUID(c.Param("id"), "child id")
	if err != nil {
		return common.SendNotFoundError(c, "Child")
	}

	var req services.CreateChildRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	child, err := h.childService.Update(c.Request().Context(), *ident.FamilyID, childID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Child")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, child)
}

// DeleteChild removes the child and every gift under them, including
// soft-deleted ones. There is no undo.
func (h *AdminHandlers) DeleteChild(c echo.Context) error {
	ident, _ := common.IdentityFromContext(c.Request().Context())

	childID, err := common.ValidateUUID(c.Param("id"), "child id")
	if err != nil {
		return common.SendNotFoundError(c, "Child")
	}

	if err := h.childService.Delete(c.Request().Context(), *ident.FamilyID, childID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Child")
		}
		return common.SendServerError(c, "Failed to delete child")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Child deleted"})
}

func (h *AdminHandlers) CreateGift(c echo.Context) error {
	ident, _ := common.IdentityFromContext(c.Request().Context())

	childID, err := common.ValidateUUID(c.Param("id"), "child id")
	if err != nil {
		return common.SendNotFoundError(c, "Child")
	}

	var req services.GiftRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	gift, err := h.giftService.Create(c.Request().Context(), *ident.FamilyID, childID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Child")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, gift)
}

func (h *AdminHandlers) UpdateGift(c echo.Context) error {
	ident, _ := common.IdentityFromContext(c.Request().Context())

	giftID, err := common.ValidateUUID(c.Param("id"), "gift id")
	if err != nil {
		return common.SendNotFoundError(c, "Gift")
	}

	var req services.GiftRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	gift, err := h.giftService.Update(c.Request().Context(), *ident.FamilyID, giftID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Gift")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, gift)
}

// DeleteGift soft-deletes; the gift disappears from family views but can
// be restored by a superadmin.
func (h *AdminHandlers) DeleteGift(c echo.Context) error {
	ident, _ := common.IdentityFromContext(c.Request().Context())

	giftID, err := common.ValidateUUID(c.Param("id"), "gift id")
	if err != nil {
		return common.SendNotFoundError(c, "Gift")
	}

	if err := h.giftService.SoftDelete(c.Request().Context(), *ident.FamilyID, giftID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Gift")
		}
		return common.SendServerError(c, "Failed to delete gift")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Gift deleted"})
}
