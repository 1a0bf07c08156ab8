package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"giftnest/internal/common"
	"giftnest/internal/services"

	"github.com/labstack/echo/v4"
)

// SuperadminHandlers is the platform surface: family and admin lifecycle,
// plus soft-deleted gift review and restore.
type SuperadminHandlers struct {
	familyService services.FamilyService
	giftService   services.GiftService
}

func NewSuperadminHandlers(familyService services.FamilyService, giftService services.GiftService) *SuperadminHandlers {
	return &SuperadminHandlers{
		familyService: familyService,
		giftService:   giftService,
	}
}

func (h *SuperadminHandlers) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	families, err := h.familyService.List(ctx, parseIntQuery(c, "limit", 100), parseIntQuery(c, "offset", 0))
	if err != nil {
		return common.SendServerError(c, "Failed to load families")
	}
	deletedCount, err := h.giftService.CountDeleted(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to count deleted gifts")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"families":           families,
		"deleted_gift_count": deletedCount,
	})
}

func (h *SuperadminHandlers) CreateFamily(c echo.Context) error {
	var req services.CreateFamilyRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	family, err := h.familyService.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, family)
}

func (h *SuperadminHandlers) UpdateFamily(c echo.Context) error {
	familyID, err := common.ValidateUUID(c.Param("id"), "family id")
	if err != nil {
		return common.SendNotFoundError(c, "Family")
	}

	var req services.UpdateFamilyRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	family, err := h.familyService.Update(c.Request().Context(), familyID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Family")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, family)
}

// DeactivateFamily suspends logins for the family and its admins without
// touching data.
func (h *SuperadminHandlers) DeactivateFamily(c echo.Context) error {
	familyID, err := common.ValidateUUID(c.Param("id"), "family id")
	if err != nil {
		return common.SendNotFoundError(c, "Family")
	}

	if err := h.familyService.Deactivate(c.Request().Context(), familyID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Family")
		}
		return common.SendServerError(c, "Failed to deactivate family")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Family deactivated"})
}

func (h *SuperadminHandlers) ReactivateFamily(c echo.Context) error {
	familyID, err := common.ValidateUUID(c.Param("id"), "family id")
	if err != nil {
		return common.SendNotFoundError(c, "Family")
	}

	if err := h.familyService.Reactivate(c.Request().Context(), familyID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Family")
		}
		return common.SendServerError(c, "Failed to reactivate family")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Family reactivated"})
}

func (h *SuperadminHandlers) ListAdmins(c echo.Context) error {
	familyID, err := common.ValidateUUID(c.Param("id"), "family id")
	if err != nil {
		return common.SendNotFoundError(c, "Family")
	}

	admins, err := h.familyService.ListAdmins(c.Request().Context(), familyID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Family")
		}
		return common.SendServerError(c, "Failed to load admins")
	}
	return c.JSON(http.StatusOK, admins)
}

func (h *SuperadminHandlers) CreateAdmin(c echo.Context) error {
	familyID, err := common.ValidateUUID(c.Param("id"), "family id")
	if err != nil {
		return common.SendNotFoundError(c, "Family")
	}

	var req services.AdminRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	admin, err := h.familyService.CreateAdmin(c.Request().Context(), familyID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Family")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, admin)
}

func (h *SuperadminHandlers) UpdateAdmin(c echo.Context) error {
	adminID, err := common.ValidateUUID(c.Param("id"), "admin id")
	if err != nil {
		return common.SendNotFoundError(c, "Admin")
	}

	var req services.AdminRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	admin, err := h.familyService.UpdateAdmin(c.Request().Context(), adminID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return common.SendNotFoundError(c, "Admin")
		case errors.Is(err, services.ErrLastAdmin):
			return common.SendClientError(c, "Cannot deactivate the family's only active admin")
		default:
			return common.SendClientError(c, err.Error())
		}
	}
	return c.JSON(http.StatusOK, admin)
}

// DeleteAdmin refuses to remove a family's last active admin so no family
// ends up unmanageable.
func (h *SuperadminHandlers) DeleteAdmin(c echo.Context) error {
	adminID, err := common.ValidateUUID(c.Param("id"), "admin id")
	if err != nil {
		return common.SendNotFoundError(c, "Admin")
	}

	if err := h.familyService.DeleteAdmin(c.Request().Context(), adminID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return common.SendNotFoundError(c, "Admin")
		case errors.Is(err, services.ErrLastAdmin):
			return common.SendClientError(c, "Cannot delete the family's only active admin")
		default:
			return common.SendServerError(c, "Failed to delete admin")
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Admin deleted"})
}

// ListDeletedGifts shows soft-deleted gifts across every family, most
// recently deleted first.
func (h *SuperadminHandlers) ListDeletedGifts(c echo.Context) error {
	ctx := c.Request().Context()

	gifts, err := h.giftService.ListDeleted(ctx, parseIntQuery(c, "limit", 50), parseIntQuery(c, "offset", 0))
	if err != nil {
		return common.SendServerError(c, "Failed to load deleted gifts")
	}
	total, err := h.giftService.CountDeleted(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to count deleted gifts")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"gifts": gifts,
		"total": total,
	})
}

func (h *SuperadminHandlers) RestoreGift(c echo.Context) error {
	giftID, err := common.ValidateUUID(c.Param("id"), "gift id")
	if err != nil {
		return common.SendNotFoundError(c, "Gift")
	}

	if err := h.giftService.Restore(c.Request().Context(), giftID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Gift")
		}
		return common.SendServerError(c, "Failed to restore gift")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Gift restored"})
}

func parseIntQuery(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
