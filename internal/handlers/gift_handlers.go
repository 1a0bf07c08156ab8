package handlers

import (
	"errors"
	"net/http"

	"giftnest/internal/common"
	"giftnest/internal/services"

	"github.com/labstack/echo/v4"
)

// GiftHandlers is the family-facing read surface plus purchase marking.
// Any logged-in family member can use these; no admin tier required.
type GiftHandlers struct {
	childService services.ChildService
	giftService  services.GiftService
}

func NewGiftHandlers(childService services.ChildService, giftService services.GiftService) *GiftHandlers {
	return &GiftHandlers{
		childService: childService,
		giftService:  giftService,
	}
}

type PurchaseRequest struct {
	BuyerName string `json:"buyer_name" form:"buyer_name"`
}

// FamilyHome lists the family's children.
func (h *GiftHandlers) FamilyHome(c echo.Context) error {
	ident, _ := common.IdentityFromContext(c.Request().Context())

	children, err := h.childService.ListForFamily(c.Request().Context(), *ident.FamilyID)
	if err != nil {
		return common.SendServerError(c, "Failed to load children")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"family_name": ident.FamilyName,
		"children":    children,
	})
}

// ChildDetail shows one child with their gift list, unpurchased first.
// A child from another family 404s the same as a missing one.
func (h *GiftHandlers) ChildDetail(c echo.Context) error {
	ident, _ := common.IdentityFromContext(c.Request().Context())

	childID, err := common.ValidateUUID(c.Param("id"), "child id")
	if err != nil {
		return common.SendNotFoundError(c, "Child")
	}

	ctx := c.Request().Context()
	child, err := h.childService.Get(ctx, *ident.FamilyID, childID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Child")
		}
		return common.SendServerError(c, "Failed to load child")
	}

	gifts, err := h.giftService.ListForChild(ctx, *ident.FamilyID, childID)
	if err != nil {
		return common.SendServerError(c, "Failed to load gifts")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"child": child,
		"gifts": gifts,
	})
}

// Purchase marks a gift as bought. The buyer name is required so the rest
// of the family can see who has it covered.
func (h *GiftHandlers) Purchase(c echo.Context) error {
	ident, _ := common.IdentityFromContext(c.Request().Context())

	giftID, err := common.ValidateUUID(c.Param("id"), "gift id")
	if err != nil {
		return common.SendNotFoundError(c, "Gift")
	}

	var req PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	err = h.giftService.Purchase(c.Request().Context(), *ident.FamilyID, giftID, req.BuyerName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBuyerNameRequired):
			return common.SendValidationError(c, "buyer_name", "Please enter your name")
		case errors.Is(err, services.ErrNotFound):
			return common.SendNotFoundError(c, "Gift")
		default:
			return common.SendServerError(c, "Failed to mark gift as purchased")
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Gift marked as purchased"})
}

// Unmark reverts a purchase, for when plans fall through.
func (h *GiftHandlers) Unmark(c echo.Context) error {
	ident, _ := common.IdentityFromContext(c.Request().Context())

	giftID, err := common.ValidateUUID(c.Param("id"), "gift id")
	if err != nil {
		return common.SendNotFoundError(c, "Gift")
	}

	err = h.giftService.Unmark(c.Request().Context(), *ident.FamilyID, giftID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Gift")
		}
		return common.SendServerError(c, "Failed to unmark gift")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Purchase unmarked"})
}
