package handlers

import (
	"net/http"

	"giftnest/internal/common"
	"giftnest/internal/services"

	"github.com/labstack/echo/v4"
)

type ImageHandlers struct {
	imageService services.ImageService
}

func NewImageHandlers(imageService services.ImageService) *ImageHandlers {
	return &ImageHandlers{imageService: imageService}
}

type FetchImageRequest struct {
	ProductURL string `json:"product_url" form:"product_url"`
}

// FetchProductImage resolves a product link to a preview image for the
// gift form. Blocked retailers come back with an iframe fallback marker
// instead of an image URL.
func (h *ImageHandlers) FetchProductImage(c echo.Context) error {
	var req FetchImageRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.ProductURL == "" {
		return common.SendValidationError(c, "product_url", "Product URL is required")
	}

	result, err := h.imageService.FetchProductImage(c.Request().Context(), req.ProductURL)
	if err != nil {
		return common.SendClientError(c, "Invalid product URL")
	}
	return c.JSON(http.StatusOK, result)
}
