package handler

import (
	"net/http"
	"time"

	"iptv-storefront/internal/dto"
	"iptv-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.CheckoutResponse{
			Success: false,
			Error:   "invalid request body",
		})
	}

	resp, err := h.checkoutService.Checkout(ctx, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// PaymentLinks lets operators verify the configured static invoice links.
func (h *CheckoutHandler) PaymentLinks(c echo.Context) error {
	links := h.checkoutService.PaymentLinks()

	type linkInfo struct {
		Plan string `json:"plan"`
		URL  string `json:"url"`
	}
	out := make([]linkInfo, 0, len(links))
	for plan, url := range links {
		out = append(out, linkInfo{Plan: plan, URL: url})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"paymentLinks": out,
		"timestamp":    time.Now().Format(time.RFC3339),
	})
}
