package handler

import (
	"io"
	"net/http"

	"iptv-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

const signatureHeader = "x-nowpayments-sig"

type WebhookHandler struct {
	paymentService service.PaymentService
}

func NewWebhookHandler(paymentService service.PaymentService) *WebhookHandler {
	return &WebhookHandler{
		paymentService: paymentService,
	}
}

func (h *WebhookHandler) NowPayments(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	signature := c.Request().Header.Get(signatureHeader)
	if err := h.paymentService.HandleIPN(ctx, body, signature); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
