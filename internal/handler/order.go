package handler

import (
	"net/http"

	"iptv-storefront/internal/dto"
	"iptv-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

// OrderHandler serves the public order surface used by the storefront and
// manual testing: listing, minimal creation, and the mark-paid shortcut.
type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	summaries, err := h.orderService.ListSummaries(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": summaries,
	})
}

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	order, product, err := h.orderService.CreateTestOrder(ctx, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orderId":       order.ID,
		"productName":   product.Name,
		"paymentStatus": order.PaymentStatus,
	})
}

func (h *OrderHandler) MarkPaid(c echo.Context) error {
	ctx := c.Request().Context()

	resp, err := h.orderService.MarkPaid(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}
