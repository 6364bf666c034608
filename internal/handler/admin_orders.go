package handler

import (
	"net/http"

	"iptv-storefront/internal/dto"
	"iptv-storefront/internal/repository"
	"iptv-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	orderService service.OrderService
}

func NewAdminOrderHandler(orderService service.OrderService) *AdminOrderHandler {
	return &AdminOrderHandler{
		orderService: orderService,
	}
}

func (h *AdminOrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	filter := repository.OrderFilter{
		PaymentStatus: c.QueryParam("status"),
		Search:        c.QueryParam("search"),
	}

	orders, err := h.orderService.List(ctx, filter)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *AdminOrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.Get(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *AdminOrderHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	order, err := h.orderService.Update(ctx, c.Param("id"), &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *AdminOrderHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.orderService.Delete(ctx, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

func (h *AdminOrderHandler) Activate(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.Activate(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Order marked as delivered",
		"order":   order,
	})
}
