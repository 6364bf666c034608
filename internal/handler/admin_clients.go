package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"iptv-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type AdminClientHandler struct {
	clientService service.ClientService
}

func NewAdminClientHandler(clientService service.ClientService) *AdminClientHandler {
	return &AdminClientHandler{
		clientService: clientService,
	}
}

func (h *AdminClientHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	search := c.QueryParam("search")

	resp, err := h.clientService.List(ctx, page, limit, search)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *AdminClientHandler) Export(c echo.Context) error {
	ctx := c.Request().Context()

	csvData, err := h.clientService.ExportCSV(ctx)
	if err != nil {
		return writeError(c, err)
	}

	filename := fmt.Sprintf("clients_%s.csv", time.Now().Format("2006_01_02"))
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))

	return c.Blob(http.StatusOK, "text/csv", csvData)
}

func (h *AdminClientHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.clientService.Delete(ctx, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Client deleted successfully"})
}
