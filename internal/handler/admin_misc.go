package handler

import (
	"net/http"

	"iptv-storefront/internal/dto"
	"iptv-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type AdminAnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAdminAnalyticsHandler(analyticsService service.AnalyticsService) *AdminAnalyticsHandler {
	return &AdminAnalyticsHandler{
		analyticsService: analyticsService,
	}
}

func (h *AdminAnalyticsHandler) Analytics(c echo.Context) error {
	ctx := c.Request().Context()

	report, err := h.analyticsService.Report(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, report)
}

func (h *AdminAnalyticsHandler) Traffic(c echo.Context) error {
	ctx := c.Request().Context()

	report, err := h.analyticsService.Traffic(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, report)
}

type AdminSettingsHandler struct {
	settingsService service.SettingsService
}

func NewAdminSettingsHandler(settingsService service.SettingsService) *AdminSettingsHandler {
	return &AdminSettingsHandler{
		settingsService: settingsService,
	}
}

func (h *AdminSettingsHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	settings, err := h.settingsService.Get(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, settings)
}

func (h *AdminSettingsHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	settings, err := h.settingsService.Update(ctx, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, settings)
}
