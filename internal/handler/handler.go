package handler

import (
	"errors"
	"log"
	"net/http"

	"iptv-storefront/internal/client"
	"iptv-storefront/internal/repository"
	"iptv-storefront/internal/service"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// writeError translates service errors into the flat JSON error bodies the
// API exposes: 400 validation, 401 auth, 404 lookup miss, 409 conflict,
// 502 provider failure, 500 otherwise.
func writeError(c echo.Context, err error) error {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": validationErr.Message})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrInvalidSignature):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid signature"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	case errors.Is(err, service.ErrOrderNotPaid):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrVersionConflict):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, client.ErrNoPaymentLink):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No payment link found for plan"})
	case errors.Is(err, client.ErrUpstream):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Payment provider unavailable. Please try again."})
	default:
		log.Printf("handler error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
