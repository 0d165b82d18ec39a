package http

import (
	"errors"
	"net/http"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message, detail string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Message: message, Error: detail})
}

// statusForError maps service errors onto the HTTP surface. Business-rule
// violations stay 400 with their own message; everything unexpected is an
// opaque 500, detailed only in development mode.
func statusForError(err error, isDev bool) (int, string, string) {
	var stockErr *service.InsufficientStockError
	var notFoundErr *service.ProductNotFoundError
	var unavailableErr *service.ProductUnavailableError

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "authentification requise", err.Error()
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "accès refusé", err.Error()

	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrVendorNotFound):
		return http.StatusNotFound, "ressource introuvable", err.Error()
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, "produit introuvable", err.Error()

	case errors.As(err, &stockErr):
		return http.StatusBadRequest, "stock insuffisant", err.Error()
	case errors.As(err, &unavailableErr):
		return http.StatusBadRequest, "produit indisponible", err.Error()

	case errors.Is(err, service.ErrEmptyItems),
		errors.Is(err, service.ErrQuantityInvalid),
		errors.Is(err, service.ErrDuplicateProduct),
		errors.Is(err, service.ErrAddressRequired),
		errors.Is(err, service.ErrPhoneRequired),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrDuplicatePayment),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyCancelled),
		errors.Is(err, service.ErrAlreadyDelivered),
		errors.Is(err, service.ErrPriceInvalid),
		errors.Is(err, service.ErrNameRequired):
		return http.StatusBadRequest, "requête invalide", err.Error()
	}

	detail := ""
	if isDev {
		detail = err.Error()
	}
	return http.StatusInternalServerError, "une erreur interne est survenue", detail
}
