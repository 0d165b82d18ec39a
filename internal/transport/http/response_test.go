package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"order not found", service.ErrOrderNotFound, http.StatusNotFound},
		{"item not found", service.ErrItemNotFound, http.StatusNotFound},
		{"vendor not found", service.ErrVendorNotFound, http.StatusNotFound},
		{"product not found", &service.ProductNotFoundError{ProductID: uuid.New()}, http.StatusNotFound},
		{"insufficient stock", &service.InsufficientStockError{ProductName: "Bissap", Requested: 5, Available: 2}, http.StatusBadRequest},
		{"product unavailable", &service.ProductUnavailableError{ProductName: "Miel"}, http.StatusBadRequest},
		{"empty items", service.ErrEmptyItems, http.StatusBadRequest},
		{"invalid transition", service.ErrInvalidTransition, http.StatusBadRequest},
		{"already cancelled", service.ErrAlreadyCancelled, http.StatusBadRequest},
		{"unknown", errors.New("pg: connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg, _ := statusForError(tc.err, false)
			require.Equal(t, tc.status, status)
			require.NotEmpty(t, msg)
		})
	}
}

func TestStatusForError_InternalDetailOnlyInDev(t *testing.T) {
	boom := errors.New("pg: connection reset")

	_, msg, detail := statusForError(boom, false)
	require.Equal(t, "une erreur interne est survenue", msg)
	require.Empty(t, detail)

	_, _, detail = statusForError(boom, true)
	require.Equal(t, boom.Error(), detail)
}

func TestStatusForError_WrappedErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), service.ErrOrderNotFound)
	status, _, _ := statusForError(wrapped, false)
	require.Equal(t, http.StatusNotFound, status)
}
