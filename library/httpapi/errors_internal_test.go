package httpapi

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/library/features/desk"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

func Test_errorResponse(t *testing.T) {
	processed := desk.BatchResult{Items: []desk.ItemResult{{ItemID: "i-1", Outcome: desk.OutcomeSuccess}}}

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   echo.Map
	}{
		{
			name:           "business rule conflict",
			err:            core.NewConflict("CheckingOutItemFailed", "item is checked out"),
			expectedStatus: http.StatusConflict,
			expectedBody:   echo.Map{"message": "item is checked out"},
		},
		{
			name:           "missing session",
			err:            ErrMissingSession,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   echo.Map{"message": msgUnauthorized},
		},
		{
			name:           "infrastructure error hides details",
			err:            errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   echo.Map{"message": msgInternalError},
		},
		{
			name: "interrupted batch reports the processed items",
			err: desk.BatchInterruptedError{
				Processed: processed,
				ItemID:    "i-2",
				Err:       errors.New("connection refused"),
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody: echo.Map{
				"message":  msgInternalError,
				"items":    processed.Items,
				"failedAt": "i-2",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := errorResponse(tc.err)

			assert.Equal(t, tc.expectedStatus, status)
			assert.Equal(t, tc.expectedBody, body)
		})
	}
}
