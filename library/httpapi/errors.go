package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-circulation-go/library/features/cart"
	"github.com/AntonStoeckl/library-circulation-go/library/features/desk"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// ErrMissingSession is returned when a request has no valid X-Member-ID header.
var ErrMissingSession = errors.New("missing session")

const (
	msgInternalError     = "internal error"
	msgUnauthorized      = "unauthorized"
	msgInvalidJSON       = "invalid JSON"
	logMsgResponseFailed = "http: writing error response failed"
)

// requestValidator adapts go-playground/validator to echo.Validator.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error: "+err.Error()).SetInternal(err)
	}

	return nil
}

// bindAndValidate decodes the JSON body into req and validates it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidJSON).SetInternal(err)
	}

	return c.Validate(req)
}

// statusForKind maps the kind of a business rule error to its HTTP status.
func statusForKind(kind error) int {
	switch {
	case errors.Is(kind, core.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(kind, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, core.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse maps err to a status and a body. Details of infrastructure errors are not exposed.
// An interrupted batch still reports the items that were processed.
func errorResponse(err error) (int, echo.Map) {
	var interrupted desk.BatchInterruptedError
	if errors.As(err, &interrupted) {
		return http.StatusInternalServerError, echo.Map{
			"message":  msgInternalError,
			"items":    interrupted.Processed.Items,
			"failedAt": interrupted.ItemID,
		}
	}

	var ruleErr core.BusinessRuleError
	if errors.As(err, &ruleErr) {
		return statusForKind(ruleErr.Kind), echo.Map{"message": ruleErr.Reason}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, echo.Map{"message": fmt.Sprint(httpErr.Message)}
	}

	switch {
	case errors.Is(err, ErrMissingSession):
		return http.StatusUnauthorized, echo.Map{"message": msgUnauthorized}
	case errors.Is(err, cart.ErrUnknownCategory), errors.Is(err, cart.ErrEmptySessionID):
		return http.StatusBadRequest, echo.Map{"message": err.Error()}
	default:
		return http.StatusInternalServerError, echo.Map{"message": msgInternalError}
	}
}

func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}

		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), logMsgResponseFailed, "error", writeErr.Error())
		}
	}
}
