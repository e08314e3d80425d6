package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/example/studytrack/internal/core"
)

var (
	errMissingToken = echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed jwt")
	errInvalidToken = echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired jwt")
	errRateLimited  = echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
	errInvalidID    = echo.NewHTTPError(http.StatusBadRequest, "invalid id")
)

// newHTTPErrorHandler maps service errors to status codes. Anything it does not
// recognise is a server error and gets logged.
func newHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			code    int
			message interface{}
			herr    *echo.HTTPError
			verrs   validator.ValidationErrors
			vErr    *core.ValidationError
		)

		switch {
		case errors.As(err, &herr):
			if inner, ok := herr.Internal.(*echo.HTTPError); ok {
				herr = inner
			}
			code = herr.Code
			message = herr.Message
		case core.IsNotFound(err):
			code = http.StatusNotFound
			message = "not found"
		case errors.As(err, &verrs):
			fldErrs := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fldErrs[fe.Field()] = fe.Translate(core.Translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case errors.As(err, &vErr):
			if vErr.Fields != nil {
				fldErrs := make(map[string]string, len(vErr.Fields))
				for _, fe := range vErr.Fields {
					fldErrs[fe.Field] = fe.Error
				}
				message = fldErrs
			} else {
				message = vErr.Error()
			}
			code = http.StatusBadRequest
		case errors.Is(err, core.ErrInvalidInput):
			code = http.StatusBadRequest
			message = err.Error()
		default:
			code = http.StatusInternalServerError
			message = http.StatusText(code)
			logger.Error("request failed",
				"err", err,
				"method", c.Request().Method,
				"path", c.Path(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		} else if fields, ok := message.(map[string]string); ok {
			message = echo.Map{"error": "validation failed", "fields": fields}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, message)
		}
		if err != nil {
			logger.Error("failed to write error response", "err", err)
		}
	}
}
