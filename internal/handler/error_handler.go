package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "blogapp/internal/errors"
	"blogapp/internal/logger"
)

// NewHTTPErrorHandler maps handler errors to responses. Server errors are logged with
// their oops context while the client only sees the generic message.
func NewHTTPErrorHandler(mapper apperrors.Mapper, log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *apperrors.HTTPError
		var echoErr *echo.HTTPError
		switch {
		case errors.As(err, &echoErr):
			// Routing and binding errors raised by echo itself.
			msg, ok := echoErr.Message.(string)
			if !ok {
				msg = http.StatusText(echoErr.Code)
			}
			httpErr = apperrors.NewHTTPError(echoErr.Code, msg, strings.ToUpper(strings.ReplaceAll(http.StatusText(echoErr.Code), " ", "_")))
		default:
			httpErr = mapper.Map(err)
		}

		if httpErr.StatusCode >= http.StatusInternalServerError {
			apperrors.LogError(log.Logger, "request failed", err,
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
		}

		if werr := writeError(c, httpErr); werr != nil {
			log.Error("write error response", "error", werr)
		}
	}
}

func writeError(c echo.Context, httpErr *apperrors.HTTPError) error {
	if c.Request().Method == http.MethodHead {
		return c.NoContent(httpErr.StatusCode)
	}
	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.String(httpErr.StatusCode, httpErr.Message)
}
