package web

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"study-planner/internal/service"
)

var errHttpNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")

// appHTTPErrorHandler is a custom echo.HTTPErrorHandler that knows how to handle our errors.
func appHTTPErrorHandler(err error, ctx echo.Context) {
	var code int
	var message interface{}

	switch origErr := errors.Cause(err).(type) {
	case *echo.HTTPError:
		if origErr.Internal != nil {
			if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
				origErr = herr
			}
		}
		code = origErr.Code
		message = origErr.Message
	case *service.InputError:
		code = http.StatusBadRequest
		message = origErr.Error()
	default:
		if errors.Is(err, service.ErrSubjectNotFound) {
			code = http.StatusNotFound
			message = service.ErrSubjectNotFound.Error()
			break
		}
		// any other error is a server error
		code = http.StatusInternalServerError
		message = http.StatusText(http.StatusInternalServerError)
		log.Printf("[error] %s %s: %v", ctx.Request().Method, ctx.Request().URL.Path, err)
	}

	if ctx.Echo().Debug {
		message = err.Error()
	}
	if m, ok := message.(string); ok {
		message = echo.Map{"error": m}
	}

	if !ctx.Response().Committed {
		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(code)
		} else {
			err = ctx.JSON(code, message)
		}
		if err != nil {
			ctx.Echo().Logger.Error(err)
		}
	}
}
