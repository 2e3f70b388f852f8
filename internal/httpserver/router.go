package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gearguard/account-service/internal/transport"
)

type Deps struct {
	Accounts    *AccountHTTP
	RequireAuth echo.MiddlewareFunc
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.Accounts.Register)
	v1.POST("/login", d.Accounts.Login)

	private := v1.Group("", d.RequireAuth)
	private.POST("/logout", d.Accounts.Logout)
	private.GET("/profile", d.Accounts.Profile)
}

// ErrorHandler renders any error that escapes a handler as the standard
// envelope. Handlers answer their own failure modes inline; this is the
// backstop that keeps unhandled faults from leaking a bare error page.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Something went wrong"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	_ = c.JSON(code, transport.Response{Success: false, Message: message})
}
