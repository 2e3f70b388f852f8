package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gearguard/account-service/internal/events"
	"github.com/gearguard/account-service/internal/logging"
	"github.com/gearguard/account-service/internal/middleware"
	"github.com/gearguard/account-service/internal/repo"
	"github.com/gearguard/account-service/internal/service"
	"github.com/gearguard/account-service/internal/transport"
)

type AccountHTTP struct {
	Svc      *service.AccountService
	Producer *events.Producer
}

func (h *AccountHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		l.Warn("register_error", "status", 400, "reason", "validation failed")
		return c.JSON(http.StatusBadRequest, transport.Response{
			Success: false,
			Message: "Validation failed",
			Errors:  transport.FieldErrors(err),
		})
	}

	account, err := h.Svc.Register(ctx, req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return c.JSON(http.StatusBadRequest, transport.Response{
				Success: false,
				Message: "Validation failed",
				Errors:  map[string]string{"email": repo.ErrDuplicateEmail.Error()},
			})
		}
		l.Error("register_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Response{
			Success: false,
			Message: "Something went wrong",
		})
	}

	h.publish(c, fmt.Sprint(account.ID), map[string]any{
		"type":       "account_registered",
		"account_id": account.ID,
		"username":   account.Username,
	})

	return c.JSON(http.StatusCreated, transport.Response{
		Success: true,
		Message: "User registered successfully",
	})
}

func (h *AccountHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, transport.Response{
			Success: false,
			Message: "Username and password are required",
		})
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, transport.Response{
				Success: false,
				Message: "Invalid username or password",
			})
		case errors.Is(err, service.ErrInactiveAccount):
			return c.JSON(http.StatusForbidden, transport.Response{
				Success: false,
				Message: "Your account is inactive",
			})
		default:
			l.Error("login_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, transport.Response{
				Success: false,
				Message: "Something went wrong",
			})
		}
	}

	h.publish(c, fmt.Sprint(res.Account.ID), map[string]any{
		"type":       "account_logged_in",
		"account_id": res.Account.ID,
		"username":   res.Account.Username,
	})

	return c.JSON(http.StatusOK, transport.Response{
		Success: true,
		Message: "Login successful",
		Data:    transport.Summary(res.Account),
		Tokens: &transport.TokenPair{
			Access:  res.Tokens.AccessToken,
			Refresh: res.Tokens.RefreshToken,
		},
	})
}

func (h *AccountHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account_logout")

	var req transport.LogoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("logout_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if req.Refresh == "" {
		return c.JSON(http.StatusBadRequest, transport.Response{
			Success: false,
			Message: "Refresh token is required",
		})
	}

	if err := h.Svc.RevokeRefresh(ctx, req.Refresh); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return c.JSON(http.StatusBadRequest, transport.Response{
				Success: false,
				Message: "Invalid token",
			})
		}
		l.Error("logout_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Response{
			Success: false,
			Message: "Something went wrong",
		})
	}

	return c.JSON(http.StatusOK, transport.Response{
		Success: true,
		Message: "Logout successful",
	})
}

func (h *AccountHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account_profile")

	account, ok := middleware.AccountFromContext(c)
	if !ok {
		l.Error("profile_error", "status", 500, "reason", "no account in context")
		return c.JSON(http.StatusInternalServerError, transport.Response{
			Success: false,
			Message: "Something went wrong",
		})
	}

	return c.JSON(http.StatusOK, transport.Response{
		Success: true,
		Message: "Profile fetched successfully",
		Data:    transport.Summary(account),
	})
}

// publish sends a lifecycle event without ever failing the request.
func (h *AccountHTTP) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Producer.PublishEvent(ctx, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event publish failed", "error", err)
	}
}
