package middleware

import (
	"errors"
	"net/http"
	"strconv"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/gearguard/account-service/internal/models"
	"github.com/gearguard/account-service/internal/repo"
	"github.com/gearguard/account-service/internal/tokens"
)

// AccountContextKey is where RequireAccount stores the resolved caller.
const AccountContextKey = "account"

// RequireAccount verifies the bearer access token and resolves it to a
// live account before the handler body runs. A missing or bad token, an
// unknown subject, or an inactive account all end the request with 401.
func RequireAccount(secret []byte, rp *repo.GormRepo) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (any, error) {
			claims, err := tokens.AccessClaimsFromToken(auth, secret)
			if err != nil {
				return nil, err
			}
			id, err := strconv.ParseUint(claims.Subject, 10, 64)
			if err != nil {
				return nil, errors.New("malformed token subject")
			}
			account, err := rp.AccountByID(c.Request().Context(), uint(id))
			if err != nil {
				return nil, err
			}
			if !account.IsActive {
				return nil, errors.New("account is inactive")
			}
			c.Set(AccountContextKey, account)
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		},
	})
}

func AccountFromContext(c echo.Context) (*models.Account, bool) {
	account, ok := c.Get(AccountContextKey).(*models.Account)
	return account, ok
}
