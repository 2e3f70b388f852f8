package transport

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/gearguard/account-service/internal/models"
)

// RegisterRequest deliberately has no role field: registration is public
// and the service forces the role server-side.
type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 150)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 150)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 128)),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

type UserSummary struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}

func Summary(a *models.Account) *UserSummary {
	return &UserSummary{
		UserID:   a.ID,
		Username: a.Username,
		Email:    a.Email,
		UserType: a.Role,
	}
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Response is the envelope every endpoint answers with, success or not.
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    *UserSummary      `json:"data,omitempty"`
	Tokens  *TokenPair        `json:"tokens,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// FieldErrors flattens an ozzo validation error into a per-field message
// map. A non-field error comes back under the "non_field_errors" key so
// the envelope shape stays stable.
func FieldErrors(err error) map[string]string {
	var ve validation.Errors
	if errors.As(err, &ve) {
		out := make(map[string]string, len(ve))
		for field, ferr := range ve {
			out[field] = ferr.Error()
		}
		return out
	}
	return map[string]string{"non_field_errors": err.Error()}
}
