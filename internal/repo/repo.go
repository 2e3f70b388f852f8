package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail  = errors.New("account with this email already exists")
	ErrAlreadyRevoked  = errors.New("refresh token already revoked")
	ErrAccountNotFound = errors.New("account not found")
)

type GormRepo struct {
	DB *gorm.DB
}
