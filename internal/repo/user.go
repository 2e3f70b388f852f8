package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gearguard/account-service/internal/models"
)

// CreateAccount persists a new account. The checked lookup keeps the
// common duplicate-email case off the error path; the unique constraint
// stays as the backstop when two writers race, so at most one wins.
func (r *GormRepo) CreateAccount(ctx context.Context, account *models.Account) error {
	var existing models.Account
	err := r.DB.WithContext(ctx).
		Where("email = ? OR username = ?", account.Email, account.Username).
		First(&existing).Error
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := r.DB.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *GormRepo) AccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *GormRepo) AccountByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *GormRepo) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.DB.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}
