package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gearguard/account-service/internal/models"
)

// RevokeToken inserts the permanent revocation record for a refresh
// token. There is no un-revoke: a duplicate jti means the token was
// already revoked.
func (r *GormRepo) RevokeToken(ctx context.Context, revoked *models.RevokedToken) error {
	if err := r.DB.WithContext(ctx).Create(revoked).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyRevoked
		}
		return err
	}
	return nil
}

func (r *GormRepo) TokenRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
