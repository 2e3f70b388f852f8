package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gearguard/account-service/internal/models"
	"github.com/gearguard/account-service/internal/repo"
	"github.com/gearguard/account-service/internal/tokens"
)

func newTestService(t *testing.T) *AccountService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Account{}, &models.RevokedToken{}))

	return &AccountService{
		Repo:          repo.GormRepo{DB: db},
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}

func TestRegister_ForcesTechnicianRoleAndHashesPassword(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "a@x.com", "A", "B", "pw1")
	require.NoError(t, err)
	require.NotZero(t, account.ID)

	assert.Equal(t, "a@x.com", account.Username)
	assert.Equal(t, "a@x.com", account.Email)
	assert.Equal(t, models.RoleTechnician, account.Role)
	assert.True(t, account.IsActive)
	assert.NotEqual(t, "pw1", account.PasswordHash)
	assert.NotEmpty(t, account.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "A", "B", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@x.com", "Other", "Name", "pw2")
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.ErrDuplicateEmail)

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&models.Account{}).Where("email = ?", "a@x.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestVerify_UnknownUserAndWrongPasswordIndistinguishable(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "A", "B", "pw1")
	require.NoError(t, err)

	_, errUnknown := svc.Verify(ctx, "nobody@x.com", "pw1")
	_, errWrongPw := svc.Verify(ctx, "a@x.com", "wrong")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestVerify_InactiveAccountFailsDistinctly(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "a@x.com", "A", "B", "pw1")
	require.NoError(t, err)
	require.NoError(t, svc.Repo.DB.Model(account).Update("is_active", false).Error)

	_, err = svc.Verify(ctx, "a@x.com", "pw1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInactiveAccount)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_IssuesTokenPairAndStampsLastLogin(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "a@x.com", "A", "B", "pw1")
	require.NoError(t, err)
	require.Nil(t, account.LastLogin)

	res, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Tokens.AccessToken)
	require.NotEmpty(t, res.Tokens.RefreshToken)

	accessClaims, err := tokens.AccessClaimsFromToken(res.Tokens.AccessToken, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTechnician, accessClaims.Role)
	assert.True(t, accessClaims.ExpiresAt.Time.After(time.Now()))

	refreshClaims, err := tokens.RefreshClaimsFromToken(res.Tokens.RefreshToken, svc.RefreshSecret)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshClaims.ID)

	stored, err := svc.Repo.AccountByID(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
	assert.WithinDuration(t, time.Now().UTC(), *stored.LastLogin, 5*time.Second)
}

func TestRevokeRefresh_SecondRevokeFails(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "A", "B", "pw1")
	require.NoError(t, err)
	res, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeRefresh(ctx, res.Tokens.RefreshToken))

	err = svc.RevokeRefresh(ctx, res.Tokens.RefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokeRefresh_RejectsGarbageAndAccessTokens(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "A", "B", "pw1")
	require.NoError(t, err)
	res, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RevokeRefresh(ctx, "not-a-valid-jwt"), ErrInvalidToken)
	// An access token must not be accepted in place of a refresh token.
	assert.ErrorIs(t, svc.RevokeRefresh(ctx, res.Tokens.AccessToken), ErrInvalidToken)
}

func TestProfile_ReturnsStoredAccount(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "a@x.com", "A", "B", "pw1")
	require.NoError(t, err)

	got, err := svc.Profile(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
	assert.Equal(t, "a@x.com", got.Email)

	_, err = svc.Profile(ctx, account.ID+100)
	assert.ErrorIs(t, err, repo.ErrAccountNotFound)
}
