package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gearguard/account-service/internal/hash"
	"github.com/gearguard/account-service/internal/logging"
	"github.com/gearguard/account-service/internal/models"
	"github.com/gearguard/account-service/internal/repo"
	"github.com/gearguard/account-service/internal/tokens"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrInvalidToken       = errors.New("invalid refresh token")
)

type AccountService struct {
	Repo          repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	Account *models.Account
	Tokens  TokenPair
}

// Register creates the account with username equal to email and the role
// unconditionally set to technician. Registration is a public endpoint, so
// any role the caller supplies never reaches this layer.
func (s *AccountService) Register(ctx context.Context, email, firstName, lastName, password string) (*models.Account, error) {
	l := logging.FromContext(ctx).With("svc", "accounts.register")

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	account := &models.Account{
		Username:     email,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: pwHash,
		Role:         models.RoleTechnician,
		IsActive:     true,
	}

	if err := s.Repo.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			l.Warn("register_failed", "reason", "duplicate email")
			return nil, err
		}
		l.Error("register_failed", "reason", "db error", "error", err)
		return nil, err
	}

	l.Info("account_registered", "account_id", account.ID)
	return account, nil
}

// Verify checks the presented credentials against the store. Missing user
// and wrong password collapse into the same error; an inactive account with
// a correct password fails distinctly.
func (s *AccountService) Verify(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := s.Repo.AccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(account.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !account.IsActive {
		return nil, ErrInactiveAccount
	}
	return account, nil
}

// IssueTokens mints the refresh token for the account and derives the
// short-lived access token from the same identity.
func (s *AccountService) IssueTokens(account *models.Account) (TokenPair, error) {
	subject := strconv.FormatUint(uint64(account.ID), 10)

	refreshToken, err := tokens.SignRefreshToken(subject, tokens.NewJTI(), s.RefreshSecret, time.Now().Add(refreshTokenTTL))
	if err != nil {
		return TokenPair{}, err
	}

	accessToken, err := tokens.SignAccessToken(subject, account.Role, s.JWTSecret, time.Now().Add(accessTokenTTL))
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AccountService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "accounts.login", "username", username)

	account, err := s.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrInactiveAccount) {
			l.Warn("login_failed", "reason", err.Error())
		} else {
			l.Error("login_failed", "error", err)
		}
		return nil, err
	}

	pair, err := s.IssueTokens(account)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign tokens", "error", err)
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.Repo.TouchLastLogin(ctx, account.ID, now); err != nil {
		l.Error("login_failed", "reason", "cannot stamp last_login", "error", err)
		return nil, err
	}
	account.LastLogin = &now

	l.Info("login_successful", "account_id", account.ID)
	return &LoginResult{Account: account, Tokens: pair}, nil
}

// RevokeRefresh parses the presented refresh token and records its jti as
// permanently revoked. A malformed, expired, forged, or already-revoked
// token all fail with ErrInvalidToken. Access tokens derived from the
// refresh token stay valid until their own expiry elapses.
func (s *AccountService) RevokeRefresh(ctx context.Context, rawRefresh string) error {
	l := logging.FromContext(ctx).With("svc", "accounts.revoke")

	claims, err := tokens.RefreshClaimsFromToken(rawRefresh, s.RefreshSecret)
	if err != nil {
		l.Warn("revoke_failed", "reason", "cannot parse refresh token", "error", err)
		return ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		l.Warn("revoke_failed", "reason", "bad subject", "error", err)
		return ErrInvalidToken
	}

	if revoked, err := s.Repo.TokenRevoked(ctx, claims.ID); err != nil {
		l.Error("revoke_failed", "reason", "db error", "error", err)
		return err
	} else if revoked {
		l.Warn("revoke_failed", "reason", "already revoked")
		return ErrInvalidToken
	}

	record := &models.RevokedToken{
		JTI:       claims.ID,
		UserID:    uint(userID),
		ExpiresAt: claims.ExpiresAt.Unix(),
		RevokedAt: time.Now().UTC(),
	}
	if err := s.Repo.RevokeToken(ctx, record); err != nil {
		if errors.Is(err, repo.ErrAlreadyRevoked) {
			return ErrInvalidToken
		}
		l.Error("revoke_failed", "reason", "db error", "error", err)
		return err
	}

	l.Info("refresh_revoked", "account_id", userID)
	return nil
}

func (s *AccountService) Profile(ctx context.Context, id uint) (*models.Account, error) {
	return s.Repo.AccountByID(ctx, id)
}
