// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, token refresh, the
// password reset lifecycle and the user's own profile.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/healthlog/internal/common"
	"github.com/dmitrijs2005/healthlog/internal/dbx"
	"github.com/dmitrijs2005/healthlog/internal/logging"
	"github.com/dmitrijs2005/healthlog/internal/server/auth"
	"github.com/dmitrijs2005/healthlog/internal/server/config"
	"github.com/dmitrijs2005/healthlog/internal/server/metrics"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/dmitrijs2005/healthlog/internal/server/notify"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/repomanager"
)

// resetTokenBytes gives 64 hex characters.
const resetTokenBytes = 32

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User   *models.User
	Tokens *auth.TokenPair
}

// RegisterInput is a validated registration request.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName *string
}

// UserService provides authentication-related operations:
// - Register / Login: create users, verify credentials and mint tokens
// - Refresh: re-issue a pair for a still existing user
// - ForgotPassword / ResetPassword: the single-use reset token lifecycle
// - GetProfile / UpdateProfile / DeleteAccount
type UserService struct {
	db                 *sql.DB
	repomanager        repomanager.RepositoryManager
	issuer             *auth.Issuer
	notifier           notify.ResetNotifier
	logger             logging.Logger
	resetTokenValidity time.Duration
	now                func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, issuer *auth.Issuer,
	notifier notify.ResetNotifier, logger logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:                 db,
		repomanager:        m,
		issuer:             issuer,
		notifier:           notifier,
		logger:             logger,
		resetTokenValidity: cfg.ResetTokenValidityDuration,
		now:                time.Now,
	}
}

// Register creates a user and logs them in. A taken email yields
// common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		DisplayName:  in.DisplayName,
		Timezone:     common.DefaultTimezone,
	}

	user, err = s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	tokens, err := s.issuer.IssueTokens(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("error issuing tokens: %w", err)
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Login verifies the credentials. Unknown email and wrong password both
// yield common.ErrorUnauthorized after the same bcrypt work.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.BurnPasswordCheck(password)
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	tokens, err := s.issuer.IssueTokens(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("error issuing tokens: %w", err)
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Refresh verifies a refresh token, checks the user still exists and issues
// a new pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	id, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, err
	}

	return s.issuer.IssueTokens(user.ID, user.Email)
}

// ForgotPassword issues a reset token when the email belongs to a user and
// does nothing otherwise. Issuance locks the user row so concurrent
// requests for one user serialize and leave exactly one live token.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return err
	}

	raw, err := common.MakeRandHexString(resetTokenBytes)
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     raw,
		ExpiresAt: s.now().Add(s.resetTokenValidity),
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).LockByID(ctx, user.ID); err != nil {
			return err
		}
		repo := s.repomanager.ResetTokens(tx)
		if err := repo.DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		return repo.Create(ctx, token)
	})
	if err != nil {
		return fmt.Errorf("error issuing reset token: %w", err)
	}

	err = s.notifier.NotifyPasswordReset(ctx, notify.ResetNotice{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	})
	metrics.RecordResetNotification(err == nil)
	if err != nil {
		s.logger.Error(ctx, "reset notification failed", "user_id", user.ID, "error", err)
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password. Unknown,
// expired and concurrently consumed tokens all yield
// common.ErrInvalidResetToken.
func (s *UserService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.ResetTokens(s.db)
	token, err := repo.FindByToken(ctx, rawToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidResetToken
		}
		return err
	}

	if token.Expired(s.now()) {
		if _, err := repo.Delete(ctx, token.ID); err != nil {
			s.logger.Warn(ctx, "expired reset token cleanup failed", "error", err)
		}
		return common.ErrInvalidResetToken
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := s.repomanager.ResetTokens(tx).Delete(ctx, token.ID)
		if err != nil {
			return err
		}
		if n != 1 {
			return common.ErrInvalidResetToken
		}
		return s.repomanager.Users(tx).UpdatePassword(ctx, token.UserID, hash)
	})
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// UpdateProfile changes display name and/or timezone.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd models.UserUpdate) (*models.User, error) {
	if upd.IsEmpty() {
		return nil, common.ErrNoFieldsToUpdate
	}
	return s.repomanager.Users(s.db).UpdateProfile(ctx, userID, upd)
}

// DeleteAccount removes the user together with everything they own.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	return s.repomanager.Users(s.db).Delete(ctx, userID)
}
