package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
	"github.com/rushhour/scheduling/internal/pkg/validation"
)

// AuthService implements login and account self-service.
type AuthService struct {
	accounts ports.AccountRepository
	creds    ports.CredentialStore
	audit    ports.AuditLog
	log      zerolog.Logger
}

func NewAuthService(accounts ports.AccountRepository, creds ports.CredentialStore, audit ports.AuditLog, log zerolog.Logger) *AuthService {
	return &AuthService{accounts: accounts, creds: creds, audit: audit, log: log}
}

// Login exchanges an email and password for an access token. An unknown
// email and a wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (string, error) {
	if err := Check(fieldProblems(in)); err != nil {
		return "", err
	}

	account, err := s.accounts.GetByEmail(ctx, in.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.Validation(domain.MsgInvalidCredentials)
	}
	if err != nil {
		return "", err
	}
	if !s.creds.VerifyPassword(in.Password, account.PasswordHash, account.Salt) {
		s.log.Debug().Int64("account_id", account.ID).Msg("login rejected")
		return "", domain.Validation(domain.MsgInvalidCredentials)
	}

	return s.creds.IssueToken(account.ID, account.Role)
}

// ChangePassword replaces the caller's password after checking the old one.
func (s *AuthService) ChangePassword(ctx context.Context, caller domain.Caller, in ports.ChangePasswordInput) error {
	if err := Check(fieldProblems(in)); err != nil {
		return err
	}

	account, err := s.accounts.GetByID(ctx, caller.AccountID)
	if err != nil {
		return err
	}
	if !s.creds.VerifyPassword(in.OldPassword, account.PasswordHash, account.Salt) {
		return domain.Validation(domain.MsgInvalidOldPassword)
	}

	hash, salt, err := s.creds.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdatePassword(ctx, account.ID, hash, salt); err != nil {
		return err
	}

	record(ctx, s.audit, caller, domain.AuditPasswordChange, "account", account.ID)
	s.log.Info().Int64("account_id", account.ID).Msg("password changed")
	return nil
}

// EnsureAdmin creates a standalone ADMIN account for email unless one
// already exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (*domain.Account, error) {
	existing, err := s.accounts.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if !validation.StrongPassword(password) {
		return nil, domain.Validation("admin password is too weak")
	}

	hash, salt, err := s.creds.HashPassword(password)
	if err != nil {
		return nil, err
	}
	username, _, _ := strings.Cut(email, "@")
	account := &domain.Account{
		Email:        email,
		FullName:     "Administrator",
		Username:     username,
		Role:         domain.RoleAdmin,
		PasswordHash: hash,
		Salt:         salt,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.log.Info().Int64("account_id", account.ID).Str("email", email).Msg("admin account created")
	return account, nil
}
