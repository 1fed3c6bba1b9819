package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/propositos-api/internal/application/session"
	"github.com/propositos-api/internal/domain"
)

const fieldPasswordHash = "passwordHash"

const (
	recoveryCodeTTL = 15 * time.Minute
	resendCooldown  = time.Minute
)

type PasswordRecoveryRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// Service handles the forgot-password flow. Request mails a short-lived code,
// Reset burns it, replaces the password and signs the user in. A Google-only
// account may set its first password here: the emailed code proves the same
// email ownership the Google token would.
type Service interface {
	RequestPasswordRecovery(ctx context.Context, req PasswordRecoveryRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (*session.LoginResult, error)
}

type verificationStore interface {
	Put(ctx context.Context, v *domain.UserVerification) error
	Get(ctx context.Context, userID string) (*domain.UserVerification, error)
	Delete(ctx context.Context, userID string) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type sessionStore interface {
	DisableByUser(ctx context.Context, userID string) error
}

type sessionStarter interface {
	StartSession(ctx context.Context, u *domain.User) (*session.LoginResult, error)
}

type mailSender interface {
	SendEmail(to, subject, body string) error
}

type ServiceDeps struct {
	VerificationRepo verificationStore
	UserRepo         userStore
	SessionRepo      sessionStore
	Sessions         sessionStarter
	Mailer           mailSender
}

type service struct {
	verifications verificationStore
	users         userStore
	sessions      sessionStore
	starter       sessionStarter
	mailer        mailSender
}

func NewService(deps ServiceDeps) Service {
	return &service{
		verifications: deps.VerificationRepo,
		users:         deps.UserRepo,
		sessions:      deps.SessionRepo,
		starter:       deps.Sessions,
		mailer:        deps.Mailer,
	}
}

func (s *service) RequestPasswordRecovery(ctx context.Context, req PasswordRecoveryRequest) error {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		// Unknown emails get the same success reply as known ones; the
		// endpoint never confirms whether an account exists.
		return nil
	}
	if err != nil {
		return err
	}
	if !u.Enable {
		return nil
	}

	now := time.Now().UTC()
	// A second request inside the cooldown is acknowledged but sends
	// nothing, same as an unknown email.
	if prev, err := s.verifications.Get(ctx, u.UserID); err == nil {
		if now.Sub(prev.CreatedAt) < resendCooldown {
			return nil
		}
	}

	otp, err := newRecoveryCode()
	if err != nil {
		return err
	}
	v := &domain.UserVerification{
		UserID:    u.UserID,
		Code:      otp,
		ExpiresAt: now.Add(recoveryCodeTTL),
		CreatedAt: now,
	}
	if err := s.verifications.Put(ctx, v); err != nil {
		return err
	}

	body := fmt.Sprintf("Your password recovery code is %s. It expires in 15 minutes.\n\nIf you did not ask for it, ignore this email.", otp)
	if err := s.mailer.SendEmail(u.Email, "Password recovery code", body); err != nil {
		return fmt.Errorf("send recovery code: %w", err)
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*session.LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid recovery code: %w", domain.ErrUnauthorized)
	}
	if !u.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
	}

	v, err := s.verifications.Get(ctx, u.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid recovery code: %w", domain.ErrUnauthorized)
	}
	if v.Code != req.OTP {
		return nil, fmt.Errorf("invalid recovery code: %w", domain.ErrUnauthorized)
	}
	if time.Now().UTC().After(v.ExpiresAt) {
		return nil, fmt.Errorf("recovery code expired: %w", domain.ErrUnauthorized)
	}
	// Burn the code before touching the account; a code is good for one
	// attempt only.
	if err := s.verifications.Delete(ctx, u.UserID); err != nil {
		slog.Warn("failed to delete recovery code", "user_id", u.UserID, "err", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u.UserID, map[string]interface{}{fieldPasswordHash: string(hash)}); err != nil {
		return nil, err
	}
	u.PasswordHash = string(hash)

	// Every existing session signs out so a stolen refresh token dies with
	// the old password.
	if err := s.sessions.DisableByUser(ctx, u.UserID); err != nil {
		return nil, err
	}
	return s.starter.StartSession(ctx, u)
}

func newRecoveryCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
