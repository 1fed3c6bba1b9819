package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/propositos-api/internal/domain"
	"github.com/propositos-api/internal/infrastructure/google"
	"github.com/propositos-api/internal/pkg/id"
	"github.com/propositos-api/internal/pkg/token"
)

// Firestore field names used in partial update maps.
const (
	fieldEnable       = "enable"
	fieldGoogleSub    = "googleSub"
	fieldAuthProvider = "authProvider"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type LoginResult struct {
	Bearer       string
	RefreshToken string
	Session      *domain.Session
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	LoginWithGoogle(ctx context.Context, req GoogleLoginRequest) (*LoginResult, error)
	StartSession(ctx context.Context, u *domain.User) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (bearer, newRefreshToken string, err error)
	Logout(ctx context.Context, sessionID string) error
	GetCurrent(ctx context.Context, sessionID string) (*domain.Session, error)
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Update(ctx context.Context, sessionID string, updates map[string]interface{}) error
	GetByRefreshTokenHash(ctx context.Context, hash string) (*domain.Session, error)
	RotateRefreshToken(ctx context.Context, sessionID, newHash string, newExpiry time.Time) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGoogleSub(ctx context.Context, sub string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type googleVerifier interface {
	Verify(ctx context.Context, idToken string) (*google.Payload, error)
}

type tokenSigner interface {
	Sign(userID, role, weddingID, sessionID string) (string, error)
}

type service struct {
	sessions   sessionStore
	users      userStore
	google     googleVerifier
	jwt        tokenSigner
	refreshTTL time.Duration
}

type ServiceDeps struct {
	SessionRepo sessionStore
	UserRepo    userStore
	Google      googleVerifier
	JWT         tokenSigner
	RefreshTTL  time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		sessions:   deps.SessionRepo,
		users:      deps.UserRepo,
		google:     deps.Google,
		jwt:        deps.JWT,
		refreshTTL: deps.RefreshTTL,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !u.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
	}
	if u.PasswordHash == "" {
		// Google-only account, there is no password to compare.
		return nil, fmt.Errorf("account uses google sign-in: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return s.StartSession(ctx, u)
}

func (s *service) LoginWithGoogle(ctx context.Context, req GoogleLoginRequest) (*LoginResult, error) {
	p, err := s.google.Verify(ctx, req.IDToken)
	if err != nil {
		return nil, err
	}
	if p.Sub == "" || p.Email == "" {
		return nil, fmt.Errorf("google token missing subject or email: %w", domain.ErrUnauthorized)
	}
	u, err := s.users.GetByGoogleSub(ctx, p.Sub)
	if errors.Is(err, domain.ErrNotFound) {
		u, err = s.linkGoogleAccount(ctx, p)
	}
	if err != nil {
		return nil, err
	}
	if !u.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
	}
	return s.StartSession(ctx, u)
}

// linkGoogleAccount attaches a Google identity to the existing account with
// the same verified email. Signing in with Google never creates an account:
// registration decides role and wedding, and Google tokens carry neither.
func (s *service) linkGoogleAccount(ctx context.Context, p *google.Payload) (*domain.User, error) {
	if !p.EmailVerified {
		return nil, fmt.Errorf("google account email not verified: %w", domain.ErrUnauthorized)
	}
	u, err := s.users.GetByEmail(ctx, p.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("no account for this google identity, register first: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if u.GoogleSub != "" {
		// The email matches but another Google identity already owns
		// the account.
		return nil, fmt.Errorf("account linked to a different google identity: %w", domain.ErrUnauthorized)
	}
	updates := map[string]interface{}{
		fieldGoogleSub:    p.Sub,
		fieldAuthProvider: domain.AuthProviderGoogle,
	}
	if err := s.users.Update(ctx, u.UserID, updates); err != nil {
		return nil, err
	}
	u.GoogleSub = p.Sub
	u.AuthProvider = domain.AuthProviderGoogle
	return u, nil
}

// StartSession issues a fresh session and token pair for an already
// authenticated user. The user service calls it after registration so new
// accounts land signed in.
func (s *service) StartSession(ctx context.Context, u *domain.User) (*LoginResult, error) {
	refreshToken, err := token.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sess := &domain.Session{
		SessionID:        id.New(),
		UserID:           u.UserID,
		RefreshTokenHash: token.Hash(refreshToken),
		RefreshExpiresAt: now.Add(s.refreshTTL),
		Enable:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	bearer, err := s.jwt.Sign(u.UserID, u.Role, u.WeddingID, sess.SessionID)
	if err != nil {
		return nil, err
	}
	sess.User = u
	return &LoginResult{Bearer: bearer, RefreshToken: refreshToken, Session: sess}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	sess, err := s.sessions.GetByRefreshTokenHash(ctx, token.Hash(refreshToken))
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	if sess.RefreshExpiresAt.Before(time.Now().UTC()) {
		return "", "", fmt.Errorf("refresh token expired: %w", domain.ErrUnauthorized)
	}
	newToken, err := token.NewRefreshToken()
	if err != nil {
		return "", "", err
	}
	newExpiry := time.Now().UTC().Add(s.refreshTTL)
	if err := s.sessions.RotateRefreshToken(ctx, sess.SessionID, token.Hash(newToken), newExpiry); err != nil {
		return "", "", err
	}
	u, err := s.users.Get(ctx, sess.UserID)
	if err != nil {
		return "", "", err
	}
	if !u.Enable {
		return "", "", fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
	}
	bearer, err := s.jwt.Sign(u.UserID, u.Role, u.WeddingID, sess.SessionID)
	if err != nil {
		return "", "", err
	}
	return bearer, newToken, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Update(ctx, sessionID, map[string]interface{}{fieldEnable: false})
}

func (s *service) GetCurrent(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Enable {
		return nil, fmt.Errorf("session revoked: %w", domain.ErrUnauthorized)
	}
	u, err := s.users.Get(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	sess.User = u
	return sess, nil
}
