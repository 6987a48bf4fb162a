// Package services – AuthService
//
// AuthService registers accounts and exchanges credentials for signed
// bearer tokens. Passwords are stored as bcrypt hashes only.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/clip-qa-backend/internal/auth"
	"github.com/tbourn/clip-qa-backend/internal/domain"
	"github.com/tbourn/clip-qa-backend/internal/repo"
)

// Session is the result of a successful register or login.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// AuthService handles accounts and credentials.
type AuthService struct {
	DB     *gorm.DB
	Tokens *auth.Tokens
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, tokens *auth.Tokens) *AuthService {
	return &AuthService{DB: db, Tokens: tokens}
}

// CreateUser validates and stores an account with the given role.
func (s *AuthService) CreateUser(ctx context.Context, username, password, role string) (*domain.User, error) {
	ctx, span := otel.Tracer("services/AuthService").Start(ctx, "CreateUser",
		trace.WithAttributes(
			attribute.String("user.name", username),
			attribute.String("user.role", role),
		),
	)
	defer span.End()

	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < 3 || n > 50 {
		return nil, ErrUsernameLength
	}
	if utf8.RuneCountInString(password) < 6 {
		return nil, ErrPasswordTooShort
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, ErrInvalidRole
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, storeErr("hash password", err)
	}
	u, err := repo.CreateUser(ctx, s.DB, username, hash, role)
	if repo.IsUniqueViolation(err) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, storeErr("create user", err)
	}
	log.Ctx(ctx).Info().Str("user_id", u.ID).Str("role", role).Msg("user created")
	return u, nil
}

// Register creates a regular account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, username, password string) (*Session, error) {
	u, err := s.CreateUser(ctx, username, password, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

// Login verifies credentials, records the login time, and signs a token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	ctx, span := otel.Tracer("services/AuthService").Start(ctx, "Login",
		trace.WithAttributes(attribute.String("user.name", username)),
	)
	defer span.End()

	u, err := repo.GetUserByUsername(ctx, s.DB, strings.TrimSpace(username))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storeErr("get user", err)
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := repo.TouchLastLogin(ctx, s.DB, u.ID, now); err != nil {
		return nil, storeErr("touch last login", err)
	}
	u.LastLogin = &now
	return s.issue(u)
}

// Promote sets an existing user's role.
func (s *AuthService) Promote(ctx context.Context, username, role string) error {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return ErrInvalidRole
	}
	u, err := repo.GetUserByUsername(ctx, s.DB, strings.TrimSpace(username))
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return storeErr("get user", err)
	}
	if err := repo.SetUserRole(ctx, s.DB, u.ID, role); err != nil {
		return storeErr("set role", err)
	}
	return nil
}

func (s *AuthService) issue(u *domain.User) (*Session, error) {
	tok, exp, err := s.Tokens.Issue(u.ID, u.Username, u.Role)
	if err != nil {
		return nil, storeErr("issue token", err)
	}
	return &Session{Token: tok, ExpiresAt: exp, User: u}, nil
}
