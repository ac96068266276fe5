// Package auth manages operator accounts and bearer-token sessions.
// Credentials are bcrypt digests; raw passwords are never persisted or
// compared directly.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jakababa94/mandazi-metrics/internal/config"
	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/repository"
	"github.com/Jakababa94/mandazi-metrics/internal/store"
)

// ErrEmailTaken indicates a signup against an email that already has an
// account.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials covers both unknown emails and wrong passwords, so
// a caller cannot probe which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Session is the authenticated identity carried through a request. It is
// extracted from the bearer token by the router middleware; there is no
// ambient global user.
type Session struct {
	UserID string
	Email  string
}

// Service implements signup, login and token parsing.
type Service struct {
	users  *repository.Users
	cfg    config.AuthConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires the auth service.
func NewService(users *repository.Users, cfg config.AuthConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, cfg: cfg, logger: logger, now: time.Now}
}

// Signup registers a new operator and returns the account with a fresh
// session token.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, token, nil
}

// Login verifies the credentials and returns the account with a fresh
// session token.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ParseToken validates a bearer token and returns its session.
func (s *Service) ParseToken(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	userID, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if userID == "" {
		return nil, errors.New("token missing subject")
	}
	return &Session{UserID: userID, Email: email}, nil
}

func (s *Service) issueToken(user *models.User) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
