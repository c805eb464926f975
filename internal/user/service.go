package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/mxngjxa/micro1-zara-mock/internal/auth"
	"github.com/mxngjxa/micro1-zara-mock/internal/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRefresh     = errors.New("refresh token is invalid")
)

type Service interface {
	Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error)
	Refresh(ctx context.Context, dto RefreshDTO) (*TokenPair, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type service struct {
	repo   Repository
	tokens *auth.Service
	crypto *config.Crypto
	log    logrus.FieldLogger
}

func NewService(repo Repository, tokens *auth.Service, crypto *config.Crypto, log logrus.FieldLogger) Service {
	return &service{repo: repo, tokens: tokens, crypto: crypto, log: log}
}

func (s *service) Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error) {
	log := config.WithRequestID(s.log, ctx)

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(dto.Email))
	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		log.WithError(err).Error("Failed to look up email")
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(dto.Name),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		log.WithError(err).Error("Failed to issue tokens")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return &AuthResponse{User: u, Tokens: *pair}, nil
}

func (s *service) Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error) {
	log := config.WithRequestID(s.log, ctx)

	email := strings.ToLower(strings.TrimSpace(dto.Email))
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		log.WithError(err).Error("Failed to look up email")
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		log.WithError(err).Error("Failed to issue tokens")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User logged in")
	return &AuthResponse{User: u, Tokens: *pair}, nil
}

// Refresh rotates the pair: the presented token must both verify as a
// JWT and match the encrypted copy on the user row, so a stolen token
// stops working after its owner refreshes.
func (s *service) Refresh(ctx context.Context, dto RefreshDTO) (*TokenPair, error) {
	log := config.WithRequestID(s.log, ctx)

	claims, err := s.tokens.ValidateJWT(dto.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		log.WithError(err).Error("Failed to load user")
		return nil, err
	}
	if u == nil || u.RefreshToken == nil {
		return nil, ErrInvalidRefresh
	}

	stored, err := s.crypto.Decrypt(*u.RefreshToken)
	if err != nil || stored != dto.RefreshToken {
		return nil, ErrInvalidRefresh
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		log.WithError(err).Error("Failed to rotate tokens")
		return nil, err
	}
	return pair, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		config.WithRequestID(s.log, ctx).WithError(err).Error("Failed to load user")
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *service) issueTokens(u *User) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(u.ID.String(), u.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(u.ID.String(), u.Email)
	if err != nil {
		return nil, err
	}

	encrypted, err := s.crypto.Encrypt(refresh)
	if err != nil {
		return nil, err
	}
	u.RefreshToken = &encrypted
	if err := s.repo.Save(u); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
