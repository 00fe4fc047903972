package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/crewledger/crewledger-backend-go/internal/domain/auth"
	"github.com/crewledger/crewledger-backend-go/internal/domain/user"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.UserResponse{}, err
	}

	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return auth.UserResponse{}, user.ErrUsernameExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return auth.UserResponse{}, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return auth.UserResponse{}, user.ErrEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return auth.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	created, err := s.userRepo.Create(ctx, user.User{
		ID:            uuid.New().String(),
		FullName:      req.FullName,
		Username:      req.Username,
		Email:         req.Email,
		PasswordHash:  string(hash),
		ContactNumber: req.ContactNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("create user: %w", err)
	}

	slog.Info("User registered", "user_id", created.ID, "username", created.Username)
	return auth.UserResponse{
		ID:            created.ID,
		FullName:      created.FullName,
		Username:      created.Username,
		Email:         created.Email,
		ContactNumber: created.ContactNumber,
	}, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, string, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, "", err
	}

	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, "", auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, "", auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Username)
	if err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, _, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("generate refresh token: %w", err)
	}

	slog.Info("User logged in", "user_id", u.ID)
	return auth.TokenResponse{AccessToken: accessToken, ExpiresAt: expiresAt}, refreshToken, nil
}

func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, string, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, "", auth.ErrTokenRevoked
	}

	userID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, "", auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, "", auth.ErrInvalidToken
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Username)
	if err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("generate access token: %w", err)
	}

	// Rotate the refresh token on every use.
	newRefreshToken, _, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("generate refresh token: %w", err)
	}
	s.jwtService.RevokeToken(refreshToken)

	return auth.TokenResponse{AccessToken: accessToken, ExpiresAt: expiresAt}, newRefreshToken, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}
