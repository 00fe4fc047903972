package auth

import "context"

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, string, error) // returns refresh token separately for the cookie
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, string, error)
	Logout(ctx context.Context, refreshToken string) error
}
