package auth

import "context"

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error

	// OAuth login via Google. LoginURL returns the redirect target;
	// HandleCallback exchanges the code and finds or creates the user.
	LoginURL(userAgent string) string
	HandleCallback(ctx context.Context, code string) (TokenResponse, error)
}
