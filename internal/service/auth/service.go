package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ammarbari/attendance-app/internal/domain/auth"
	"github.com/ammarbari/attendance-app/internal/domain/user"
	"github.com/ammarbari/attendance-app/internal/pkg/jwt"
	"github.com/ammarbari/attendance-app/internal/pkg/oauth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo      user.Repository
	jwtService    jwt.Service
	googleService oauth.GoogleService
}

func NewAuthService(userRepo user.Repository, jwtService jwt.Service, googleService oauth.GoogleService) auth.Service {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		jwtService:    jwtService,
		googleService: googleService,
	}
}

func (a *AuthServiceImpl) issueTokens(u user.User) (auth.TokenResponse, error) {
	accessToken, accessExpiresAt, err := a.jwtService.GenerateAccessToken(u.ID, u.Email, u.Name)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt,
		UserID:                u.ID,
		Name:                  u.Name,
		Email:                 u.Email,
	}, nil
}

// Register implements auth.Service.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashString := string(hash)

	created, err := a.userRepo.Create(ctx, user.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hashString,
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(created)
}

// Login implements auth.Service.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	// Google-only accounts have no password to check.
	if u.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(u)
}

// Refresh implements auth.Service. The old refresh token is revoked so a
// token can only be rotated once.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if a.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrTokenRevoked
	}

	token, err := a.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	u, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	a.jwtService.RevokeToken(refreshToken)

	return a.issueTokens(u)
}

// Logout implements auth.Service.
func (a *AuthServiceImpl) Logout(_ context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrInvalidToken
	}
	a.jwtService.RevokeToken(refreshToken)
	return nil
}

// LoginURL implements auth.Service.
func (a *AuthServiceImpl) LoginURL(userAgent string) string {
	state := a.googleService.GenerateState(userAgent)
	return a.googleService.RedirectURL(state)
}

// HandleCallback implements auth.Service. An existing email account is
// linked to the Google identity on first OAuth login.
func (a *AuthServiceImpl) HandleCallback(ctx context.Context, code string) (auth.TokenResponse, error) {
	oauthToken, err := a.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	info, err := a.googleService.VerifyUser(ctx, oauthToken)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to fetch google user info: %w", err)
	}
	if !info.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	u, err := a.userRepo.GetByGoogleID(ctx, info.GoogleID)
	if err == nil {
		return a.issueTokens(u)
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	u, err = a.userRepo.GetByEmail(ctx, info.Email)
	if err == nil {
		u.GoogleID = &info.GoogleID
		if err := a.userRepo.Update(ctx, u); err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to link google account: %w", err)
		}
		return a.issueTokens(u)
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	created, err := a.userRepo.Create(ctx, user.User{
		ID:       uuid.NewString(),
		Email:    info.Email,
		Name:     info.Name,
		GoogleID: &info.GoogleID,
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(created)
}
