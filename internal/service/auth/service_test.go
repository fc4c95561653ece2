package auth

import (
	"context"
	"testing"

	"github.com/ammarbari/attendance-app/internal/domain/auth"
	"github.com/ammarbari/attendance-app/internal/domain/user"
	"github.com/ammarbari/attendance-app/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]user.User // keyed by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]user.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailExists
		}
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByGoogleID(_ context.Context, googleID string) (user.User, error) {
	for _, u := range r.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u user.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	r.users[u.ID] = u
	return nil
}

func newTestService() (auth.Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwtService := jwt.NewJWTService("test-secret", "1h", "168h")
	return NewAuthService(repo, jwtService, nil), repo
}

func registerRequest() auth.RegisterRequest {
	return auth.RegisterRequest{
		Email:    "ammar@example.com",
		Name:     "Ammar",
		Password: "correct-horse",
	}
}

func TestRegister(t *testing.T) {
	svc, repo := newTestService()

	tokens, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "ammar@example.com", tokens.Email)

	stored := repo.users[tokens.UserID]
	require.NotNil(t, stored.PasswordHash)
	assert.NotContains(t, *stored.PasswordHash, "correct-horse", "password must never be stored in the clear")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	require.ErrorIs(t, err, user.ErrEmailExists)
}

func TestRegister_WeakPassword(t *testing.T) {
	svc, _ := newTestService()

	req := registerRequest()
	req.Password = "short"
	_, err := svc.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ammar@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	tests := []struct {
		name string
		req  auth.LoginRequest
	}{
		{"wrong password", auth.LoginRequest{Email: "ammar@example.com", Password: "wrong-password"}},
		{"unknown email", auth.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)
			require.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, _ := newTestService()

	tokens, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.Equal(t, tokens.UserID, rotated.UserID)

	// The consumed token cannot be used a second time.
	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	require.ErrorIs(t, err, auth.ErrTokenRevoked)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _ := newTestService()

	tokens, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), tokens.AccessToken)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	svc, _ := newTestService()

	tokens, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))

	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	require.ErrorIs(t, err, auth.ErrTokenRevoked)
}

func TestLogout_EmptyToken(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Logout(context.Background(), "")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}
