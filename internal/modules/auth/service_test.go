package auth

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GZL-hub/ims-sub000/internal/modules/user"
)

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*user.User)}
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID.String()] = u
	return nil
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByRefreshToken(ctx context.Context, token string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.RefreshToken != "" && u.RefreshToken == token {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) ListUsers(ctx context.Context) ([]*user.User, error) { return nil, nil }

func (m *mockUserRepo) UpdateUser(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepo) SetRefreshToken(ctx context.Context, id string, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.RefreshToken = token
	return nil
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id string) error { return nil }

var testKey = []byte("test-signing-key")

func seedUser(t *testing.T, repo *mockUserRepo, password string, role user.Role, active bool) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &user.User{
		ID:           uuid.New(),
		Email:        "ops@example.test",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

func TestLogin_IssuesTokenWithRoleClaim(t *testing.T) {
	repo := newMockUserRepo()
	u := seedUser(t, repo, "s3cret", user.RoleManager, true)
	svc := NewService(repo, testKey)

	pair, err := svc.Login(context.Background(), u.Email, "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(pair.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
		return testKey, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, "manager", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	u := seedUser(t, repo, "s3cret", user.RoleStaff, true)
	svc := NewService(repo, testKey)

	_, err := svc.Login(context.Background(), u.Email, "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(newMockUserRepo(), testKey)
	_, err := svc.Login(context.Background(), "nobody@example.test", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	repo := newMockUserRepo()
	u := seedUser(t, repo, "s3cret", user.RoleStaff, false)
	svc := NewService(repo, testKey)

	_, err := svc.Login(context.Background(), u.Email, "s3cret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	repo := newMockUserRepo()
	u := seedUser(t, repo, "s3cret", user.RoleStaff, true)
	svc := NewService(repo, testKey)
	ctx := context.Background()

	first, err := svc.Login(ctx, u.Email, "s3cret")
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The old refresh token is dead after rotation.
	_, err = svc.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_UnknownToken(t *testing.T) {
	svc := NewService(newMockUserRepo(), testKey)
	_, err := svc.Refresh(context.Background(), "bogus")
	require.ErrorIs(t, err, ErrInvalidToken)
}
