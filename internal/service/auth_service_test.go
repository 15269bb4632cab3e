package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/pkg/auth"
	"github.com/localscoop/escoop-backend/pkg/jwt"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByUsername(username string) (*domain.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByID(id uint64) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Create(user *domain.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) TouchLastLogin(id uint64) error {
	return m.Called(id).Error(0)
}

// --- Tests ---

func newTestJWTManager() *jwt.Manager {
	return jwt.NewManager("test-secret-key-for-testing-only-32b!", 15, 1440)
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	return &domain.User{
		ID:           7,
		Username:     "editor",
		PasswordHash: auth.HashPassword("scoop-password"),
		Nickname:     "Editor",
		Level:        domain.LevelEditor,
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, newTestJWTManager())

	repo.On("FindByUsername", "editor").Return(testUser(t), nil)
	repo.On("TouchLastLogin", uint64(7)).Return(nil)

	tokens, err := svc.Login(&domain.LoginRequest{Username: "editor", Password: "scoop-password"})
	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Editor", tokens.Nickname)
	assert.Equal(t, domain.LevelEditor, tokens.Level)
	repo.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, newTestJWTManager())

	repo.On("FindByUsername", "editor").Return(testUser(t), nil)

	_, err := svc.Login(&domain.LoginRequest{Username: "editor", Password: "wrong"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	repo.AssertNotCalled(t, "TouchLastLogin", mock.Anything)
}

func TestLoginUnknownUser(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, newTestJWTManager())

	repo.On("FindByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(&domain.LoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	repo := new(mockUserRepo)
	manager := newTestJWTManager()
	svc := NewAuthService(repo, manager)

	refresh, err := manager.GenerateRefreshToken("7")
	assert.NoError(t, err)
	repo.On("FindByID", uint64(7)).Return(testUser(t), nil)

	tokens, err := svc.Refresh(refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := manager.VerifyToken(tokens.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "7", claims.UserID)
	assert.Equal(t, domain.LevelEditor, claims.Level)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, newTestJWTManager())

	_, err := svc.Refresh("not-a-token")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestRefreshRejectsTokenForDeletedUser(t *testing.T) {
	repo := new(mockUserRepo)
	manager := newTestJWTManager()
	svc := NewAuthService(repo, manager)

	refresh, err := manager.GenerateRefreshToken("42")
	assert.NoError(t, err)
	repo.On("FindByID", uint64(42)).Return(nil, gorm.ErrRecordNotFound)

	_, err = svc.Refresh(refresh)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
