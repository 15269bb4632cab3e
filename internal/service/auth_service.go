package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/internal/repository"
	"github.com/localscoop/escoop-backend/pkg/auth"
	"github.com/localscoop/escoop-backend/pkg/jwt"
	"github.com/localscoop/escoop-backend/pkg/logger"
)

// AuthService defines the business logic for editor authentication
type AuthService interface {
	Login(req *domain.LoginRequest) (*domain.TokenResponse, error)
	Refresh(refreshToken string) (*domain.TokenResponse, error)
}

type authService struct {
	repo       repository.UserRepository
	jwtManager *jwt.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(repo repository.UserRepository, jwtManager *jwt.Manager) AuthService {
	return &authService{repo: repo, jwtManager: jwtManager}
}

// Login verifies credentials and issues a token pair
func (s *authService) Login(req *domain.LoginRequest) (*domain.TokenResponse, error) {
	user, err := s.repo.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	userID := fmt.Sprintf("%d", user.ID)
	accessToken, err := s.jwtManager.GenerateToken(userID, user.Nickname, user.Level)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.TouchLastLogin(user.ID); err != nil {
		logger.Error("failed to record last login: %v", err)
	}

	return &domain.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Nickname:     user.Nickname,
		Level:        user.Level,
	}, nil
}

// Refresh verifies a refresh token and issues a new token pair
func (s *authService) Refresh(refreshToken string) (*domain.TokenResponse, error) {
	claims, err := s.jwtManager.VerifyToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, common.ErrExpiredToken
		}
		return nil, common.ErrInvalidToken
	}

	var userID uint64
	if _, err := fmt.Sscanf(claims.UserID, "%d", &userID); err != nil {
		return nil, common.ErrInvalidToken
	}
	user, err := s.repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, err
	}

	accessToken, err := s.jwtManager.GenerateToken(claims.UserID, user.Nickname, user.Level)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.jwtManager.GenerateRefreshToken(claims.UserID)
	if err != nil {
		return nil, err
	}

	return &domain.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		Nickname:     user.Nickname,
		Level:        user.Level,
	}, nil
}
