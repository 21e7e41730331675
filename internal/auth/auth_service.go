package auth

import (
	"context"
	"os"
	"strconv"
	"time"

	autherrors "github.com/Qoxxoraliyev/employee-management/internal/auth/errors"
	"github.com/Qoxxoraliyev/employee-management/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (LoginResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
}

type service struct {
	users  user.Repository
	logger *zap.Logger
}

func NewService(users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, logger: l}
}

// Login deliberately answers every failure with the same credentials
// error so callers cannot probe which usernames exist.
func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	u, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	resp, err := s.issueTokens(u)
	if err != nil {
		return LoginResponse{}, err
	}

	s.logger.Info("login success",
		zap.Int64("user_id", u.ID),
		zap.String("username", u.Username),
	)
	return resp, nil
}

// RefreshToken verifies the refresh token and rotates both tokens.
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return LoginResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return LoginResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return LoginResponse{}, autherrors.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return LoginResponse{}, autherrors.ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return LoginResponse{}, autherrors.ErrUserNotFound
	}

	resp, err := s.issueTokens(u)
	if err != nil {
		return LoginResponse{}, err
	}

	s.logger.Info("token refreshed", zap.Int64("user_id", u.ID))
	return resp, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}

	return mapToAuthResponse(u), nil
}

func (s *service) issueTokens(u *user.User) (LoginResponse, error) {
	accessToken, err := generateToken(u, accessTokenTTL)
	if err != nil {
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := generateToken(u, refreshTokenTTL)
	if err != nil {
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         mapToAuthResponse(u),
	}, nil
}

func generateToken(u *user.User, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  strconv.FormatInt(u.ID, 10),
		"username": u.Username,
		"role":     u.RoleName(),
		"exp":      time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(u *user.User) AuthResponse {
	return AuthResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.RoleName(),
	}
}
