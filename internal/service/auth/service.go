package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"portfolio-backend/internal/database"
	internaljwt "portfolio-backend/internal/jwt"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

var createTokenWithRefresh = internaljwt.CreateTokenWithRefresh
var refreshAccessToken = internaljwt.RefreshToken

// SetTokenIssuer substitutes the token mint for tests. Passing nil restores
// the real implementation.
func SetTokenIssuer(issuer func(internaljwt.User, internaljwt.Role, int64) (internaljwt.TokenResponse, error)) {
	if issuer == nil {
		createTokenWithRefresh = internaljwt.CreateTokenWithRefresh
		return
	}
	createTokenWithRefresh = issuer
}

func SetTokenRefresher(refresher func(string, internaljwt.Role) (string, error)) {
	if refresher == nil {
		refreshAccessToken = internaljwt.RefreshToken
		return
	}
	refreshAccessToken = refresher
}

func New(db *database.Database) *Service {
	return NewWithRepository(NewDynamoRepository(db), time.Now)
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{
		repo: repo,
		now:  now,
	}
}

// Login verifies an admin's credentials and issues access and refresh tokens.
// Unknown emails and wrong passwords produce the same response so the login
// form cannot be used to enumerate accounts.
func (s *Service) Login(ctx context.Context, params LoginParams) (AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	password := strings.TrimSpace(params.Password)

	if email == "" || password == "" {
		return AuthResult{}, newError(ErrorCodeValidation, "Email and password are required", nil)
	}

	admin, err := s.repo.GetAdmin(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, newError(ErrorCodeUnauthorized, "Invalid credentials", nil)
		}
		return AuthResult{}, newError(ErrorCodeInternal, "Failed to log in", err)
	}

	if !internaljwt.ValidatePassword(admin.PasswordHash, password) {
		return AuthResult{}, newError(ErrorCodeUnauthorized, "Invalid credentials", nil)
	}

	tokens, err := createTokenWithRefresh(internaljwt.User{
		Id:    admin.Email,
		Email: admin.Email,
	}, internaljwt.RoleAdmin, 0)
	if err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "Failed to issue tokens", err)
	}

	return AuthResult{
		Admin:  admin,
		Tokens: tokens,
	}, nil
}

// Refresh exchanges a refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", newError(ErrorCodeValidation, "Refresh token is required", nil)
	}

	accessToken, err := refreshAccessToken(refreshToken, internaljwt.RoleAdmin)
	if err != nil {
		return "", newError(ErrorCodeUnauthorized, "Invalid refresh token", err)
	}
	return accessToken, nil
}
