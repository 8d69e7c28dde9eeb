// Package auth handles authentication: checking credentials at login, issuing
// and verifying session tokens, and carrying the caller's identity through the
// request context.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/bloglist-go/apperror"
	"github.com/user/bloglist-go/config"
	"github.com/user/bloglist-go/model"
	"github.com/user/bloglist-go/store"
)

// errInvalidCredentials is returned for an unknown user and for a wrong
// password alike, so a caller cannot tell which one failed.
const errInvalidCredentials = "invalid username or password"

// Service provides authentication-related services.
type Service struct {
	users      store.UserStore
	authConfig config.AuthConfig
}

// NewService creates a new Service. Dependencies are injected explicitly.
func NewService(users store.UserStore, authConfig config.AuthConfig) *Service {
	return &Service{
		users:      users,
		authConfig: authConfig,
	}
}

// Claims is the payload of a session token. Tokens carry no expiry, so
// RegisteredClaims is left empty when issuing.
type Claims struct {
	Username string `json:"username"`
	UserID   string `json:"id"`
	jwt.RegisteredClaims
}

// Login checks the credentials and returns a fresh session token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NewAuthError(errInvalidCredentials, nil)
		}
		return nil, err
	}

	// `bcrypt.CompareHashAndPassword` returns bcrypt.ErrMismatchedHashAndPassword on a wrong password.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuthError(errInvalidCredentials, nil)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
		ID:       user.ID,
	}, nil
}

// IssueToken signs an HS256 token for user.
func (s *Service) IssueToken(user model.User) (string, error) {
	claims := Claims{Username: user.Username, UserID: user.ID}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.authConfig.JWTSecret))
	if err != nil {
		return "", apperror.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

// VerifyToken checks the signature of tokenString and returns its claims.
// Only HS256 is accepted; a token without both claims is rejected.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.authConfig.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	if claims.UserID == "" || claims.Username == "" {
		return nil, errors.New("token is missing the id or username claim")
	}
	return claims, nil
}

// HashPassword hashes a plaintext password with the configured bcrypt cost.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.authConfig.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperror.NewBadRequestError("password must be at most 72 bytes long", err)
	}
	if err != nil {
		return "", apperror.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}
