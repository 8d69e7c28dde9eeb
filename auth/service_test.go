package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/bloglist-go/apperror"
	"github.com/user/bloglist-go/config"
	"github.com/user/bloglist-go/model"
	"github.com/user/bloglist-go/store/sqlite"
)

const testSecret = "test-secret"

func newTestService(t *testing.T) (*Service, *sqlite.Store) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	st, err := sqlite.Open("file:auth_" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st, config.AuthConfig{JWTSecret: testSecret, BcryptCost: bcrypt.MinCost}), st
}

func seedUser(t *testing.T, svc *Service, st *sqlite.Store, username, password string) model.User {
	t.Helper()
	hash, err := svc.HashPassword(password)
	require.NoError(t, err)
	u := model.User{Username: username, Name: "Superuser", PasswordHash: hash}
	require.NoError(t, st.CreateUser(context.Background(), &u))
	return u
}

func TestLogin(t *testing.T) {
	svc, st := newTestService(t)
	user := seedUser(t, svc, st, "root", "sekret")

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "root", Password: "sekret"})
	require.NoError(t, err)
	assert.Equal(t, "root", resp.Username)
	assert.Equal(t, "Superuser", resp.Name)
	assert.Equal(t, user.ID, resp.ID)

	claims, err := svc.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "root", claims.Username)
	assert.Nil(t, claims.ExpiresAt)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, st := newTestService(t)
	seedUser(t, svc, st, "root", "sekret")

	for _, req := range []LoginRequest{
		{Username: "root", Password: "wrong"},
		{Username: "nobody", Password: "sekret"},
	} {
		_, err := svc.Login(context.Background(), req)
		require.Error(t, err)
		assert.True(t, apperror.IsAuthError(err))
		appErr, _ := apperror.FromError(err)
		assert.Equal(t, "invalid username or password", appErr.Message)
	}
}

func TestVerifyToken(t *testing.T) {
	svc, _ := newTestService(t)
	user := model.User{ID: "u1", Username: "root"}

	valid, err := svc.IssueToken(user)
	require.NoError(t, err)

	otherSecret := NewService(nil, config.AuthConfig{JWTSecret: "other"})
	forged, err := otherSecret.IssueToken(user)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Username: "root", UserID: "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	empty, err := svc.IssueToken(model.User{})
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "valid", token: valid},
		{name: "wrong secret", token: forged, wantErr: true},
		{name: "alg none", token: none, wantErr: true},
		{name: "empty claims", token: empty, wantErr: true},
		{name: "garbage", token: "not.a.token", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.VerifyToken(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u1", claims.UserID)
		})
	}
}

func TestHashPassword(t *testing.T) {
	svc, _ := newTestService(t)
	hash, err := svc.HashPassword("sekret")
	require.NoError(t, err)
	assert.NotEqual(t, "sekret", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("sekret")))

	_, err = svc.HashPassword(strings.Repeat("a", 73))
	require.Error(t, err)
	assert.True(t, apperror.IsBadRequestError(err))
}
