package users

import (
	"context"
	"unicode/utf8"

	"github.com/user/bloglist-go/apperror"
	"github.com/user/bloglist-go/model"
	"github.com/user/bloglist-go/store"
)

// PasswordHasher is implemented by auth.Service.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// UserService provides signup and listing.
type UserService struct {
	users  store.UserStore
	hasher PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(users store.UserStore, hasher PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// Create registers a new account. The password length is checked here; the
// username rules and uniqueness are enforced by the store.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return nil, apperror.NewBadRequestError("password must be at least 3 characters long", nil)
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, apperror.NewBadRequestError("password must be at most 72 bytes long", nil)
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		Blogs:        []model.BlogSummary{},
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns every user with the blogs they own.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.ListUsers(ctx)
}
