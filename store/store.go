// Package store defines the persistence contract used by the services.
// Implementations live in the postgres, mongo and sqlite subpackages; each one
// validates records with ValidateBlog/ValidateUser before writing them and
// reports a duplicate username through UniqueViolation.
package store

import (
	"context"
	"errors"

	"github.com/user/bloglist-go/model"
)

// ErrNotFound is returned when a record with the requested id does not exist.
var ErrNotFound = errors.New("not found")

// Store is the full persistence surface, constructed once in main and
// injected into the services.
type Store interface {
	BlogStore
	UserStore
	// Reset removes every blog and user. Only the test routes call it.
	Reset(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// BlogStore persists blog posts. Reads fill in Blog.Owner.
type BlogStore interface {
	ListBlogs(ctx context.Context) ([]model.Blog, error)
	GetBlog(ctx context.Context, id string) (model.Blog, error)
	CreateBlog(ctx context.Context, blog *model.Blog) error
	// UpdateBlog applies upd to the blog with the given id and returns the
	// stored result. The merged record is validated before it is written.
	UpdateBlog(ctx context.Context, id string, upd model.BlogUpdate) (model.Blog, error)
	DeleteBlog(ctx context.Context, id string) error
}

// UserStore persists accounts. ListUsers fills in User.Blogs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (model.User, error)
	FindUserByUsername(ctx context.Context, username string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// AttachBlogs fills User.Blogs from the owner ids of blogs, keeping the order
// of blogs. Users without blogs get an empty, non-nil slice.
func AttachBlogs(users []model.User, blogs []model.Blog) []model.User {
	if users == nil {
		users = []model.User{}
	}
	byOwner := make(map[string][]model.BlogSummary)
	for _, b := range blogs {
		byOwner[b.OwnerID] = append(byOwner[b.OwnerID], b.Summary())
	}
	for i := range users {
		users[i].Blogs = byOwner[users[i].ID]
		if users[i].Blogs == nil {
			users[i].Blogs = []model.BlogSummary{}
		}
	}
	return users
}
