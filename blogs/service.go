package blogs

import (
	"context"
	"errors"

	"github.com/user/bloglist-go/apperror"
	"github.com/user/bloglist-go/auth"
	"github.com/user/bloglist-go/model"
	"github.com/user/bloglist-go/stats"
	"github.com/user/bloglist-go/store"
)

// BlogService holds the blog business rules on top of the store.
type BlogService struct {
	blogs store.BlogStore
	users store.UserStore
}

// NewBlogService creates a new BlogService.
func NewBlogService(blogs store.BlogStore, users store.UserStore) *BlogService {
	return &BlogService{blogs: blogs, users: users}
}

// List returns every blog with its owner expanded.
func (s *BlogService) List(ctx context.Context) ([]model.Blog, error) {
	return s.blogs.ListBlogs(ctx)
}

// Get returns one blog, or a NotFound error.
func (s *BlogService) Get(ctx context.Context, id string) (*model.Blog, error) {
	blog, err := s.blogs.GetBlog(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &blog, nil
}

// Create stores a blog owned by the caller. A token whose user has since been
// removed is treated as invalid.
func (s *BlogService) Create(ctx context.Context, caller auth.Identity, req CreateBlogRequest) (*model.Blog, error) {
	owner, err := s.users.GetUser(ctx, caller.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.NewAuthError("token invalid", err)
	}
	if err != nil {
		return nil, err
	}

	blog := &model.Blog{
		Title:   req.Title,
		Author:  req.Author,
		URL:     req.URL,
		Likes:   req.likes(),
		OwnerID: owner.ID,
	}
	if err := s.blogs.CreateBlog(ctx, blog); err != nil {
		return nil, err
	}
	blog.Owner = owner.Summary()
	return blog, nil
}

// Update applies a partial update. Any client may update any blog.
func (s *BlogService) Update(ctx context.Context, id string, upd model.BlogUpdate) (*model.Blog, error) {
	blog, err := s.blogs.UpdateBlog(ctx, id, upd)
	if err != nil {
		return nil, notFound(err)
	}
	return &blog, nil
}

// Delete removes a blog. Only its owner may do so.
func (s *BlogService) Delete(ctx context.Context, caller auth.Identity, id string) error {
	blog, err := s.blogs.GetBlog(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if blog.OwnerID != caller.UserID {
		return apperror.NewUnauthorizedError("only the creator can delete a blog", nil)
	}
	return notFound(s.blogs.DeleteBlog(ctx, id))
}

// Stats aggregates over every stored blog.
func (s *BlogService) Stats(ctx context.Context) (stats.Summary, error) {
	all, err := s.blogs.ListBlogs(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(all), nil
}

// notFound maps store.ErrNotFound to the API error and passes anything else
// through unchanged.
func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperror.NewNotFoundError("blog not found", err)
	}
	return err
}
