package mongo

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/bloglist-go/apperror"
	"github.com/user/bloglist-go/config"
	"github.com/user/bloglist-go/db"
	"github.com/user/bloglist-go/model"
	"github.com/user/bloglist-go/store"
)

// newTestStore uses a database named after the test on TEST_MONGODB_URI.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI not set")
	}
	cfg := &config.MongoConfig{URI: uri, Database: "bloglist_" + strings.ToLower(t.Name())}
	client, err := db.ConnectMongo(cfg)
	require.NoError(t, err)

	s, err := New(context.Background(), client, cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Database(cfg.Database).Drop(context.Background())
		s.Close()
	})
	return s
}

func TestMongoStore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := model.User{Username: "root", Name: "Superuser", PasswordHash: "hash"}
	require.NoError(t, s.CreateUser(ctx, &owner))

	dup := model.User{Username: "root", PasswordHash: "hash"}
	err := s.CreateUser(ctx, &dup)
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))

	for _, title := range []string{"first", "second"} {
		b := model.Blog{Title: title, URL: "http://example.com/" + title, OwnerID: owner.ID}
		require.NoError(t, s.CreateBlog(ctx, &b))
	}

	blogs, err := s.ListBlogs(ctx)
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Equal(t, "first", blogs[0].Title)
	require.NotNil(t, blogs[0].Owner)
	assert.Equal(t, "Superuser", blogs[0].Owner.Name)

	author := "Robert C. Martin"
	updated, err := s.UpdateBlog(ctx, blogs[1].ID, model.BlogUpdate{Author: &author})
	require.NoError(t, err)
	assert.Equal(t, author, updated.Author)
	assert.Equal(t, "second", updated.Title)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Len(t, users[0].Blogs, 2)

	require.NoError(t, s.DeleteBlog(ctx, blogs[0].ID))
	assert.ErrorIs(t, s.DeleteBlog(ctx, blogs[0].ID), store.ErrNotFound)

	require.NoError(t, s.Reset(ctx))
	_, err = s.FindUserByUsername(ctx, "root")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
