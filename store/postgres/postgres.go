// Package postgres implements store.Store on PostgreSQL through a pgx pool.
// The schema is owned by the SQL files under migrations/ and applied with
// db.RunMigrations before the store is used.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/bloglist-go/apperror"
	"github.com/user/bloglist-go/model"
	"github.com/user/bloglist-go/store"
)

const pgUniqueViolation = "23505" // PostgreSQL unique violation error code

// Store is a store.Store backed by a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

var _ store.Store = (*Store)(nil)

// New wraps an open pool. The store takes ownership and closes it in Close.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Ping checks that a pooled connection can reach the server.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const selectBlogs = `
SELECT b.id, b.title, b.author, b.url, b.likes, b.owner_id, u.username, u.name
FROM blogs b
LEFT JOIN users u ON u.id = b.owner_id`

func scanBlog(row pgx.Row) (model.Blog, error) {
	var b model.Blog
	var ownerUser, ownerName *string
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.OwnerID, &ownerUser, &ownerName); err != nil {
		return model.Blog{}, err
	}
	if ownerUser != nil {
		b.Owner = &model.UserSummary{ID: b.OwnerID, Username: *ownerUser}
		if ownerName != nil {
			b.Owner.Name = *ownerName
		}
	}
	return b, nil
}

// ListBlogs returns every blog ordered by creation time.
func (s *Store) ListBlogs(ctx context.Context) ([]model.Blog, error) {
	rows, err := s.pool.Query(ctx, selectBlogs+` ORDER BY b.created_at, b.id`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list blogs", err)
	}
	defer rows.Close()

	blogs := []model.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan blog", err)
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list blogs", err)
	}
	return blogs, nil
}

// GetBlog returns the blog with the given id, or store.ErrNotFound.
func (s *Store) GetBlog(ctx context.Context, id string) (model.Blog, error) {
	b, err := scanBlog(s.pool.QueryRow(ctx, selectBlogs+` WHERE b.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Blog{}, store.ErrNotFound
	}
	if err != nil {
		return model.Blog{}, apperror.NewDatabaseError("failed to get blog", err)
	}
	return b, nil
}

// CreateBlog validates and inserts blog, assigning its ID.
func (s *Store) CreateBlog(ctx context.Context, blog *model.Blog) error {
	if blog.ID == "" {
		blog.ID = store.NewID()
	}
	if err := store.ValidateBlog(blog); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO blogs (id, title, author, url, likes, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		blog.ID, blog.Title, blog.Author, blog.URL, blog.Likes, blog.OwnerID)
	if err != nil {
		return apperror.NewDatabaseError("failed to create blog", err)
	}
	return nil
}

// UpdateBlog applies the non-nil fields of upd in a single statement.
func (s *Store) UpdateBlog(ctx context.Context, id string, upd model.BlogUpdate) (model.Blog, error) {
	current, err := s.GetBlog(ctx, id)
	if err != nil {
		return model.Blog{}, err
	}
	merged := upd.Apply(current)
	if err := store.ValidateBlog(&merged); err != nil {
		return model.Blog{}, err
	}
	if upd.Empty() {
		return current, nil
	}

	// pgx encodes a nil pointer as NULL, so untouched columns keep their value.
	tag, err := s.pool.Exec(ctx, `
		UPDATE blogs SET
			title = COALESCE($1, title),
			author = COALESCE($2, author),
			url = COALESCE($3, url),
			likes = COALESCE($4, likes)
		WHERE id = $5`,
		upd.Title, upd.Author, upd.URL, upd.Likes, id)
	if err != nil {
		return model.Blog{}, apperror.NewDatabaseError("failed to update blog", err)
	}
	if tag.RowsAffected() == 0 {
		return model.Blog{}, store.ErrNotFound
	}
	return s.GetBlog(ctx, id)
}

// DeleteBlog removes the blog with the given id, or returns store.ErrNotFound.
func (s *Store) DeleteBlog(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete blog", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// CreateUser validates and inserts user. A taken username is a validation error.
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = store.NewID()
	}
	if err := store.ValidateUser(user); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, username, name, password_hash)
		VALUES ($1, $2, $3, $4)`,
		user.ID, user.Username, user.Name, user.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return store.UniqueViolation("user", "username", err)
		}
		return apperror.NewDatabaseError("failed to create user", err)
	}
	return nil
}

const selectUsers = `SELECT id, username, name, password_hash FROM users`

// GetUser returns the user with the given id, or store.ErrNotFound.
func (s *Store) GetUser(ctx context.Context, id string) (model.User, error) {
	return s.getUser(ctx, selectUsers+` WHERE id = $1`, id)
}

// FindUserByUsername looks a user up by username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (model.User, error) {
	return s.getUser(ctx, selectUsers+` WHERE username = $1`, username)
}

func (s *Store) getUser(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, store.ErrNotFound
	}
	if err != nil {
		return model.User{}, apperror.NewDatabaseError("failed to get user", err)
	}
	return u, nil
}

// ListUsers returns every user with a summary of the blogs they own.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.pool.Query(ctx, selectUsers+` ORDER BY created_at, id`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list users", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.User, error) {
		var u model.User
		err := row.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash)
		return u, err
	})
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to scan users", err)
	}

	rows, err = s.pool.Query(ctx, `SELECT id, title, author, url, likes, owner_id FROM blogs ORDER BY created_at, id`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list blogs for users", err)
	}
	blogs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Blog, error) {
		var b model.Blog
		err := row.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.OwnerID)
		return b, err
	})
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to scan blogs for users", err)
	}
	return store.AttachBlogs(users, blogs), nil
}

// Reset deletes all blogs and users in one transaction.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return apperror.NewDatabaseError("failed to begin reset", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM blogs`); err != nil {
		return apperror.NewDatabaseError("failed to reset blogs", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM users`); err != nil {
		return apperror.NewDatabaseError("failed to reset users", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return apperror.NewDatabaseError("failed to commit reset", err)
	}
	return nil
}
