// Package sqlite implements store.Store on an embedded SQLite database.
// It backs local development and the handler tests, which run it in
// shared in-memory mode.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/user/bloglist-go/apperror"
	"github.com/user/bloglist-go/db"
	"github.com/user/bloglist-go/model"
	"github.com/user/bloglist-go/store"
)

// Store is a store.Store backed by a SQLite database through sqlx.
type Store struct {
	db *sqlx.DB
}

var _ store.Store = (*Store)(nil)

// Open opens the database at path and brings its schema up to date.
func Open(path string) (*Store, error) {
	conn, err := db.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := applySchema(conn); err != nil {
		_ = conn.Close()
		return nil, apperror.NewMigrationError("failed to apply sqlite schema", err)
	}
	return &Store{db: conn}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrations is an ordered list of SQL migrations.
// Each migration runs exactly once, tracked by the schema_version table.
var migrations = []string{
	// Migration 1: users and blogs
	`
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS blogs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL CHECK (title <> ''),
	author TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL CHECK (url <> ''),
	likes INTEGER NOT NULL DEFAULT 0 CHECK (likes >= 0),
	owner_id TEXT NOT NULL,
	FOREIGN KEY(owner_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_blogs_owner_id ON blogs(owner_id);
`,
}

func applySchema(conn *sqlx.DB) error {
	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return err
	}

	var currentVersion int
	if err := conn.Get(&currentVersion, `SELECT COALESCE(MAX(version), 0) FROM schema_version`); err != nil {
		return err
	}

	for i := currentVersion; i < len(migrations); i++ {
		if _, err := conn.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := conn.Exec(`INSERT INTO schema_version (version) VALUES (?)`, i+1); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", i+1, err)
		}
	}
	return nil
}

// blogRow is a blog joined with its owner's public fields.
type blogRow struct {
	model.Blog
	OwnerUsername sql.NullString `db:"owner_username"`
	OwnerName     sql.NullString `db:"owner_name"`
}

func (r blogRow) toBlog() model.Blog {
	b := r.Blog
	if r.OwnerUsername.Valid {
		b.Owner = &model.UserSummary{ID: b.OwnerID, Username: r.OwnerUsername.String, Name: r.OwnerName.String}
	}
	return b
}

const selectBlogs = `
SELECT b.id, b.title, b.author, b.url, b.likes, b.owner_id,
       u.username AS owner_username, u.name AS owner_name
FROM blogs b
LEFT JOIN users u ON u.id = b.owner_id`

// ListBlogs returns every blog in insertion order with its owner expanded.
func (s *Store) ListBlogs(ctx context.Context) ([]model.Blog, error) {
	var rows []blogRow
	if err := s.db.SelectContext(ctx, &rows, selectBlogs+` ORDER BY b.rowid`); err != nil {
		return nil, apperror.NewDatabaseError("failed to list blogs", err)
	}
	blogs := make([]model.Blog, 0, len(rows))
	for _, r := range rows {
		blogs = append(blogs, r.toBlog())
	}
	return blogs, nil
}

// GetBlog returns the blog with the given id, or store.ErrNotFound.
func (s *Store) GetBlog(ctx context.Context, id string) (model.Blog, error) {
	var row blogRow
	err := s.db.GetContext(ctx, &row, selectBlogs+` WHERE b.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Blog{}, store.ErrNotFound
	}
	if err != nil {
		return model.Blog{}, apperror.NewDatabaseError("failed to get blog", err)
	}
	return row.toBlog(), nil
}

// CreateBlog validates and inserts blog, assigning its ID.
func (s *Store) CreateBlog(ctx context.Context, blog *model.Blog) error {
	if blog.ID == "" {
		blog.ID = store.NewID()
	}
	if err := store.ValidateBlog(blog); err != nil {
		return err
	}
	_, err := s.db.NamedExecContext(ctx, `
INSERT INTO blogs (id, title, author, url, likes, owner_id)
VALUES (:id, :title, :author, :url, :likes, :owner_id)`, blog)
	if err != nil {
		return apperror.NewDatabaseError("failed to create blog", err)
	}
	return nil
}

// UpdateBlog applies the non-nil fields of upd and returns the stored result.
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

	// Only the supplied columns are written, in one statement.
	res, err := s.db.ExecContext(ctx, `
UPDATE blogs SET
	title = COALESCE(?, title),
	author = COALESCE(?, author),
	url = COALESCE(?, url),
	likes = COALESCE(?, likes)
WHERE id = ?`, nullableString(upd.Title), nullableString(upd.Author), nullableString(upd.URL), nullableInt(upd.Likes), id)
	if err != nil {
		return model.Blog{}, apperror.NewDatabaseError("failed to update blog", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Blog{}, store.ErrNotFound
	}
	return s.GetBlog(ctx, id)
}

// DeleteBlog removes the blog with the given id, or returns store.ErrNotFound.
func (s *Store) DeleteBlog(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete blog", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// CreateUser validates and inserts user, assigning its ID.
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = store.NewID()
	}
	if err := store.ValidateUser(user); err != nil {
		return err
	}
	_, err := s.db.NamedExecContext(ctx, `
INSERT INTO users (id, username, name, password_hash)
VALUES (:id, :username, :name, :password_hash)`, user)
	if isUniqueViolation(err) {
		return store.UniqueViolation("user", "username", err)
	}
	if err != nil {
		return apperror.NewDatabaseError("failed to create user", err)
	}
	return nil
}

const selectUsers = `SELECT id, username, name, password_hash FROM users`

// GetUser returns the user with the given id, or store.ErrNotFound.
func (s *Store) GetUser(ctx context.Context, id string) (model.User, error) {
	return s.getUser(ctx, selectUsers+` WHERE id = ?`, id)
}

// FindUserByUsername looks a user up by username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (model.User, error) {
	return s.getUser(ctx, selectUsers+` WHERE username = ?`, username)
}

func (s *Store) getUser(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, store.ErrNotFound
	}
	if err != nil {
		return model.User{}, apperror.NewDatabaseError("failed to get user", err)
	}
	return u, nil
}

// ListUsers returns every user with a summary of the blogs they own.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.SelectContext(ctx, &users, selectUsers+` ORDER BY rowid`); err != nil {
		return nil, apperror.NewDatabaseError("failed to list users", err)
	}
	var blogs []model.Blog
	if err := s.db.SelectContext(ctx, &blogs, `SELECT id, title, author, url, likes, owner_id FROM blogs ORDER BY rowid`); err != nil {
		return nil, apperror.NewDatabaseError("failed to list blogs for users", err)
	}
	return store.AttachBlogs(users, blogs), nil
}

// Reset deletes all blogs and users.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperror.NewDatabaseError("failed to begin reset", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{`DELETE FROM blogs`, `DELETE FROM users`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return apperror.NewDatabaseError("failed to reset", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return apperror.NewDatabaseError("failed to commit reset", err)
	}
	return nil
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
