// Package model holds the records shared by the store, the services and the
// HTTP layer. Struct tags serve three consumers: `json` for the API,
// `db` for sqlx/pgx scans and `bson` for the document store. `validate`
// tags describe the persistence schema and are enforced by store.Validate*.
package model

// Blog is a stored blog post.
type Blog struct {
	ID      string `json:"id" db:"id" bson:"_id"`
	Title   string `json:"title" db:"title" bson:"title" validate:"required"`
	Author  string `json:"author" db:"author" bson:"author"`
	URL     string `json:"url" db:"url" bson:"url" validate:"required"`
	Likes   int    `json:"likes" db:"likes" bson:"likes" validate:"gte=0"`
	OwnerID string `json:"-" db:"owner_id" bson:"owner_id" validate:"required"`

	// Owner is filled in on reads; it is never persisted.
	Owner *UserSummary `json:"user,omitempty" db:"-" bson:"-" validate:"-"`
}

// BlogUpdate carries the fields a PUT may change. Nil means "leave as is".
type BlogUpdate struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
}

// Apply returns a copy of b with the non-nil fields of u applied.
func (u BlogUpdate) Apply(b Blog) Blog {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.URL != nil {
		b.URL = *u.URL
	}
	if u.Likes != nil {
		b.Likes = *u.Likes
	}
	return b
}

// Empty reports whether the update changes nothing.
func (u BlogUpdate) Empty() bool {
	return u.Title == nil && u.Author == nil && u.URL == nil && u.Likes == nil
}

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string `json:"id" db:"id" bson:"_id"`
	Username     string `json:"username" db:"username" bson:"username" validate:"required,min=3"`
	Name         string `json:"name" db:"name" bson:"name"`
	PasswordHash string `json:"-" db:"password_hash" bson:"password_hash" validate:"required"`

	// Blogs is derived from Blog.OwnerID when users are listed.
	Blogs []BlogSummary `json:"blogs" db:"-" bson:"-" validate:"-"`
}

// UserSummary is the owner expansion attached to a Blog.
type UserSummary struct {
	ID       string `json:"id" db:"id" bson:"_id"`
	Username string `json:"username" db:"username" bson:"username"`
	Name     string `json:"name" db:"name" bson:"name"`
}

// Summary projects a user onto the fields exposed next to a blog.
func (u User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Username: u.Username, Name: u.Name}
}

// BlogSummary is the per-blog projection attached to a listed User.
type BlogSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// Summary projects a blog onto the fields exposed next to its owner.
func (b Blog) Summary() BlogSummary {
	return BlogSummary{ID: b.ID, Title: b.Title, Author: b.Author, URL: b.URL, Likes: b.Likes}
}
