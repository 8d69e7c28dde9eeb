// Package mongo implements store.Store on MongoDB. Blogs and users live in
// two collections keyed by string ids; the owner expansion is resolved with a
// second query rather than $lookup so reads stay index-only.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/user/bloglist-go/apperror"
	"github.com/user/bloglist-go/model"
	"github.com/user/bloglist-go/store"
)

const (
	blogsCollection = "blogs"
	usersCollection = "users"
)

// Store is a store.Store backed by two MongoDB collections.
type Store struct {
	client *mongo.Client
	blogs  *mongo.Collection
	users  *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// blogDoc and userDoc add an insertion sequence used to list records in
// creation order.
type blogDoc struct {
	model.Blog `bson:",inline"`
	Seq        int64 `bson:"seq"`
}

type userDoc struct {
	model.User `bson:",inline"`
	Seq        int64 `bson:"seq"`
}

var bySeq = options.Find().SetSort(bson.D{{Key: "seq", Value: 1}, {Key: "_id", Value: 1}})

// New uses database on an already connected client and makes sure the
// indexes exist. The store takes ownership of the client.
func New(ctx context.Context, client *mongo.Client, database string) (*Store, error) {
	d := client.Database(database)
	s := &Store{
		client: client,
		blogs:  d.Collection(blogsCollection),
		users:  d.Collection(usersCollection),
	}

	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create username index", err)
	}
	_, err = s.blogs.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "owner_id", Value: 1}}})
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create owner index", err)
	}
	return s, nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// ListBlogs returns every blog in insertion order with its owner expanded.
func (s *Store) ListBlogs(ctx context.Context) ([]model.Blog, error) {
	cur, err := s.blogs.Find(ctx, bson.D{}, bySeq)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list blogs", err)
	}
	var docs []blogDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, apperror.NewDatabaseError("failed to decode blogs", err)
	}

	blogs := make([]model.Blog, 0, len(docs))
	for _, d := range docs {
		blogs = append(blogs, d.Blog)
	}
	if err := s.attachOwners(ctx, blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// GetBlog returns the blog with the given id, or store.ErrNotFound.
func (s *Store) GetBlog(ctx context.Context, id string) (model.Blog, error) {
	var d blogDoc
	err := s.blogs.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Blog{}, store.ErrNotFound
	}
	if err != nil {
		return model.Blog{}, apperror.NewDatabaseError("failed to get blog", err)
	}
	blogs := []model.Blog{d.Blog}
	if err := s.attachOwners(ctx, blogs); err != nil {
		return model.Blog{}, err
	}
	return blogs[0], nil
}

// attachOwners fills Blog.Owner for every blog whose owner still exists.
func (s *Store) attachOwners(ctx context.Context, blogs []model.Blog) error {
	if len(blogs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(blogs))
	seen := make(map[string]bool)
	for _, b := range blogs {
		if !seen[b.OwnerID] {
			seen[b.OwnerID] = true
			ids = append(ids, b.OwnerID)
		}
	}

	cur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return apperror.NewDatabaseError("failed to load blog owners", err)
	}
	var owners []model.UserSummary
	if err := cur.All(ctx, &owners); err != nil {
		return apperror.NewDatabaseError("failed to decode blog owners", err)
	}

	byID := make(map[string]model.UserSummary, len(owners))
	for _, o := range owners {
		byID[o.ID] = o
	}
	for i := range blogs {
		if o, ok := byID[blogs[i].OwnerID]; ok {
			blogs[i].Owner = &o
		}
	}
	return nil
}

// CreateBlog validates and inserts blog, assigning its ID.
func (s *Store) CreateBlog(ctx context.Context, blog *model.Blog) error {
	if blog.ID == "" {
		blog.ID = store.NewID()
	}
	if err := store.ValidateBlog(blog); err != nil {
		return err
	}
	if _, err := s.blogs.InsertOne(ctx, blogDoc{Blog: *blog, Seq: time.Now().UnixNano()}); err != nil {
		return apperror.NewDatabaseError("failed to create blog", err)
	}
	return nil
}

// UpdateBlog sets the non-nil fields of upd and returns the stored result.
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

	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Author != nil {
		set["author"] = *upd.Author
	}
	if upd.URL != nil {
		set["url"] = *upd.URL
	}
	if upd.Likes != nil {
		set["likes"] = *upd.Likes
	}

	res, err := s.blogs.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return model.Blog{}, apperror.NewDatabaseError("failed to update blog", err)
	}
	if res.MatchedCount == 0 {
		return model.Blog{}, store.ErrNotFound
	}
	return s.GetBlog(ctx, id)
}

// DeleteBlog removes the blog with the given id, or returns store.ErrNotFound.
func (s *Store) DeleteBlog(ctx context.Context, id string) error {
	res, err := s.blogs.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperror.NewDatabaseError("failed to delete blog", err)
	}
	if res.DeletedCount == 0 {
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
	_, err := s.users.InsertOne(ctx, userDoc{User: *user, Seq: time.Now().UnixNano()})
	if mongo.IsDuplicateKeyError(err) {
		return store.UniqueViolation("user", "username", err)
	}
	if err != nil {
		return apperror.NewDatabaseError("failed to create user", err)
	}
	return nil
}

// GetUser returns the user with the given id, or store.ErrNotFound.
func (s *Store) GetUser(ctx context.Context, id string) (model.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

// FindUserByUsername looks a user up by username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (model.User, error) {
	return s.findUser(ctx, bson.M{"username": username})
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (model.User, error) {
	var d userDoc
	err := s.users.FindOne(ctx, filter).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, store.ErrNotFound
	}
	if err != nil {
		return model.User{}, apperror.NewDatabaseError("failed to get user", err)
	}
	return d.User, nil
}

// ListUsers returns every user with a summary of the blogs they own.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	cur, err := s.users.Find(ctx, bson.D{}, bySeq)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list users", err)
	}
	var userDocs []userDoc
	if err := cur.All(ctx, &userDocs); err != nil {
		return nil, apperror.NewDatabaseError("failed to decode users", err)
	}

	cur, err = s.blogs.Find(ctx, bson.D{}, bySeq)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list blogs for users", err)
	}
	var blogDocs []blogDoc
	if err := cur.All(ctx, &blogDocs); err != nil {
		return nil, apperror.NewDatabaseError("failed to decode blogs for users", err)
	}

	users := make([]model.User, 0, len(userDocs))
	for _, d := range userDocs {
		users = append(users, d.User)
	}
	blogs := make([]model.Blog, 0, len(blogDocs))
	for _, d := range blogDocs {
		blogs = append(blogs, d.Blog)
	}
	return store.AttachBlogs(users, blogs), nil
}

// Reset empties both collections. The indexes are kept.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.blogs.DeleteMany(ctx, bson.D{}); err != nil {
		return apperror.NewDatabaseError("failed to reset blogs", err)
	}
	if _, err := s.users.DeleteMany(ctx, bson.D{}); err != nil {
		return apperror.NewDatabaseError("failed to reset users", err)
	}
	return nil
}
