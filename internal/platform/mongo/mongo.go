package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/phrazzld/bloggers-api/internal/store"
)

const (
	usersCollection    = "users"
	blogsCollection    = "blogs"
	postsCollection    = "posts"
	commentsCollection = "comments"

	loginIndex = "uniq_login"
	emailIndex = "uniq_email"
)

// Mongo is a thin adapter holding the client and database handle.
type Mongo struct {
	client *mongodriver.Client
	db     *mongodriver.Database
	logger *slog.Logger
}

// Connect dials uri, verifies the primary is reachable and ensures indexes
// on database name.
func Connect(ctx context.Context, uri, name string, timeout time.Duration, logger *slog.Logger) (*Mongo, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: empty uri")
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri).SetTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	m := &Mongo{
		client: cli,
		db:     cli.Database(name),
		logger: logger.With(slog.String("component", "mongo")),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(context.Background())
		return nil, err
	}

	m.logger.Info("connected to mongo", slog.String("database", name))
	return m, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ping checks that the primary is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// ensureIndexes creates the unique user indexes and the indexes backing the
// default createdAt ordering and parent scopes.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	byCollection := map[string][]mongodriver.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "login", Value: 1}}, Options: options.Index().SetName(loginIndex).SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName(emailIndex).SetUnique(true)},
			{Keys: bson.D{{Key: "emailConfirmation.confirmationCode", Value: 1}}, Options: options.Index().SetName("confirmation_code")},
			{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, Options: options.Index().SetName("created_desc")},
		},
		blogsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, Options: options.Index().SetName("created_desc")},
		},
		postsCollection: {
			{Keys: bson.D{{Key: "blogId", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("blog_created_desc")},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "postId", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("post_created_desc")},
		},
	}

	for name, models := range byCollection {
		if _, err := m.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo ensure indexes on %s: %w", name, err)
		}
	}
	return nil
}

// DeleteAll implements store.Cleaner.
func (m *Mongo) DeleteAll(ctx context.Context) error {
	for _, name := range []string{commentsCollection, postsCollection, blogsCollection, usersCollection} {
		if _, err := m.db.Collection(name).DeleteMany(ctx, bson.D{}); err != nil {
			return fmt.Errorf("mongo clear %s: %w", name, err)
		}
	}
	return nil
}

// Stores wires every MongoDB store on m.
func (m *Mongo) Stores() store.Stores {
	return store.Stores{
		Users:    NewUserStore(m.db.Collection(usersCollection)),
		Blogs:    NewBlogStore(m.db.Collection(blogsCollection)),
		Posts:    NewPostStore(m.db.Collection(postsCollection)),
		Comments: NewCommentStore(m.db.Collection(commentsCollection)),
		Cleaner:  m,
	}
}
