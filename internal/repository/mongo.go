package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	collUsers         = "users"
	collPermissions   = "permissions"
	collProjects      = "projects"
	collCollaborators = "collaborators"
	collLocations     = "locations"
	collTemplates     = "templates"
	collCategories    = "categories"
	collEntries       = "entries"
)

// Connect establishes a client and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the indexes the data model relies on:
// at most one collaborator document per (user_id, project_id), and
// permission names as the stable unique key of the catalog.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collCollaborators).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "project_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create collaborator index: %w", err)
	}

	_, err = db.Collection(collPermissions).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create permission index: %w", err)
	}

	_, err = db.Collection(collCollaborators).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "project_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create collaborator project index: %w", err)
	}

	return nil
}

// TxRunner executes a function inside a single mongo session transaction.
// Guard-then-mutate sequences run through it so an authorization check and
// its mutation commit or abort together.
type TxRunner struct {
	client *mongo.Client
}

// NewTxRunner creates a new TxRunner.
func NewTxRunner(client *mongo.Client) *TxRunner {
	return &TxRunner{client: client}
}

// WithinTransaction runs fn inside a transaction. The context passed to fn
// must be used for every store call made within it.
func (t *TxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return err
}
