package mongodb

import (
	"context"

	"github.com/courseforge/courseforge/internal/config"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/logger"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DB wraps the application database handle. Repositories reach collections
// through it; the client is kept only for connection lifecycle.
type DB struct {
	*mongo.Database
	client *mongo.Client
}

// NewDB connects to MongoDB and pings it before handing out the handle.
func NewDB(ctx context.Context, cfg *config.Configuration, logger *logger.Logger) (*DB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(
		options.Client().
			ApplyURI(cfg.Mongo.URI).
			SetConnectTimeout(cfg.Mongo.ConnectTimeout).
			SetRegistry(newRegistry()).
			SetRetryWrites(true).
			SetRetryReads(true),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create MongoDB client").
			Mark(ierr.ErrDatabase)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to reach MongoDB").
			Mark(ierr.ErrDatabase)
	}

	logger.Infow("connected to mongodb", "database", cfg.Mongo.Database)

	return &DB{
		Database: client.Database(cfg.Mongo.Database),
		client:   client,
	}, nil
}

// Close disconnects the underlying client.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
