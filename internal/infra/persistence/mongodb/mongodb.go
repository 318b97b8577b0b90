// Package mongodb implements the repository ports on MongoDB. Multi-document
// work runs in session transactions, which require a replica set.
package mongodb

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const defaultConnectTimeout = 10 * time.Second

// Index names shared with error translation.
const (
	emailUniqueIndex  = "email_unique"
	oneDefaultPerUser = "one_default_per_user"
	assetTypeUnique   = "type_unique"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New connects to MongoDB and ensures indexes on start.
func New(params Params) (*mongo.Database, error) {
	cfg := params.Config.Mongo
	if cfg == nil {
		return nil, errors.New("mongo configuration is missing")
	}

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}

	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(connectTimeout).
		SetAppName(params.Config.Env.ServiceName))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}
	db := client.Database(cfg.Database)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx, nil); err != nil {
				return errors.Wrap(err, "failed to ping MongoDB")
			}
			if err := EnsureIndexes(ctx, db); err != nil {
				return err
			}
			params.Logger.Info("MongoDB connected", slog.String("database", db.Name()))

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return db, nil
}

// EnsureIndexes creates the unique and lookup indexes every repository relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName(emailUniqueIndex).SetUnique(true),
			},
		},
		addressesCollection: {
			{
				Keys: bson.D{{Key: "userId", Value: 1}},
				Options: options.Index().
					SetName(oneDefaultPerUser).
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"isDefault": true, "active": true}),
			},
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "active", Value: 1}},
				Options: options.Index().SetName("user_active"),
			},
		},
		productsCollection: {
			{
				Keys:    bson.D{{Key: "active", Value: 1}, {Key: "category", Value: 1}},
				Options: options.Index().SetName("active_category"),
			},
		},
		designAssetsCollection: {
			{
				Keys:    bson.D{{Key: "type", Value: 1}},
				Options: options.Index().SetName(assetTypeUnique).SetUnique(true),
			},
		},
		ordersCollection: {
			{
				Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("customer_created"),
			},
			{
				Keys:    bson.D{{Key: "trackingTokenUrl", Value: 1}, {Key: "createdAt", Value: 1}},
				Options: options.Index().SetName("tracking_pending"),
			},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "failed to create %s indexes", collection)
		}
	}

	return nil
}
