// Package persistence selects the storage driver named by storage.driver and
// exposes its repositories to the fx graph.
package persistence

import (
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/memory"
	"storefront/internal/infra/persistence/mongodb"
	"storefront/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Result provides the transaction manager and pool-bound repositories.
type Result struct {
	fx.Out

	TxManager    repository.TransactionManager
	Users        repository.UserRepository
	Addresses    repository.AddressRepository
	Products     repository.ProductRepository
	Orders       repository.OrderRepository
	DesignAssets repository.DesignAssetRepository
}

// New opens the configured store.
func New(params Params) (Result, error) {
	var (
		txManager repository.TransactionManager
		factory   repository.RepositoryFactory
	)

	driver := params.Config.Storage.Driver
	switch driver {
	case config.StorageDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Result{}, err
		}
		txManager = postgres.NewTransactionManager(db)
		factory = postgres.NewRepositories(db)
	case config.StorageDriverMongo:
		db, err := mongodb.New(mongodb.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Result{}, err
		}
		txManager = mongodb.NewTransactionManager(db)
		factory = mongodb.NewRepositories(db)
	case config.StorageDriverMemory:
		store := memory.NewStore()
		txManager = store
		factory = store.Repositories()
		params.Logger.Warn("Using in-memory storage; data is lost on restart")
	default:
		return Result{}, errors.Errorf("unknown storage driver %q", driver)
	}

	params.Logger.Info("Storage initialized", slog.String("driver", driver))

	return Result{
		TxManager:    txManager,
		Users:        factory.NewUserRepository(),
		Addresses:    factory.NewAddressRepository(),
		Products:     factory.NewProductRepository(),
		Orders:       factory.NewOrderRepository(),
		DesignAssets: factory.NewDesignAssetRepository(),
	}, nil
}
