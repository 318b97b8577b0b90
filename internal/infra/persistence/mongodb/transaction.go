package mongodb

import (
	"context"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

type sessionTransactionManager struct {
	db *mongo.Database
}

// NewTransactionManager runs units of work in MongoDB session transactions.
func NewTransactionManager(db *mongo.Database) repository.TransactionManager {
	return &sessionTransactionManager{db: db}
}

// Execute may invoke fn more than once: the driver retries the whole callback
// on transient transaction errors such as write conflicts.
func (tm *sessionTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	session, err := tm.db.Client().StartSession()
	if err != nil {
		return errors.Wrap(err, "failed to start session")
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(&repositoryFactory{db: tm.db, session: session})
	})

	return err
}

type repositoryFactory struct {
	db      *mongo.Database
	session mongo.Session
}

// NewRepositories returns repositories that are not bound to a session.
func NewRepositories(db *mongo.Database) repository.RepositoryFactory {
	return &repositoryFactory{db: db}
}

func (f *repositoryFactory) NewUserRepository() repository.UserRepository {
	return &userRepository{base: f.base(usersCollection)}
}

func (f *repositoryFactory) NewAddressRepository() repository.AddressRepository {
	return &addressRepository{base: f.base(addressesCollection)}
}

func (f *repositoryFactory) NewProductRepository() repository.ProductRepository {
	return &productRepository{base: f.base(productsCollection)}
}

func (f *repositoryFactory) NewOrderRepository() repository.OrderRepository {
	return &orderRepository{base: f.base(ordersCollection)}
}

func (f *repositoryFactory) NewDesignAssetRepository() repository.DesignAssetRepository {
	return &designAssetRepository{base: f.base(designAssetsCollection)}
}

func (f *repositoryFactory) base(collection string) base {
	return base{coll: f.db.Collection(collection), session: f.session}
}

// base binds a collection to an optional session.
type base struct {
	coll    *mongo.Collection
	session mongo.Session
}

// ctx attaches the session so every call joins the open transaction.
func (b base) ctx(ctx context.Context) context.Context {
	if b.session == nil {
		return ctx
	}

	return mongo.NewSessionContext(ctx, b.session)
}
