package repository

import "context"

// TransactionManager runs multi-repository writes atomically. Order placement
// (stock decrement plus order insert) and default-address changes go through it.
type TransactionManager interface {
	// Execute commits when fn returns nil and rolls back otherwise. Repositories
	// obtained from the factory share the transaction; repositories injected
	// elsewhere do not.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to one transaction.
type RepositoryFactory interface {
	NewUserRepository() UserRepository
	NewAddressRepository() AddressRepository
	NewProductRepository() ProductRepository
	NewOrderRepository() OrderRepository
	NewDesignAssetRepository() DesignAssetRepository
}
