// Package memory is an in-process implementation of the repository ports for
// local runs and tests. All records are cloned on the way in and out.
package memory

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

type state struct {
	users     map[uuid.UUID]*entity.User
	addresses map[uuid.UUID]*entity.Address
	products  map[uuid.UUID]*entity.Product
	orders    map[uuid.UUID]*entity.Order
	assets    map[uuid.UUID]*entity.DesignAsset
}

func newState() *state {
	return &state{
		users:     make(map[uuid.UUID]*entity.User),
		addresses: make(map[uuid.UUID]*entity.Address),
		products:  make(map[uuid.UUID]*entity.Product),
		orders:    make(map[uuid.UUID]*entity.Order),
		assets:    make(map[uuid.UUID]*entity.DesignAsset),
	}
}

func (st *state) clone() *state {
	c := newState()
	for id, u := range st.users {
		c.users[id] = cloneUser(u)
	}
	for id, a := range st.addresses {
		c.addresses[id] = cloneAddress(a)
	}
	for id, p := range st.products {
		c.products[id] = cloneProduct(p)
	}
	for id, o := range st.orders {
		c.orders[id] = cloneOrder(o)
	}
	for id, a := range st.assets {
		c.assets[id] = cloneDesignAsset(a)
	}

	return c
}

// Store holds every collection. Writers outside a transaction and whole
// transactions are serialized by gate; mu guards swaps and in-place writes of data.
// A transaction works on a private copy that replaces data only on commit, so
// readers never observe uncommitted writes.
type Store struct {
	gate sync.Mutex
	mu   sync.RWMutex
	data *state
	now  func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		data: newState(),
		now:  time.Now,
	}
}

// read runs fn against the transaction copy when tx is set, else under the read lock.
func (s *Store) read(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(s.data)
}

// write runs fn against the transaction copy when tx is set. The owning
// transaction already holds gate.
func (s *Store) write(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}

	s.gate.Lock()
	defer s.gate.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.data)
}

// Execute runs fn with exclusive write access on a copy of the data. The copy
// is published when fn returns nil and dropped when fn fails or panics.
func (s *Store) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	s.gate.Lock()
	defer s.gate.Unlock()

	s.mu.RLock()
	tx := s.data.clone()
	s.mu.RUnlock()

	if err := fn(&factory{store: s, tx: tx}); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = tx
	s.mu.Unlock()

	return nil
}

type factory struct {
	store *Store
	tx    *state
}

func (f *factory) NewUserRepository() repository.UserRepository {
	return &userRepository{store: f.store, tx: f.tx}
}

func (f *factory) NewAddressRepository() repository.AddressRepository {
	return &addressRepository{store: f.store, tx: f.tx}
}

func (f *factory) NewProductRepository() repository.ProductRepository {
	return &productRepository{store: f.store, tx: f.tx}
}

func (f *factory) NewOrderRepository() repository.OrderRepository {
	return &orderRepository{store: f.store, tx: f.tx}
}

func (f *factory) NewDesignAssetRepository() repository.DesignAssetRepository {
	return &designAssetRepository{store: f.store, tx: f.tx}
}

// Repositories returns repositories that are not bound to a transaction.
func (s *Store) Repositories() repository.RepositoryFactory {
	return &factory{store: s}
}

func (s *Store) touch(created, updated *time.Time) {
	now := s.now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}
