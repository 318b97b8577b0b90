package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/persistence/memory"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "test-secret"},
		Auth: &config.AuthConfig{
			BcryptCost: 4,
			TokenTTL:   time.Hour,
		},
		Order: &config.OrderConfig{
			EnforceStock: true,
			MaxItems:     10,
		},
		Tracking: &config.TrackingConfig{
			Width:          200,
			Height:         200,
			Timeout:        time.Second,
			MaxAttempts:    2,
			InitialBackoff: time.Millisecond,
			SweepInterval:  time.Minute,
			SweepBatchSize: 10,
		},
		Payment: &config.PaymentConfig{
			Currency: "inr",
			Timeout:  time.Second,
		},
	}
}

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) Generate(ctx context.Context, payload string, width, height int) ([]byte, error) {
	args := m.Called(ctx, payload, width, height)
	png, _ := args.Get(0).([]byte)

	return png, args.Error(1)
}

type mockArtifactStore struct{ mock.Mock }

func (m *mockArtifactStore) Store(ctx context.Context, orderID uuid.UUID, png []byte) (string, error) {
	args := m.Called(ctx, orderID, png)

	return args.String(0), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishOrderStatusChanged(ctx context.Context, event *entity.OrderStatusChanged) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) Close() error {
	return nil
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreatePaymentIntent(ctx context.Context, req service.PaymentIntentRequest) (*service.PaymentIntent, error) {
	args := m.Called(ctx, req)
	intent, _ := args.Get(0).(*service.PaymentIntent)

	return intent, args.Error(1)
}

// serviceFixtures wires every usecase over one in-memory store.
type serviceFixtures struct {
	cfg          *config.Config
	store        *memory.Store
	repos        repository.RepositoryFactory
	authorizer   usecase.Authorizer
	generator    *mockGenerator
	artifacts    *mockArtifactStore
	publisher    *mockPublisher
	gateway      *mockGateway
	tracking     *trackingService
	orders       usecase.OrderUsecase
	addresses    usecase.AddressUsecase
	payments     usecase.PaymentUsecase
	catalog      usecase.CatalogUsecase
	designAssets usecase.DesignAssetUsecase
}

func newServiceFixtures(t *testing.T) *serviceFixtures {
	t.Helper()

	cfg := newTestConfig()
	logger := newDiscardLogger()
	store := memory.NewStore()
	repos := store.Repositories()

	f := &serviceFixtures{
		cfg:       cfg,
		store:     store,
		repos:     repos,
		generator: &mockGenerator{},
		artifacts: &mockArtifactStore{},
		publisher: &mockPublisher{},
		gateway:   &mockGateway{},
	}
	f.authorizer = NewAuthorizer(AuthorizerParams{Metrics: service.NopMetrics{}, Logger: logger})

	f.tracking = NewTrackingService(TrackingServiceParams{
		OrderRepo: repos.NewOrderRepository(),
		Generator: f.generator,
		Store:     f.artifacts,
		Metrics:   service.NopMetrics{},
		Config:    cfg,
		Logger:    logger,
	}).(*trackingService)

	f.orders = NewOrderService(OrderServiceParams{
		TxManager:   store,
		UserRepo:    repos.NewUserRepository(),
		AddressRepo: repos.NewAddressRepository(),
		ProductRepo: repos.NewProductRepository(),
		OrderRepo:   repos.NewOrderRepository(),
		Authorizer:  f.authorizer,
		Tracking:    f.tracking,
		Publisher:   f.publisher,
		Metrics:     service.NopMetrics{},
		Config:      cfg,
		Logger:      logger,
	})

	f.addresses = NewAddressService(AddressServiceParams{
		TxManager:   store,
		AddressRepo: repos.NewAddressRepository(),
		Authorizer:  f.authorizer,
		Logger:      logger,
	})

	f.payments = NewPaymentService(PaymentServiceParams{
		OrderRepo:  repos.NewOrderRepository(),
		Gateway:    f.gateway,
		Authorizer: f.authorizer,
		Metrics:    service.NopMetrics{},
		Config:     cfg,
		Logger:     logger,
	})

	f.catalog = NewCatalogService(CatalogServiceParams{
		UserRepo:    repos.NewUserRepository(),
		ProductRepo: repos.NewProductRepository(),
		Authorizer:  f.authorizer,
		Logger:      logger,
	})

	f.designAssets = NewDesignAssetService(DesignAssetServiceParams{
		AssetRepo:  repos.NewDesignAssetRepository(),
		Authorizer: f.authorizer,
		Logger:     logger,
	})

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = f.tracking.Wait(ctx)
	})

	return f
}

// seedUser stores an active user and returns its principal.
func (f *serviceFixtures) seedUser(t *testing.T, roles ...entity.Role) *entity.Principal {
	t.Helper()

	user := &entity.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "unused",
		FirstName:    "Test",
		LastName:     "User",
		Roles:        entity.NewRoleSet(roles...),
		TenantID:     uuid.New(),
		Active:       true,
	}
	require.NoError(t, f.repos.NewUserRepository().Create(context.Background(), user))

	return &entity.Principal{UserID: user.ID, Email: user.Email, Roles: user.Roles}
}

func (f *serviceFixtures) seedProduct(t *testing.T, name, price string, stock int) *entity.Product {
	t.Helper()

	product := &entity.Product{
		ID:              uuid.New(),
		Name:            name,
		Category:        "apparel",
		BasePrice:       decimal.RequireFromString(price),
		AvailableSizes:  []string{"S", "M", "L"},
		AvailableColors: []string{"black", "white"},
		StockQuantity:   stock,
		Active:          true,
		TenantID:        uuid.New(),
	}
	require.NoError(t, f.repos.NewProductRepository().Create(context.Background(), product))

	return product
}

// expectTracking makes every tracking attempt succeed.
func (f *serviceFixtures) expectTracking() {
	f.generator.On("Generate", mock.Anything, mock.Anything, 200, 200).Return([]byte("png"), nil).Maybe()
	f.artifacts.On("Store", mock.Anything, mock.Anything, []byte("png")).Return("data:image/png;base64,cG5n", nil).Maybe()
}

func (f *serviceFixtures) waitTracking(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.tracking.Wait(ctx))
}
