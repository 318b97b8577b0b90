package persistence

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newParams(t *testing.T, driver string) Params {
	cfg := &config.Config{}
	cfg.Storage.Driver = driver

	return Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNew_Memory(t *testing.T) {
	ctx := context.Background()
	result, err := New(newParams(t, config.StorageDriverMemory))
	require.NoError(t, err)

	user := &entity.User{Email: "a@example.com"}
	err = result.TxManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.NewUserRepository().Create(ctx, user)
	})
	require.NoError(t, err)

	found, err := result.Users.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(newParams(t, "cassandra"))
	assert.ErrorContains(t, err, "unknown storage driver")
}
