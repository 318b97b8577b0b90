package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_FillsOptionalSections(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	require.NotNil(t, cfg.Auth)
	assert.False(t, cfg.Auth.LenientRoles)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 200, cfg.Tracking.Width)
	assert.Equal(t, 200, cfg.Tracking.Height)
	assert.Equal(t, 3, cfg.Tracking.MaxAttempts)
	assert.Equal(t, "inr", cfg.Payment.Currency)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Storage:  StorageConfig{Driver: "MEMORY"},
		Tracking: &TrackingConfig{Width: 320, Height: 320, MaxAttempts: 5},
		Payment:  &PaymentConfig{Currency: "usd"},
	}
	cfg.applyDefaults()

	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 320, cfg.Tracking.Width)
	assert.Equal(t, 5, cfg.Tracking.MaxAttempts)
	assert.Equal(t, "usd", cfg.Payment.Currency)
}

func TestValidate_StorageDriver(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "memory", cfg: Config{Storage: StorageConfig{Driver: StorageDriverMemory}}},
		{name: "postgres without section", cfg: Config{Storage: StorageConfig{Driver: StorageDriverPostgres}}, wantErr: true},
		{name: "mongo without uri", cfg: Config{Storage: StorageConfig{Driver: StorageDriverMongo}, Mongo: &MongoConfig{Database: "x"}}, wantErr: true},
		{name: "mongo", cfg: Config{Storage: StorageConfig{Driver: StorageDriverMongo}, Mongo: &MongoConfig{URI: "mongodb://localhost", Database: "x"}}},
		{name: "unknown", cfg: Config{Storage: StorageConfig{Driver: "sqlite"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
