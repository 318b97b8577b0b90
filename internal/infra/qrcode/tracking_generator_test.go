package qrcode

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPNG(t *testing.T, data []byte) {
	t.Helper()
	require.GreaterOrEqual(t, len(data), 4)
	// PNG magic number
	assert.Equal(t, byte(0x89), data[0])
	assert.Equal(t, byte(0x50), data[1])
	assert.Equal(t, byte(0x4E), data[2])
	assert.Equal(t, byte(0x47), data[3])
}

func TestNewTrackingGenerator(t *testing.T) {
	for _, level := range []string{"L", "M", "Q", "H", "invalid"} {
		t.Run(level, func(t *testing.T) {
			assert.NotNil(t, NewTrackingGenerator(level))
		})
	}
}

func TestTrackingGenerator_GenerateOrderPayload(t *testing.T) {
	gen := NewTrackingGenerator("M")
	payload := entity.TrackingPayload(uuid.New())

	data, err := gen.Generate(context.Background(), payload, 200, 200)
	require.NoError(t, err)
	assertPNG(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestTrackingGenerator_NonSquare(t *testing.T) {
	gen := NewTrackingGenerator("H")

	data, err := gen.Generate(context.Background(), "ORDER:abc", 300, 200)
	require.NoError(t, err)
	assertPNG(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestTrackingGenerator_InvalidInput(t *testing.T) {
	gen := NewTrackingGenerator("M")

	_, err := gen.Generate(context.Background(), "", 200, 200)
	assert.Error(t, err)

	_, err = gen.Generate(context.Background(), "ORDER:x", 0, 200)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gen.Generate(ctx, "ORDER:x", 200, 200)
	assert.ErrorIs(t, err, context.Canceled)
}
