package artifact

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

var samplePNG = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestDataURLStore_Store(t *testing.T) {
	url, err := NewDataURLStore().Store(context.Background(), uuid.New(), samplePNG)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, samplePNG, decoded)

	_, err = NewDataURLStore().Store(context.Background(), uuid.New(), nil)
	assert.Error(t, err)
}

func TestBlobStore_Store(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	store := NewBlobStore(bucket, "https://cdn.example.com/")
	defer store.Close()

	orderID := uuid.New()
	url, err := store.Store(ctx, orderID, samplePNG)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/tracking/"+orderID.String()+".png", url)

	stored, err := bucket.ReadAll(ctx, ObjectKey(orderID))
	require.NoError(t, err)
	assert.Equal(t, samplePNG, stored)

	attrs, err := bucket.Attributes(ctx, ObjectKey(orderID))
	require.NoError(t, err)
	assert.Equal(t, "image/png", attrs.ContentType)
}

func TestBlobStore_StoreWithoutBaseURL(t *testing.T) {
	store := NewBlobStore(memblob.OpenBucket(nil), "")
	defer store.Close()

	orderID := uuid.New()
	url, err := store.Store(context.Background(), orderID, samplePNG)
	require.NoError(t, err)
	assert.Equal(t, ObjectKey(orderID), url)
}
