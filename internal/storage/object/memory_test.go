package object

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	err := m.Put(ctx, "k1", strings.NewReader("hello"), 5, "text/plain")
	require.NoError(t, err)

	body, info, err := m.Get(ctx, "k1")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
	require.EqualValues(t, 5, info.Size)
	require.Equal(t, "text/plain", info.ContentType)
}

func TestMemoryStoreMissingKey(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	_, _, err := m.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = m.Stat(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is not an error.
	require.NoError(t, m.Delete(ctx, "missing"))
}

func TestMemoryStoreDelete(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "k1", strings.NewReader("x"), 1, "text/plain"))
	require.Equal(t, 1, m.Len())

	require.NoError(t, m.Delete(ctx, "k1"))
	require.Equal(t, 0, m.Len())

	_, _, err := m.Get(ctx, "k1")
	require.ErrorIs(t, err, ErrNotFound)
}
