package assets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeai-tech/catalog-api/internal/models"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), "https://cdn.yeai.tech/assets/")
	require.NoError(t, err)
	return store
}

func TestStore_SaveAndResolve(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Save(KindIcon, "tool-1", []byte("png-bytes")))

	url, err := store.Resolve(KindIcon, "tool-1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.yeai.tech/assets/favicons/tool-1.png", url)
}

func TestStore_ResolveMissingIsAssetNotFound(t *testing.T) {
	store := newStore(t)

	_, err := store.Resolve(KindImage, "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrAssetNotFound))
}

func TestStore_OpenRoundTrip(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Save(KindImage, "tool-2", []byte{0x52, 0x49, 0x46, 0x46}))

	data, contentType, err := store.Open(KindImage, "tool-2")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x52, 0x49, 0x46, 0x46}, data)
	assert.Equal(t, "image/webp", contentType)
}

func TestStore_OpenMissingIsAssetNotFound(t *testing.T) {
	store := newStore(t)

	_, _, err := store.Open(KindIcon, "missing")
	assert.True(t, errors.Is(err, models.ErrAssetNotFound))
}

func TestStore_PathTraversalStripped(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Save(KindIcon, "../../evil", []byte("x")))

	// The traversal collapses to the base name inside the kind directory.
	url, err := store.Resolve(KindIcon, "evil")
	require.NoError(t, err)
	assert.Contains(t, url, "/favicons/evil.png")
}
