package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProvider(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p, err := New(Config{Dir: dir})
	require.NoError(t, err)

	_, ok, err := p.Get(ctx, "worm.json")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.Set(ctx, "runs/worm.json", []byte(`[["a",1]]`), 0, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	raw, err := os.ReadFile(filepath.Join(dir, "runs", "worm.json"))
	require.NoError(t, err)
	assert.Equal(t, `[["a",1]]`, string(raw))

	b, ok, err := p.Get(ctx, "runs/worm.json")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, raw, b)

	require.NoError(t, p.Del(ctx, "runs/worm.json"))
	require.NoError(t, p.Del(ctx, "runs/worm.json"), "deleting a missing key is not an error")
	require.NoError(t, p.Close(ctx))
}

func TestFileProviderRejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	p, err := New(Config{Dir: t.TempDir()})
	require.NoError(t, err)

	for _, key := range []string{"", "../x", "/etc/passwd", "a/../../b"} {
		_, _, err := p.Get(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
		_, err = p.Set(ctx, key, nil, 0, 0)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestFileProviderNeedsDir(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNoDir)
}

func TestFileProviderHonorsContext(t *testing.T) {
	p, err := New(Config{Dir: t.TempDir()})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Set(ctx, "k", []byte("x"), 0, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
