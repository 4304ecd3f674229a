package filecache_test

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam-fakhreddine/aws-containers-sub004/internal/filecache"
)

// countingFs counts file opens so tests can prove cache hits skip reads.
type countingFs struct {
	afero.Fs
	opens int
}

func (c *countingFs) Open(name string) (afero.File, error) {
	c.opens++
	return c.Fs.Open(name)
}

func TestCacheGet(t *testing.T) {
	t.Run("repeated reads hit the cache", func(t *testing.T) {
		fs := &countingFs{Fs: afero.NewMemMapFs()}
		require.NoError(t, afero.WriteFile(fs, "/aws/credentials", []byte("[dev]\n"), 0600))

		cache := filecache.New(fs)

		first, err := cache.Get("/aws/credentials")
		require.NoError(t, err)
		assert.Equal(t, "[dev]\n", string(first))
		assert.Equal(t, 1, fs.opens)

		second, err := cache.Get("/aws/credentials")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, fs.opens, "cache hit must not re-open the file")
	})

	t.Run("mtime change forces re-read", func(t *testing.T) {
		fs := &countingFs{Fs: afero.NewMemMapFs()}
		require.NoError(t, afero.WriteFile(fs, "/aws/credentials", []byte("old"), 0600))

		cache := filecache.New(fs)
		_, err := cache.Get("/aws/credentials")
		require.NoError(t, err)

		require.NoError(t, afero.WriteFile(fs, "/aws/credentials", []byte("new"), 0600))
		require.NoError(t, fs.Chtimes("/aws/credentials", time.Now(), time.Now().Add(time.Second)))

		data, err := cache.Get("/aws/credentials")
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
		assert.Equal(t, 2, fs.opens)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		cache := filecache.New(afero.NewMemMapFs())

		_, err := cache.Get("/nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("reset discards entries", func(t *testing.T) {
		fs := &countingFs{Fs: afero.NewMemMapFs()}
		require.NoError(t, afero.WriteFile(fs, "/f", []byte("x"), 0600))

		cache := filecache.New(fs)
		_, err := cache.Get("/f")
		require.NoError(t, err)

		cache.Reset()

		_, err = cache.Get("/f")
		require.NoError(t, err)
		assert.Equal(t, 2, fs.opens)
	})
}

func TestCacheExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/aws/.nosso", nil, 0600))

	cache := filecache.New(fs)
	assert.True(t, cache.Exists("/aws/.nosso"))
	assert.False(t, cache.Exists("/aws/.other"))
}
