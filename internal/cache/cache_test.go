package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	k1 := Key("copilot", "gpt-4o", "dau")
	assert.Len(t, k1, 64) // SHA256 hex is 64 chars
	assert.Equal(t, k1, Key("copilot", "gpt-4o", "dau"))
	assert.NotEqual(t, k1, Key("copilot", "gpt-4o", "sessions"))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}

func TestCache_PutGet(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "cache"))
	key := Key("metric")

	var got string
	assert.False(t, c.Get(key, &got), "empty cache should miss")

	require.NoError(t, c.Put(key, "Reach"))
	require.True(t, c.Get(key, &got))
	assert.Equal(t, "Reach", got)

	require.NoError(t, c.Put(key, "Depth"))
	require.True(t, c.Get(key, &got))
	assert.Equal(t, "Depth", got)
}

func TestCache_Disabled(t *testing.T) {
	c := New("")
	require.NoError(t, c.Put("k", 1))
	var v int
	assert.False(t, c.Get("k", &v))
	assert.NoError(t, c.Clear())
}

func TestCache_InvalidEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	var v map[string]string
	assert.False(t, c.Get("bad", &v))
}

func TestCache_Clear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := New(dir)
	require.NoError(t, c.Put(Key("a"), 1))
	require.NoError(t, c.Put(Key("b"), 2))

	require.NoError(t, c.Clear())
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	// Clearing a missing directory is fine.
	assert.NoError(t, c.Clear())
}

func TestCache_ClearRefusesForeignFiles(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
		want  string
	}{
		{
			name: "non-cache file",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
			},
			want: "non-cache files",
		},
		{
			name: "subdirectory",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
			},
			want: "subdirectories",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)
			err := New(dir).Clear()
			assert.ErrorContains(t, err, tt.want)
			_, statErr := os.Stat(dir)
			assert.NoError(t, statErr)
		})
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New(t.TempDir())
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := Key(fmt.Sprintf("metric-%d", i%5))
			assert.NoError(t, c.Put(key, i))
			var v int
			c.Get(key, &v)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		var v int
		assert.True(t, c.Get(Key(fmt.Sprintf("metric-%d", i)), &v))
	}
}
