package cas_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"maek/internal/adapters/cas"
)

func TestStore_LoadMissingFileIsEmptyNotError(t *testing.T) {
	s := cas.NewStore(filepath.Join(t.TempDir(), "maek-cache.json"))
	entries, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestStore_SaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maek-cache.json")
	s := cas.NewStore(path)

	entries := map[string]json.RawMessage{
		"dist/game": json.RawMessage(`["link", "cmd"]`),
		"objs/a.o":  json.RawMessage(`["compile", "cmd"]`),
	}
	require.NoError(t, s.Save(entries))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, len(entries), len(loaded))
	for k, v := range entries {
		var want, got any
		require.NoError(t, json.Unmarshal(v, &want))
		require.NoError(t, json.Unmarshal(loaded[k], &got))
		require.Equal(t, want, got)
	}
}

func TestStore_LoadMalformedFileIsEmptyNotError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "maek-cache.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	s := cas.NewStore(path)
	entries, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, entries)
}
