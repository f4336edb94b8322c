package ports

import "encoding/json"

// Store persists the cache keys of every registered target across driver
// invocations (spec.md §4.4). Keys are kept as raw JSON so the store never
// needs to know the shape of a CacheKey.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type Store interface {
	// Load returns the persisted target-name -> cache-key map. A missing
	// cache file is not an error; Load returns an empty map.
	Load() (map[string]json.RawMessage, error)

	// Save overwrites the persisted cache with entries.
	Save(entries map[string]json.RawMessage) error
}
