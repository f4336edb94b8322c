package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"maek/internal/core/domain"
)

func TestCacheKey_CanonicalIsDeterministic(t *testing.T) {
	k := domain.CacheKey{
		[]string{"c++", "-c", "-o", "a.o", "a.cpp"},
		[]string{"a.o:AAAA", "a.cpp:BBBB"},
	}
	c1, err := k.Canonical()
	require.NoError(t, err)
	c2, err := k.Canonical()
	require.NoError(t, err)
	require.Equal(t, c1, c2)
}

func TestCacheKey_EqualMatchesRoundTrippedJSON(t *testing.T) {
	k := domain.CacheKey{[]string{"cmd"}, []string{"a.o:AAAA"}}
	raw, err := k.RawCanonical()
	require.NoError(t, err)

	// Simulate loading it back from disk after a round trip through an
	// indented JSON file (the persisted cache uses json.MarshalIndent).
	var reindented any
	require.NoError(t, json.Unmarshal(raw, &reindented))
	indented, err := json.MarshalIndent(reindented, "", "  ")
	require.NoError(t, err)

	eq, err := k.Equal(indented)
	require.NoError(t, err)
	require.True(t, eq)
}

func TestCacheKey_EqualDetectsDifference(t *testing.T) {
	k := domain.CacheKey{[]string{"cmd"}, []string{"a.o:AAAA"}}
	other := domain.CacheKey{[]string{"cmd"}, []string{"a.o:CCCC"}}
	otherRaw, err := other.RawCanonical()
	require.NoError(t, err)

	eq, err := k.Equal(otherRaw)
	require.NoError(t, err)
	require.False(t, eq)
}

func TestCacheKey_EqualHandlesNilOther(t *testing.T) {
	k := domain.CacheKey{[]string{"cmd"}}
	eq, err := k.Equal(nil)
	require.NoError(t, err)
	require.False(t, eq)
}
