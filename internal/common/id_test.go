package common

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id: %s", id)
		seen[id] = struct{}{}
	}
}

func TestNewID_TimePrefix(t *testing.T) {
	id := NewID()
	prefix, _, ok := strings.Cut(id, "-")
	require.True(t, ok, "id should contain a '-' separator: %s", id)

	ms, err := strconv.ParseInt(prefix, 36, 64)
	require.NoError(t, err, "prefix should be base-36: %s", prefix)
	assert.Greater(t, ms, int64(0))
}
