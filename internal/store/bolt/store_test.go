package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "eduspace.db")
	ctx := context.Background()

	s, err := NewBoltStore(path)
	require.NoError(t, err)

	_, found, err := s.Get(ctx, "eduspace:alice")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "eduspace:alice", `{"courses":[]}`))
	require.NoError(t, s.Close())

	reopened, err := NewBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, found, err := reopened.Get(ctx, "eduspace:alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"courses":[]}`, value)
}
