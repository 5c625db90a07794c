package localstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, KeyLastSubPage)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, KeyLastSubPage, "cases"))
	v, err := s.Get(ctx, KeyLastSubPage)
	require.NoError(t, err)
	assert.Equal(t, "cases", v)

	require.NoError(t, s.Delete(ctx, KeyLastSubPage))
	_, err = s.Get(ctx, KeyLastSubPage)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeySessionUserID, "user-1"))
	require.NoError(t, s.Set(ctx, KeyLastCaseID, "case-7"))
	require.NoError(t, s.Delete(ctx, KeyLastCaseID))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	v, err := reopened.Get(ctx, KeySessionUserID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", v)

	_, err = reopened.Get(ctx, KeyLastCaseID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	in := []string{"a", "b"}
	require.NoError(t, SetJSON(ctx, s, KeySupportInbox, in))

	var out []string
	require.NoError(t, GetJSON(ctx, s, KeySupportInbox, &out))
	assert.Equal(t, in, out)
}
