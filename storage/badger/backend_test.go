package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentscout/resumatch/core"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestBackend_Close(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())
}

func TestBackend_PersistenceAcrossReopen(t *testing.T) {
	tmpDir := t.TempDir()

	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)

	repo, err := NewCandidateRepository(backend)
	require.NoError(t, err)

	ctx := context.Background()
	record := &core.AttributeRecord{
		Identity:            core.Identity{Name: "Ada Lovelace"},
		TechnicalAttributes: []string{"python"},
	}
	added, err := repo.AddCandidates(ctx, record)
	require.NoError(t, err)

	require.NoError(t, repo.Close())
	require.NoError(t, backend.Close())

	backend, err = OpenBackend(tmpDir, false)
	require.NoError(t, err)
	defer backend.Close()

	repo, err = NewCandidateRepository(backend)
	require.NoError(t, err)
	defer repo.Close()

	retrieved, err := repo.GetCandidate(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", retrieved.Identity.Name)
}

func TestBackend_WithTransactionRollsBackOnError(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	boom := errors.New("boom")
	err = backend.WithTransaction(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
