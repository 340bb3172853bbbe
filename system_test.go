package resumatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentscout/resumatch/ai/mock"
	"github.com/talentscout/resumatch/core"
)

func TestNewSystem(t *testing.T) {
	t.Run("creates system with defaults", func(t *testing.T) {
		sys, err := NewSystem(t.TempDir())
		require.NoError(t, err)
		require.NotNil(t, sys)
		defer sys.Close()

		assert.NotNil(t, sys.Store())
		assert.NotNil(t, sys.Provider())
		assert.NotNil(t, sys.backend)
		assert.NotNil(t, sys.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to open the backend at a file path instead of a directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		sys, err := NewSystem(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, sys)
	})

	t.Run("in-memory with custom provider", func(t *testing.T) {
		sys, err := NewSystem("", WithInMemory(), WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		defer sys.Close()

		require.NoError(t, sys.Load(context.Background()))
		count, err := sys.Store().Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestSystem_Close(t *testing.T) {
	sys, err := NewSystem(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)

	assert.NoError(t, sys.Close())
}

func TestSystem_FactoryMethods(t *testing.T) {
	sys, err := NewSystem(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer sys.Close()

	t.Run("can create ingest pipeline", func(t *testing.T) {
		pipeline, err := sys.NewIngestPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create searcher", func(t *testing.T) {
		searcher, err := sys.NewSearcher()
		require.NoError(t, err)
		require.NotNil(t, searcher)
		searcher.Release()
	})
}

func TestSystem_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	sys, err := NewSystem(dir, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	require.NoError(t, sys.Load(ctx))

	record := &core.AttributeRecord{
		Identity:            core.Identity{Name: "Dana"},
		TechnicalAttributes: []string{"go", "postgresql"},
	}
	require.NoError(t, sys.Store().Add(ctx, record))
	require.NoError(t, sys.Store().Save(ctx))
	require.NoError(t, sys.Close())

	sys, err = NewSystem(dir, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer sys.Close()
	require.NoError(t, sys.Load(ctx))

	count, err := sys.Store().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	records, err := sys.Store().List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dana", records[0].Identity.Name)
}
