package dataprocessing

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emrdash/pkg/contracts/domain"
)

func TestLoader_LoadsOnce(t *testing.T) {
	calls := 0
	loader := NewLoader("EMR.xlsx", "Conc", nil)
	loader.parse = func(path, sheet string) (*domain.Dataset, error) {
		calls++
		assert.Equal(t, "EMR.xlsx", path)
		assert.Equal(t, "Conc", sheet)
		return scenarioDataset(), nil
	}

	assert.False(t, loader.Status().Attempted)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ds, err := loader.Load(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 2, ds.Len())
		}()
	}
	wg.Wait()

	ds, err := loader.Dataset()
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 1, calls, "source must be read exactly once")

	status := loader.Status()
	assert.True(t, status.Attempted)
	assert.True(t, status.Loaded)
	assert.Equal(t, 2, status.Records)
	assert.Equal(t, 3, status.Columns)
	assert.Empty(t, status.Error)
}

func TestLoader_CachesFailure(t *testing.T) {
	calls := 0
	loader := NewLoader("missing.xlsx", "Conc", nil)
	loader.parse = func(path, sheet string) (*domain.Dataset, error) {
		calls++
		return nil, ErrSourceNotFound
	}

	for i := 0; i < 3; i++ {
		_, err := loader.Load(context.Background())
		assert.True(t, errors.Is(err, ErrSourceNotFound))
	}
	assert.Equal(t, 1, calls)

	status := loader.Status()
	assert.True(t, status.Attempted)
	assert.False(t, status.Loaded)
	assert.Equal(t, ErrSourceNotFound.Error(), status.Error)
}

func TestLoader_RealWorkbook(t *testing.T) {
	path := writeWorkbook(t, "Conc", [][]interface{}{
		headerRow(),
		{1, "Ogun", "Ikenne", "Ikenne GH", 10, 1, 8, 6, 5, 4, 3, 2, 1},
	})

	loader := NewLoader(path, "Conc", nil)
	ds, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())

	_, err = NewLoader(filepath.Join(filepath.Dir(path), "nope.xlsx"), "Conc", nil).Load(context.Background())
	assert.ErrorIs(t, err, ErrSourceNotFound)
}
