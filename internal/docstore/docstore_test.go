package docstore

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID string `json:"id"`
}

func TestLoadMissingDocumentIsEmpty(t *testing.T) {
	doc := Open[entry](New(afero.NewMemMapFs(), "/data"), "collabs.json")

	items, err := doc.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestLoadEmptyAndNullDocuments(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/a.json", []byte("  \n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/data/b.json", []byte("null"), 0o644))
	store := New(fs, "/data")

	for _, name := range []string{"a.json", "b.json"} {
		items, err := Open[entry](store, name).Load(context.Background())
		require.NoError(t, err, name)
		assert.Empty(t, items, name)
	}
}

func TestLoadCorruptDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/leads.json", []byte(`{"not":"array"}`), 0o644))

	_, err := Open[entry](New(fs, "/data"), "leads.json").Load(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestUpdateCreatesDirectoryAndPersists(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, "/srv/data")
	doc := Open[entry](store, "collabs.json")
	ctx := context.Background()

	err := doc.Update(ctx, func(items []entry) ([]entry, error) {
		return append([]entry{{ID: "cb_1"}}, items...), nil
	})
	require.NoError(t, err)

	err = doc.Update(ctx, func(items []entry) ([]entry, error) {
		return append([]entry{{ID: "cb_2"}}, items...), nil
	})
	require.NoError(t, err)

	items, err := doc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entry{{ID: "cb_2"}, {ID: "cb_1"}}, items)

	raw, err := afero.ReadFile(fs, filepath.Join("/srv/data", "collabs.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  {", "document should be indented")

	leftovers, err := afero.Glob(fs, "/srv/data/.collabs.json-*")
	require.NoError(t, err)
	assert.Empty(t, leftovers, "temp files must be renamed away")
}

func TestUpdateCallbackErrorWritesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := Open[entry](New(fs, "/data"), "collabs.json")
	boom := errors.New("boom")

	err := doc.Update(context.Background(), func(items []entry) ([]entry, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := afero.Exists(fs, doc.Path())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateRefusesToOverwriteCorruptDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/leads.json", []byte("[{"), 0o644))
	doc := Open[entry](New(fs, "/data"), "leads.json")

	err := doc.Update(context.Background(), func(items []entry) ([]entry, error) {
		return append(items, entry{ID: "ld_1"}), nil
	})
	assert.ErrorIs(t, err, ErrCorrupt)

	raw, _ := afero.ReadFile(fs, "/data/leads.json")
	assert.Equal(t, "[{", string(raw))
}

func TestConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	store := New(afero.NewMemMapFs(), "/data")
	ctx := context.Background()

	const writers = 40
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// A fresh handle per writer still shares the per-path lock.
			doc := Open[entry](store, "leads.json")
			err := doc.Update(ctx, func(items []entry) ([]entry, error) {
				return append(items, entry{ID: "x"}), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := Open[entry](store, "leads.json").Load(ctx)
	require.NoError(t, err)
	assert.Len(t, items, writers)
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Open[entry](New(afero.NewMemMapFs(), "/data"), "x.json").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
