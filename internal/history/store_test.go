package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pders01/adfind/internal/ads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T, limit int) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := Open(path, limit)
	if err != nil {
		t.Fatalf("failed to open history: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, path
}

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func at(i int) time.Time { return base.Add(time.Duration(i) * time.Minute) }

func TestStore_RecordAndRecent(t *testing.T) {
	store, _ := setupTestStore(t, 10)

	require.NoError(t, store.Record(Entry{Query: "iphone 13", Mode: ads.ModeLocal, Count: 3, At: at(0)}))
	require.NoError(t, store.Record(Entry{Query: "toyota", Mode: ads.ModeSemantic, Count: 1, At: at(1)}))
	require.NoError(t, store.Record(Entry{Query: "sofa", Mode: ads.ModeLocal, At: at(2)}))

	got, err := store.Recent(0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "sofa", got[0].Query)
	assert.Equal(t, "toyota", got[1].Query)
	assert.Equal(t, ads.ModeSemantic, got[1].Mode)
	assert.Equal(t, 1, got[1].Count)
	assert.Equal(t, "iphone 13", got[2].Query)

	got, err = store.Recent(2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStore_RecentDeduplicates(t *testing.T) {
	store, _ := setupTestStore(t, 10)

	require.NoError(t, store.Record(Entry{Query: "iphone", Mode: ads.ModeLocal, Count: 1, At: at(0)}))
	require.NoError(t, store.Record(Entry{Query: "iphone", Mode: ads.ModeSemantic, At: at(1)}))
	require.NoError(t, store.Record(Entry{Query: " IPhone ", Mode: ads.ModeLocal, Count: 7, At: at(2)}))

	got, err := store.Recent(0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "IPhone", got[0].Query)
	assert.Equal(t, 7, got[0].Count)
	assert.Equal(t, ads.ModeSemantic, got[1].Mode)
	assert.Equal(t, 3, store.Len())
}

func TestStore_IgnoresBlankQuery(t *testing.T) {
	store, _ := setupTestStore(t, 10)
	require.NoError(t, store.Record(Entry{Query: "   "}))
	assert.Equal(t, 0, store.Len())
}

func TestStore_PrunesOldest(t *testing.T) {
	store, _ := setupTestStore(t, 3)

	for i, q := range []string{"a1", "b2", "c3", "d4", "e5"} {
		require.NoError(t, store.Record(Entry{Query: q, At: at(i)}))
	}

	assert.Equal(t, 3, store.Len())
	got, err := store.Recent(0)
	require.NoError(t, err)
	var queries []string
	for _, e := range got {
		queries = append(queries, e.Query)
	}
	assert.Equal(t, []string{"e5", "d4", "c3"}, queries)

	found, err := store.Find("a1", 5)
	require.NoError(t, err)
	assert.Empty(t, found, "pruned entries must leave the index")
}

func TestStore_SameTimestamp(t *testing.T) {
	store, _ := setupTestStore(t, 10)

	require.NoError(t, store.Record(Entry{Query: "first", At: base}))
	require.NoError(t, store.Record(Entry{Query: "second", At: base}))

	got, err := store.Recent(0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Query)
}

func TestStore_DefaultsTimestamp(t *testing.T) {
	store, _ := setupTestStore(t, 10)

	before := time.Now()
	require.NoError(t, store.Record(Entry{Query: "lamp"}))

	got, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].At.Before(before))
}

func TestStore_Find(t *testing.T) {
	store, _ := setupTestStore(t, 50)

	require.NoError(t, store.Record(Entry{Query: "iphone 13", Mode: ads.ModeLocal, At: at(0)}))
	require.NoError(t, store.Record(Entry{Query: "toyota camry", Mode: ads.ModeSemantic, At: at(1)}))
	require.NoError(t, store.Record(Entry{Query: "iphone 15 pro", Mode: ads.ModeLocal, At: at(2)}))
	require.NoError(t, store.Record(Entry{Query: "iphone 13", Mode: ads.ModeLocal, At: at(3)}))

	t.Run("prefix", func(t *testing.T) {
		got, err := store.Find("iph", 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, e := range got {
			assert.Contains(t, e.Query, "iphone")
		}
	})

	t.Run("term", func(t *testing.T) {
		got, err := store.Find("Camry", 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "toyota camry", got[0].Query)
		assert.Equal(t, ads.ModeSemantic, got[0].Mode)
	})

	t.Run("newest wins on ties", func(t *testing.T) {
		got, err := store.Find("13", 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, at(3), got[0].At.UTC())
	})

	t.Run("no match", func(t *testing.T) {
		got, err := store.Find("sofa", 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("blank falls back to recent", func(t *testing.T) {
		got, err := store.Find("  ", 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "iphone 13", got[0].Query)
	})
}

func TestStore_ReopenReindexes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path, 10)
	require.NoError(t, err)
	require.NoError(t, store.Record(Entry{Query: "bicycle", At: at(0)}))
	require.NoError(t, store.Close())

	reopened, err := Open(path, 10)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Find("bicy", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bicycle", got[0].Query)
}

func TestStore_Closed(t *testing.T) {
	store, _ := setupTestStore(t, 10)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Record(Entry{Query: "x"}), ErrClosed)
	_, err := store.Recent(1)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = store.Find("x", 1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 0, store.Len())
}

func TestStore_IndexFailureReported(t *testing.T) {
	store, _ := setupTestStore(t, 10)
	require.NoError(t, store.idx.Close())

	err := store.Record(Entry{Query: "lamp", Mode: ads.ModeLocal, At: at(0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "indexing search")
	assert.Equal(t, 1, store.Len(), "the entry is still persisted")
}
