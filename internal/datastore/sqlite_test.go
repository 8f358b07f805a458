package datastore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	bkerrors "bookjan/internal/errors"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store := NewSQLiteStore(filepath.Join(t.TempDir(), "bookjan.db"))
	require.NoError(t, store.Connect())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndList(t *testing.T) {
	store := newTestStore(t)

	record := map[string]string{
		"isbn":         "9784063600568",
		"title":        "沈黙の艦隊",
		"dc:publisher": "講談社",
	}
	require.NoError(t, store.Append(record))

	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, record, records[0])
}

func TestAppendDuplicateRejected(t *testing.T) {
	store := newTestStore(t)

	first := map[string]string{"isbn": "9784063600568", "title": "first"}
	require.NoError(t, store.Append(first))

	err := store.Append(map[string]string{"isbn": "9784063600568", "title": "second"})
	require.Error(t, err)
	require.True(t, bkerrors.IsDuplicateRecord(err))

	// The store is unchanged: still exactly one row, the original one.
	records, listErr := store.List()
	require.NoError(t, listErr)
	require.Len(t, records, 1)
	require.Equal(t, "first", records[0]["title"])
}

func TestAppendHeterogeneousFieldSets(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Append(map[string]string{
		"isbn":  "9784063600568",
		"title": "one",
	}))
	second := map[string]string{
		"isbn":        "9784088707396",
		"title":       "two",
		"dcndl:price": "505円",
	}
	second["dc:subject[xsi:type=dcndl:NDC9]"] = "726.1"
	require.NoError(t, store.Append(second))

	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NotContains(t, records[0], "dcndl:price")
	require.Equal(t, "505円", records[1]["dcndl:price"])
}

func TestAppendWithoutISBN(t *testing.T) {
	store := newTestStore(t)

	err := store.Append(map[string]string{"title": "no key"})
	require.Error(t, err)
}

func TestHas(t *testing.T) {
	store := newTestStore(t)

	found, err := store.Has("9784063600568")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Append(map[string]string{"isbn": "9784063600568"}))

	found, err = store.Has("9784063600568")
	require.NoError(t, err)
	require.True(t, found)
}

func TestListEmptyStore(t *testing.T) {
	store := newTestStore(t)

	records, err := store.List()
	require.NoError(t, err)
	require.Empty(t, records)
}
