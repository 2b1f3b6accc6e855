package store

import (
	"path/filepath"
	"testing"

	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "autokuma.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreIDRoundTrip(t *testing.T) {
	s := openTestStore(t)
	name := model.Name{Kind: model.KindMonitor, Value: "my-site"}

	_, found, err := s.GetID(name)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.StoreID(name, 42))

	id, found, err := s.GetID(name)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int64(42), id)
}

func TestStoreDeleteID(t *testing.T) {
	s := openTestStore(t)
	name := model.Name{Kind: model.KindNotification, Value: "slack"}
	require.NoError(t, s.StoreID(name, 1))
	require.NoError(t, s.DeleteID(name))

	_, found, err := s.GetID(name)
	require.NoError(t, err)
	require.False(t, found)
}

func TestStoreClean(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.StoreID(model.Name{Kind: model.KindMonitor, Value: "a"}, 1))
	require.NoError(t, s.StoreID(model.Name{Kind: model.KindMonitor, Value: "b"}, 2))
	require.NoError(t, s.StoreID(model.Name{Kind: model.KindMonitor, Value: "c"}, 3))

	require.NoError(t, s.Clean(model.KindMonitor, map[int64]bool{1: true}))

	entries, err := s.List(model.KindMonitor)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"a": 1}, entries)
}

func TestStoreVersion(t *testing.T) {
	s := openTestStore(t)
	v, err := s.GetVersion()
	require.NoError(t, err)
	require.Equal(t, 0, v)

	require.NoError(t, s.SetVersion(2))
	v, err = s.GetVersion()
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestEncodeIDIsLittleEndian32(t *testing.T) {
	require.Equal(t, []byte{42, 0, 0, 0}, encodeID(42))
	id, err := decodeID([]byte{42, 0, 0, 0})
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestDecodeIDRejectsCorruptValue(t *testing.T) {
	_, err := decodeID([]byte{1, 2})
	require.Error(t, err)
}

func TestStoreCleanTreatsCorruptValueAsStale(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.StoreID(model.Name{Kind: model.KindMonitor, Value: "good"}, 1))
	require.NoError(t, s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(buckets[model.KindMonitor]).Put([]byte("corrupt"), []byte{1, 2})
	}))

	require.NoError(t, s.Clean(model.KindMonitor, map[int64]bool{1: true}))

	entries, err := s.List(model.KindMonitor)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"good": 1}, entries)
}
