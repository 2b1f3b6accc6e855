// Package store implements the identifier store: a small embedded
// key-value database mapping a managed entity's stable logical name to
// the numeric ID Kuma assigned it, so that reconcile cycles can tell
// "update this" apart from "create this" without needing Kuma's tags as
// the source of truth.
package store

import (
	"encoding/binary"
	"fmt"

	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var buckets = map[model.Kind][]byte{
	model.KindMonitor:      []byte("monitors"),
	model.KindNotification: []byte("notifications"),
	model.KindDockerHost:   []byte("docker_hosts"),
	model.KindTag:          []byte("tags"),
}

var metaBucket = []byte("meta")
var versionKey = []byte("version")

// Store is an embedded bbolt database holding one bucket per entity kind
// plus a meta bucket tracking the schema version for internal/migrate.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the identifier store at path and
// ensures all buckets exist.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "opening identifier store")
	}
	s := &Store{db: db}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucketIfNotExists(metaBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "initializing identifier store buckets")
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// StoreID records that the entity named by name was assigned id by Kuma.
func (s *Store) StoreID(name model.Name, id int64) error {
	bucket, ok := buckets[name.Kind]
	if !ok {
		return errors.Errorf("unknown entity kind %q", name.Kind)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(name.Value), encodeID(id))
	})
}

// GetID looks up the remote ID for a managed entity. The second return
// value is false if no mapping exists yet. A corrupt stored value is a
// deserialization failure, surfaced as an error rather than silently
// treated as absent.
func (s *Store) GetID(name model.Name) (int64, bool, error) {
	bucket, ok := buckets[name.Kind]
	if !ok {
		return 0, false, errors.Errorf("unknown entity kind %q", name.Kind)
	}
	var id int64
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		v := b.Get([]byte(name.Value))
		if v == nil {
			return nil
		}
		found = true
		decoded, err := decodeID(v)
		if err != nil {
			return err
		}
		id = decoded
		return nil
	})
	return id, found, err
}

// DeleteID removes a managed entity's stored mapping.
func (s *Store) DeleteID(name model.Name) error {
	bucket, ok := buckets[name.Kind]
	if !ok {
		return errors.Errorf("unknown entity kind %q", name.Kind)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(name.Value))
	})
}

// List returns every (name, id) pair currently stored for kind. Entries
// whose value fails to decode are skipped (Clean, not List, is where
// corruption is resolved by deleting them).
func (s *Store) List(kind model.Kind) (map[string]int64, error) {
	bucket, ok := buckets[kind]
	if !ok {
		return nil, errors.Errorf("unknown entity kind %q", kind)
	}
	out := map[string]int64{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.ForEach(func(k, v []byte) error {
			id, err := decodeID(v)
			if err != nil {
				return nil
			}
			out[string(k)] = id
			return nil
		})
	})
	return out, err
}

// Clean removes every stored mapping for kind whose id is not present in
// allowed, the per-scope garbage collection step that runs at the end of
// a reconcile cycle against the current set of live remote ids so stale
// entries for entities no longer on the remote side don't linger
// forever. A corrupt stored value decodes as id -1, which is never in
// allowed, so corrupt entries are always swept up.
func (s *Store) Clean(kind model.Kind, allowed map[int64]bool) error {
	bucket, ok := buckets[kind]
	if !ok {
		return errors.Errorf("unknown entity kind %q", kind)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			id, err := decodeID(v)
			if err != nil {
				id = -1
			}
			if !allowed[id] {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetVersion returns the schema version recorded in the meta bucket,
// defaulting to 0 for a freshly created store.
func (s *Store) GetVersion() (int, error) {
	var version int
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(metaBucket).Get(versionKey)
		if v == nil {
			return nil
		}
		id, err := decodeID(v)
		if err != nil {
			return err
		}
		version = int(id)
		return nil
	})
	return version, err
}

// SetVersion records the schema version after a migration step completes.
func (s *Store) SetVersion(version int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metaBucket).Put(versionKey, encodeID(int64(version)))
	})
}

// encodeID/decodeID use the on-disk value format: a little-endian 32-bit
// integer. Kuma's own ids are i32, so int64 here is just Go's
// convenient carrier type.
func encodeID(id int64) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(int32(id)))
	return buf
}

func decodeID(b []byte) (int64, error) {
	if len(b) != 4 {
		return 0, errors.Errorf("corrupt identifier value: want 4 bytes, got %d", len(b))
	}
	return int64(int32(binary.LittleEndian.Uint32(b))), nil
}

// String is a small helper for error messages referencing a bucket name.
func String(kind model.Kind) string {
	return fmt.Sprintf("%s", buckets[kind])
}
