package storage

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// Codec converts a Storage key or value to and from the byte slices
// goleveldb actually stores. Callers supply one per concrete K or V type
// (e.g. an 8-byte big-endian position, a 32-byte digest).
type Codec[T any] struct {
	Encode func(T) []byte
	Decode func([]byte) (T, error)
}

// LevelDB is a Storage implementation backed by a goleveldb database,
// grounded in the example corpus's use of goleveldb for exactly this kind
// of keyed node persistence. Keys and values are opaque to goleveldb; the
// supplied codecs handle the K/V <-> []byte conversion.
type LevelDB[K comparable, V any] struct {
	db      *leveldb.DB
	keyCdc  Codec[K]
	valCdc  Codec[V]
	zeroVal V
}

// OpenLevelDB opens (creating if absent) a LevelDB database at path and
// wraps it as a Storage[K, V].
func OpenLevelDB[K comparable, V any](path string, keyCdc Codec[K], valCdc Codec[V]) (*LevelDB[K, V], error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("leveldb: open %s: %w", path, err)
	}
	return NewLevelDB[K, V](db, keyCdc, valCdc), nil
}

// NewLevelDB wraps an already-open goleveldb handle as a Storage[K, V].
func NewLevelDB[K comparable, V any](db *leveldb.DB, keyCdc Codec[K], valCdc Codec[V]) *LevelDB[K, V] {
	return &LevelDB[K, V]{db: db, keyCdc: keyCdc, valCdc: valCdc}
}

func (s *LevelDB[K, V]) Insert(k K, v V) (prev V, hadPrev bool, err error) {
	keyBytes := s.keyCdc.Encode(k)

	if raw, getErr := s.db.Get(keyBytes, nil); getErr == nil {
		prev, err = s.valCdc.Decode(raw)
		if err != nil {
			return s.zeroVal, false, &StorageError{Op: "insert: decode previous value", Err: err}
		}
		hadPrev = true
	} else if !errors.Is(getErr, leveldb.ErrNotFound) {
		return s.zeroVal, false, &StorageError{Op: "insert: get previous value", Err: getErr}
	}

	if err := s.db.Put(keyBytes, s.valCdc.Encode(v), nil); err != nil {
		return s.zeroVal, false, &StorageError{Op: "insert: put", Err: err}
	}
	return prev, hadPrev, nil
}

func (s *LevelDB[K, V]) Remove(k K) (removed V, hadPrev bool, err error) {
	keyBytes := s.keyCdc.Encode(k)

	raw, getErr := s.db.Get(keyBytes, nil)
	if errors.Is(getErr, leveldb.ErrNotFound) {
		return s.zeroVal, false, nil
	}
	if getErr != nil {
		return s.zeroVal, false, &StorageError{Op: "remove: get", Err: getErr}
	}

	removed, err = s.valCdc.Decode(raw)
	if err != nil {
		return s.zeroVal, false, &StorageError{Op: "remove: decode", Err: err}
	}

	if err := s.db.Delete(keyBytes, nil); err != nil {
		return s.zeroVal, false, &StorageError{Op: "remove: delete", Err: err}
	}
	return removed, true, nil
}

func (s *LevelDB[K, V]) Get(k K) (v V, ok bool, err error) {
	raw, getErr := s.db.Get(s.keyCdc.Encode(k), nil)
	if errors.Is(getErr, leveldb.ErrNotFound) {
		return s.zeroVal, false, nil
	}
	if getErr != nil {
		return s.zeroVal, false, &StorageError{Op: "get", Err: getErr}
	}
	v, err = s.valCdc.Decode(raw)
	if err != nil {
		return s.zeroVal, false, &StorageError{Op: "get: decode", Err: err}
	}
	return v, true, nil
}

func (s *LevelDB[K, V]) ContainsKey(k K) (bool, error) {
	ok, err := s.db.Has(s.keyCdc.Encode(k), nil)
	if err != nil {
		return false, &StorageError{Op: "contains_key", Err: err}
	}
	return ok, nil
}

// Close closes the underlying database handle.
func (s *LevelDB[K, V]) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("leveldb: close: %w", err)
	}
	return nil
}
