package store

import (
	"encoding/json"
	"sync"

	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
)

var ErrKeyMustBeSet = errors.New("key must be set")

// Store persists named checkpoint values.
type Store interface {
	// Put encodes v and stores it under key, replacing any previous value.
	Put(key string, v any) error
	// Get decodes the value stored under key into v. It reports false when nothing is stored.
	Get(key string, v any) (bool, error)
	// Erase removes key. Erasing a missing key is not an error.
	Erase(key string) error
}

// MemoryStore keeps encoded values in memory.
type MemoryStore struct {
	lock   sync.RWMutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
	}
}

func (s *MemoryStore) Put(key string, v any) error {
	if key == "" {
		return ErrKeyMustBeSet
	}

	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "unable to encode %s", key)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.values[key] = b

	return nil
}

func (s *MemoryStore) Get(key string, v any) (bool, error) {
	s.lock.RLock()
	b, ok := s.values[key]
	s.lock.RUnlock()

	if !ok {
		return false, nil
	}

	err := json.Unmarshal(b, v)
	if err != nil {
		return false, errors.Wrapf(err, "unable to decode %s", key)
	}

	return true, nil
}

func (s *MemoryStore) Erase(key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.values, key)

	return nil
}

// DiskStore keeps encoded values in gzip-compressed files under a base directory.
type DiskStore struct {
	dv *diskv.Diskv
}

const diskCacheSize = 1024 * 1024

// NewDiskStore creates a store rooted at basePath. The directory is created on first write.
func NewDiskStore(basePath string) *DiskStore {
	return &DiskStore{
		dv: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: diskCacheSize,
			Compression:  diskv.NewGzipCompression(),
		}),
	}
}

func (s *DiskStore) Put(key string, v any) error {
	if key == "" {
		return ErrKeyMustBeSet
	}

	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "unable to encode %s", key)
	}

	err = s.dv.Write(key, b)
	if err != nil {
		return errors.Wrapf(err, "unable to write %s", key)
	}

	return nil
}

func (s *DiskStore) Get(key string, v any) (bool, error) {
	if !s.dv.Has(key) {
		return false, nil
	}

	b, err := s.dv.Read(key)
	if err != nil {
		return false, errors.Wrapf(err, "unable to read %s", key)
	}

	err = json.Unmarshal(b, v)
	if err != nil {
		return false, errors.Wrapf(err, "unable to decode %s", key)
	}

	return true, nil
}

func (s *DiskStore) Erase(key string) error {
	if !s.dv.Has(key) {
		return nil
	}

	return errors.Wrapf(s.dv.Erase(key), "unable to erase %s", key)
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*DiskStore)(nil)
)
