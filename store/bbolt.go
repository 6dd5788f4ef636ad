package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var _ Store = &BoltStore{}

// DefaultBucket is used as a default bucket for bolt
var DefaultBucket = []byte("deployments")

// BoltStore wraps all the bbolt storage logic
type BoltStore struct {
	Db *bolt.DB
}

// NewBoltStore inits a BoltStore struct
func NewBoltStore(path string) (*BoltStore, error) {
	// default timeout is set to 1 sec
	db, err := bolt.Open(path, 0660, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	// create a default bucket if not exists
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(DefaultBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{
		Db: db,
	}, nil
}

// Close the underlying database
func (bs *BoltStore) Close() error {
	return bs.Db.Close()
}

// Put value associated to key in the datastore
func (bs *BoltStore) Put(key []byte, value []byte) error {
	return bs.Db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(DefaultBucket)
		if b == nil {
			return fmt.Errorf("bucket %s does not exists", DefaultBucket)
		}
		return b.Put(key, value)
	})
}

// Get a value using its key
func (bs *BoltStore) Get(key []byte) ([]byte, error) {
	var value []byte

	err := bs.Db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(DefaultBucket)
		if b == nil {
			return fmt.Errorf("bucket %s does not exists", DefaultBucket)
		}

		// the slice is only valid during the transaction
		v := b.Get(key)
		if v != nil {
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Delete a value using its key
func (bs *BoltStore) Delete(key []byte) error {
	return bs.Db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(DefaultBucket)
		if b == nil {
			return fmt.Errorf("bucket %s does not exists", DefaultBucket)
		}
		return b.Delete(key)
	})
}

func (bs *BoltStore) Length() int {
	var l int
	bs.Db.View(func(tx *bolt.Tx) error {
		l = tx.Bucket(DefaultBucket).Stats().KeyN
		return nil
	})
	return l
}

func (bs *BoltStore) ForEach(fn func(k, v []byte) error) error {
	return bs.Db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(DefaultBucket)
		return b.ForEach(fn)
	})
}
