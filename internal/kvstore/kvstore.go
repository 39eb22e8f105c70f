package kvstore

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	BucketCatalog  = "catalog"
	BucketSettings = "settings"
)

var buckets = []string{BucketCatalog, BucketSettings}

// Store is a small keyed blob store on top of bbolt. Values are JSON
// serialized records; keys are logical names like "products".
type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open store %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init store buckets")
	}
	return &Store{db: db}, nil
}

// Get decodes the value under bucket/key into out. The boolean reports
// whether the key was present at all.
func (s *Store) Get(bucket, key string, out interface{}) (bool, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucket)).Get([]byte(key)); v != nil {
			raw = append(raw, v...)
		}
		return nil
	})
	if err != nil {
		return false, errors.Wrapf(err, "read %s/%s", bucket, key)
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, errors.Wrapf(err, "decode %s/%s", bucket, key)
	}
	return true, nil
}

func (s *Store) Put(bucket, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s/%s", bucket, key)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(key), raw)
	})
	return errors.Wrapf(err, "write %s/%s", bucket, key)
}

func (s *Store) Delete(bucket, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Delete([]byte(key))
	})
	return errors.Wrapf(err, "delete %s/%s", bucket, key)
}

func (s *Store) Has(bucket, key string) bool {
	var found bool
	_ = s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket([]byte(bucket)).Get([]byte(key)) != nil
		return nil
	})
	return found
}

func (s *Store) Close() error {
	return s.db.Close()
}
