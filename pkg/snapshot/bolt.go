package snapshot

import (
	"context"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/vango-dev/hyperoop/internal/errors"
)

const boltBucket = "snapshots"

// BoltStore keeps snapshots in one bucket of a bbolt database file.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens or creates the database at path. Only one process may
// hold it open.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.New("E021").WithDetailf("opening %s", path).Wrap(err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.New("E021").WithDetailf("initializing %s", path).Wrap(err)
	}
	return &BoltStore{db: db}, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Save(ctx context.Context, name string, markup []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Put([]byte(name), markup)
	})
	if err != nil {
		return errors.New("E021").WithDetailf("bolt put %s", name).Wrap(err)
	}
	return nil
}

func (s *BoltStore) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(boltBucket)).Get([]byte(name))
		if v == nil {
			return nil
		}
		// v is only valid inside the transaction.
		data = append([]byte{}, v...)
		return nil
	})
	if err != nil {
		return nil, errors.New("E021").WithDetailf("bolt get %s", name).Wrap(err)
	}
	if data == nil {
		return nil, errors.New("E020").WithDetailf("%s in %s", name, s.db.Path())
	}
	return data, nil
}

func (s *BoltStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Delete([]byte(name))
	})
	if err != nil {
		return errors.New("E021").WithDetailf("bolt delete %s", name).Wrap(err)
	}
	return nil
}

// List returns names in key order, which is lexical.
func (s *BoltStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, errors.New("E021").WithDetail("bolt list").Wrap(err)
	}
	return names, nil
}
