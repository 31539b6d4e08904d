package review

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const draftBucketName = "drafts"

// Store defines the interface for draft persistence.
type Store interface {
	// SaveRecord saves a draft record, overwriting any existing one.
	SaveRecord(record *Record) error

	// GetRecord retrieves a record by ID.
	GetRecord(id string) (*Record, error)

	// ListRecords returns all records.
	ListRecords() ([]*Record, error)

	// DeleteRecord removes a record.
	DeleteRecord(id string) error

	// Close closes the store.
	Close() error
}

// BoltStore implements the Store interface using BoltDB.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the database file and its bucket.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(draftBucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// SaveRecord saves a record to the database.
func (b *BoltStore) SaveRecord(record *Record) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(draftBucketName))
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshaling record: %w", err)
		}
		return bucket.Put([]byte(record.ID), data)
	})
}

// GetRecord retrieves a record by ID.
func (b *BoltStore) GetRecord(id string) (*Record, error) {
	var record *Record
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(draftBucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("draft not found: %s", id)
		}
		return json.Unmarshal(data, &record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListRecords returns all records.
func (b *BoltStore) ListRecords() ([]*Record, error) {
	records := make([]*Record, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(draftBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var record Record
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("unmarshaling record: %w", err)
			}
			records = append(records, &record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteRecord removes a record from the database.
func (b *BoltStore) DeleteRecord(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(draftBucketName))
		return bucket.Delete([]byte(id))
	})
}

// Close closes the database.
func (b *BoltStore) Close() error {
	return b.db.Close()
}
