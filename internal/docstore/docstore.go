package docstore

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/api"
	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/config"
)

const (
	documentsBucket = "documents"
	metaBucket      = "meta"
	currentKey      = "current"
	dbFileName      = "documents.db"
)

// DocumentRef is the client-held record of an uploaded document. It is
// never reconciled with server state; if the backend has dropped the
// document, the next analysis call fails and the ref goes stale.
type DocumentRef struct {
	DocumentID     string             `json:"document_id"`
	DocumentName   string             `json:"document_name"`
	ChunksCount    int                `json:"chunks_count"`
	ProcessedAt    string             `json:"processed_at"`
	ExtractionInfo api.ExtractionInfo `json:"extraction_info"`
	ProcessingMode string             `json:"processing_mode"`
}

// Store keeps document references in a bbolt database under the
// config directory.
type Store struct {
	db *bolt.DB
}

func Open() (*Store, error) {
	if err := config.EnsureDir(); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(config.Dir(), dbFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening document store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(documentsBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put saves a document reference, keyed by document id.
func (s *Store) Put(ref *DocumentRef) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(ref)
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(documentsBucket)).Put([]byte(ref.DocumentID), data)
	})
}

// Get returns the reference for a document id, or nil when unknown.
func (s *Store) Get(documentID string) (*DocumentRef, error) {
	var ref *DocumentRef
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(documentsBucket)).Get([]byte(documentID))
		if data == nil {
			return nil
		}
		ref = &DocumentRef{}
		return json.Unmarshal(data, ref)
	})
	return ref, err
}

// List returns all stored references in key order.
func (s *Store) List() ([]DocumentRef, error) {
	var refs []DocumentRef
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(documentsBucket)).ForEach(func(k, v []byte) error {
			var ref DocumentRef
			if err := json.Unmarshal(v, &ref); err != nil {
				return nil // skip corrupt entries
			}
			refs = append(refs, ref)
			return nil
		})
	})
	return refs, err
}

// Delete removes a reference. The current pointer is cleared when it
// points at the deleted document.
func (s *Store) Delete(documentID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(documentsBucket)).Delete([]byte(documentID)); err != nil {
			return err
		}
		meta := tx.Bucket([]byte(metaBucket))
		if string(meta.Get([]byte(currentKey))) == documentID {
			return meta.Delete([]byte(currentKey))
		}
		return nil
	})
}

// SetCurrent marks a stored document as the one analysis commands
// operate on by default.
func (s *Store) SetCurrent(documentID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(documentsBucket)).Get([]byte(documentID)) == nil {
			return fmt.Errorf("unknown document %q", documentID)
		}
		return tx.Bucket([]byte(metaBucket)).Put([]byte(currentKey), []byte(documentID))
	})
}

// Current returns the current document reference, or nil when none is set.
func (s *Store) Current() (*DocumentRef, error) {
	var id string
	err := s.db.View(func(tx *bolt.Tx) error {
		id = string(tx.Bucket([]byte(metaBucket)).Get([]byte(currentKey)))
		return nil
	})
	if err != nil || id == "" {
		return nil, err
	}
	return s.Get(id)
}
