package queue

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/config"
)

const (
	bucketName  = "retries"
	dbFileName  = "retry.db"
	maxAttempts = 10
)

// Backoff schedule: 5m, 15m, 1h, 6h, 24h (repeats 24h for remaining)
var backoffSchedule = []time.Duration{
	5 * time.Minute,
	15 * time.Minute,
	1 * time.Hour,
	6 * time.Hour,
	24 * time.Hour,
}

// RetryItem is a document upload that failed in watch mode and is
// waiting for another attempt. Interactive uploads never land here;
// their errors surface to the user directly.
type RetryItem struct {
	FilePath  string    `json:"file_path"`
	Attempts  int       `json:"attempts"`
	NextRetry time.Time `json:"next_retry"`
	CreatedAt time.Time `json:"created_at"`
}

type RetryQueue struct {
	db *bolt.DB
}

func Open() (*RetryQueue, error) {
	dbPath := filepath.Join(config.Dir(), dbFileName)
	if err := config.EnsureDir(); err != nil {
		return nil, err
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening retry db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &RetryQueue{db: db}, nil
}

func (q *RetryQueue) Close() error {
	return q.db.Close()
}

func (q *RetryQueue) Add(filePath string) error {
	item := RetryItem{
		FilePath:  filePath,
		Attempts:  0,
		NextRetry: time.Now().Add(backoffSchedule[0]),
		CreatedAt: time.Now(),
	}
	return q.put(item)
}

func (q *RetryQueue) put(item RetryItem) error {
	return q.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		data, err := json.Marshal(item)
		if err != nil {
			return err
		}
		return b.Put([]byte(item.FilePath), data)
	})
}

func (q *RetryQueue) Count() int {
	count := 0
	q.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		count = b.Stats().KeyN
		return nil
	})
	return count
}

// ProcessLoop periodically retries due items until the queue is closed.
func (q *RetryQueue) ProcessLoop(done <-chan struct{}, uploadFn func(RetryItem) error) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			q.ProcessOnce(uploadFn)
		case <-done:
			return
		}
	}
}

// ProcessOnce retries every item whose backoff has elapsed. Successful
// uploads leave the queue; failures reschedule with the next backoff
// step, and items that exhaust maxAttempts are dropped.
func (q *RetryQueue) ProcessOnce(uploadFn func(RetryItem) error) {
	var readyItems []RetryItem

	q.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.ForEach(func(k, v []byte) error {
			var item RetryItem
			if err := json.Unmarshal(v, &item); err != nil {
				return nil
			}
			if time.Now().After(item.NextRetry) {
				readyItems = append(readyItems, item)
			}
			return nil
		})
	})

	for _, item := range readyItems {
		if err := uploadFn(item); err != nil {
			item.Attempts++
			if item.Attempts >= maxAttempts {
				q.remove(item.FilePath)
				fmt.Printf("Giving up on %s after %d attempts\n", item.FilePath, maxAttempts)
				continue
			}

			item.NextRetry = time.Now().Add(backoffDelay(item.Attempts))
			q.put(item)
		} else {
			q.remove(item.FilePath)
		}
	}
}

func backoffDelay(attempts int) time.Duration {
	idx := attempts
	if idx >= len(backoffSchedule) {
		idx = len(backoffSchedule) - 1
	}
	return backoffSchedule[idx]
}

func (q *RetryQueue) remove(filePath string) {
	q.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.Delete([]byte(filePath))
	})
}
