// Package store persists per-tick traffic deltas in a local bbolt ledger.
//
// The ledger is a single append-only bucket keyed by minute-resolution
// timestamp. Keys are formatted wall-clock times, so bbolt's byte-order
// iteration is also chronological order and day grouping reduces to a key
// prefix comparison.
package store

import (
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	// FileName is the ledger file created inside the data directory.
	FileName = "statistics.db"

	keyLayout = "2006-01-02 15:04"
	dayLen    = len("2006-01-02")
	valueLen  = 16
)

var bucketName = []byte("statistics")

// DaySum is one calendar day's accumulated traffic.
type DaySum struct {
	// Day is the calendar date in 2006-01-02 form.
	Day      string
	Received uint64
	Sent     uint64
}

// Store is an append-only ledger of minute-keyed traffic deltas. Each
// operation runs in its own bbolt transaction.
type Store struct {
	db *bolt.DB
}

// Open opens the ledger at path, creating the file and bucket as needed.
// bbolt holds an exclusive file lock, so a second process opening the same
// ledger fails after a short timeout.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create ledger bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the ledger file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one delta under the minute the sample was taken. A second
// append for the same minute is silently ignored: the ledger keeps the
// first-written values and never overwrites a record.
func (s *Store) Append(at time.Time, received, sent uint64) error {
	key := []byte(at.Truncate(time.Minute).Format(keyLayout))
	val := make([]byte, valueLen)
	binary.BigEndian.PutUint64(val[:8], received)
	binary.BigEndian.PutUint64(val[8:], sent)

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b.Get(key) != nil {
			return nil
		}
		return b.Put(key, val)
	})
	if err != nil {
		return fmt.Errorf("append delta: %w", err)
	}
	return nil
}

// DaySums returns per-day traffic totals, most recent day first. A limit
// of zero returns every day on record.
func (s *Store) DaySums(limit int) ([]DaySum, error) {
	var sums []DaySum
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketName).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if len(k) < dayLen || len(v) != valueLen {
				continue
			}
			day := string(k[:dayLen])
			if len(sums) == 0 || sums[len(sums)-1].Day != day {
				if limit > 0 && len(sums) == limit {
					break
				}
				sums = append(sums, DaySum{Day: day})
			}
			cur := &sums[len(sums)-1]
			cur.Received += binary.BigEndian.Uint64(v[:8])
			cur.Sent += binary.BigEndian.Uint64(v[8:])
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return sums, nil
}
