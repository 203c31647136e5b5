// Package store persists small single-record documents such as the signed-in
// credential and the last deployment record.
package store

import (
	"context"
	"time"

	errors "github.com/Laisky/errors/v2"
)

// ErrNotFound is returned by Get when the key holds no record.
var ErrNotFound = errors.New("record not found")

// RecordStore is a minimal key/value contract for local records.
//
// Every key holds exactly one value; Put overwrites, Delete of a missing key
// succeeds. Concurrent writers are not coordinated, the last write wins.
type RecordStore interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// IsNotFound reports whether err means the record is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
