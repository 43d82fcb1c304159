package store

import "github.com/teamseven/codeconnect/internal/domain"

// Store defines the execution-history persistence interface.
type Store interface {
	// Save persists one execution record.
	Save(rec domain.RunRecord) error
	// Recent returns the last `limit` runs for a room, oldest first.
	Recent(room string, limit int) ([]domain.RunRecord, error)
	// Close releases any resources held by the store.
	Close() error
}
