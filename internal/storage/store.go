// Package storage provides the key/value stores that hold serialized record lists.
package storage

import (
	"context"
	"errors"
)

//go:generate mockgen -source=store.go -destination=../mocks/storage/mock_store.go -package=mock_storage

// Store persists text values by key. Load reports ok=false for a key that was
// never saved.
type Store interface {
	Load(ctx context.Context, key string) (value string, ok bool, err error)
	Save(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// ErrInvalidKey is returned for keys a store cannot represent.
var ErrInvalidKey = errors.New("invalid storage key")
