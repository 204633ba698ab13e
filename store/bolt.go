// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const registryBucket = "registry"

// Bolt is a single-file Store backed by bbolt. All records live in one
// bucket; a write is durable once Set returns.
type Bolt struct {
	db *bbolt.DB
}

// OpenBolt opens or creates the bolt database at path.
func OpenBolt(path string) (*Bolt, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(registryBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create registry bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

// Close closes the underlying bolt database.
func (b *Bolt) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *Bolt) Get(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		payload := tx.Bucket([]byte(registryBucket)).Get(key)
		if payload == nil {
			return ErrNotFound
		}
		// The slice bbolt hands back is only valid inside the transaction.
		out = make([]byte, len(payload))
		copy(out, payload)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Bolt) Set(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(registryBucket)).Put(key, value)
	})
	if err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	return nil
}

func (b *Bolt) Has(ctx context.Context, key []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var found bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket([]byte(registryBucket)).Get(key) != nil
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("check record: %w", err)
	}
	return found, nil
}

var _ Store = (*Bolt)(nil)
