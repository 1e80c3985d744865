package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain/repository"
)

// Badger - embedded store for the terminal client and single-node gateways
type Badger struct {
	db     *badger.DB
	logger *zap.Logger
}

var _ repository.KVStore = (*Badger)(nil)

// NewBadger opens (or creates) the database at path. An empty path opens an in-memory database.
func NewBadger(path string, logger *zap.Logger) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	logger.Info("Badger opened", zap.String("path", path))
	return &Badger{db: db, logger: logger}, nil
}

func (b *Badger) Get(_ context.Context, key string) ([]byte, bool, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger get %s: %w", key, err)
	}
	return val, true, nil
}

func (b *Badger) GetMany(_ context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	err := b.db.View(func(txn *badger.Txn) error {
		for _, k := range keys {
			item, err := txn.Get([]byte(k))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			out[k] = val
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger get many: %w", err)
	}
	return out, nil
}

func (b *Badger) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("badger set %s: %w", key, err)
	}
	return nil
}

func (b *Badger) Delete(_ context.Context, keys ...string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			if err := txn.Delete([]byte(k)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("badger delete: %w", err)
	}
	return nil
}

func (b *Badger) Close() error {
	b.logger.Info("Closing Badger")
	return b.db.Close()
}
