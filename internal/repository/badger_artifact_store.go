package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	applogger "StockPulse/pkg/logger"
)

// ErrArtifactNotFound is returned when no artifact exists under a key.
var ErrArtifactNotFound = errors.New("artifact not found")

// BadgerArtifactStore persists training artifacts (feature contract, trained
// model) as JSON values in an embedded Badger database.
type BadgerArtifactStore struct {
	db *badger.DB
	l  *applogger.Logger
}

func NewBadgerArtifactStore(dir string) (*BadgerArtifactStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open artifact store: %w", err)
	}
	return &BadgerArtifactStore{db: db}, nil
}

// SetLogger injects a structured logger.
func (s *BadgerArtifactStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *BadgerArtifactStore) Save(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal artifact %q: %w", key, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("save artifact %q: %w", key, err)
	}
	if s.l != nil {
		s.l.Info("artifact saved",
			applogger.String("key", key),
			applogger.Int("bytes", len(data)),
		)
	}
	return nil
}

func (s *BadgerArtifactStore) Load(ctx context.Context, key string, dest any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrArtifactNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("load artifact %q: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal artifact %q: %w", key, err)
	}
	return nil
}

func (s *BadgerArtifactStore) Close() error {
	return s.db.Close()
}
