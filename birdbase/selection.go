package birdbase

import (
	"encoding/json"
	"errors"
	"fmt"

	"presetbird/resolution"

	"git.mills.io/prologic/bitcask"
	lru "github.com/hashicorp/golang-lru/v2"
)

var ErrNoSelection = errors.New("no stored selection")

const selectionPrefix = "selection_"

// SelectionStore keeps the last ratio/resolution pair per key (a user, or a
// node in a workflow) with a small read cache in front of the database.
type SelectionStore struct {
	cache *lru.Cache[string, resolution.Selection]
}

func NewSelectionStore(cacheSize int) (*SelectionStore, error) {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	cache, err := lru.New[string, resolution.Selection](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create selection cache: %w", err)
	}
	return &SelectionStore{cache: cache}, nil
}

func (s *SelectionStore) Load(key string) (resolution.Selection, error) {
	if sel, ok := s.cache.Get(key); ok {
		return sel, nil
	}

	data, err := Get(selectionPrefix + key)
	if err != nil {
		if errors.Is(err, bitcask.ErrKeyNotFound) {
			return resolution.Selection{}, ErrNoSelection
		}
		return resolution.Selection{}, fmt.Errorf("failed to load selection %s: %w", key, err)
	}

	var sel resolution.Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		return resolution.Selection{}, fmt.Errorf("failed to decode selection %s: %w", key, err)
	}

	s.cache.Add(key, sel)
	return sel, nil
}

func (s *SelectionStore) Save(key string, sel resolution.Selection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("failed to encode selection %s: %w", key, err)
	}
	if err := PutBytes(selectionPrefix+key, data); err != nil {
		return fmt.Errorf("failed to save selection %s: %w", key, err)
	}
	s.cache.Add(key, sel)
	return nil
}

func (s *SelectionStore) Forget(key string) error {
	s.cache.Remove(key)
	if err := Delete(selectionPrefix + key); err != nil && !errors.Is(err, bitcask.ErrKeyNotFound) {
		return err
	}
	return nil
}

// Reconcile moves the stored selection for key to ratio, keeping the stored
// resolution when it is still offered, and saves the result.
func (s *SelectionStore) Reconcile(key, ratio string) ([]string, resolution.Selection, error) {
	previous, err := s.Load(key)
	if err != nil && !errors.Is(err, ErrNoSelection) {
		return nil, resolution.Selection{}, err
	}

	choices, next := previous.Reconcile(ratio)
	if err := s.Save(key, next); err != nil {
		return nil, resolution.Selection{}, err
	}
	return choices, next, nil
}
