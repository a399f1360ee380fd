package tree

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

/*
Store keeps grown trees under string ids. Every method takes a context and
fails with its error when the context is done before the operation starts.
*/
type Store interface {
	// Create saves a new tree and returns the id generated for it.
	Create(ctx context.Context, t *Tree) (string, error)
	// Get returns the tree saved under id or ErrNotFound.
	Get(ctx context.Context, id string) (*Tree, error)
	// Store saves t under id, replacing whatever tree was there.
	Store(ctx context.Context, id string, t *Tree) error
	// Delete removes the tree saved under id, if any.
	Delete(ctx context.Context, id string) error
	// Close releases the resources of the store.
	Close(ctx context.Context) error
}

type memoryStore struct {
	mu     sync.RWMutex
	trees  map[string]*Tree
	nextID uint64
}

// NewMemoryStore returns a Store that keeps its trees in a map for the
// lifetime of the process. Ids are consecutive integers starting at 1.
func NewMemoryStore() Store {
	return &memoryStore{trees: make(map[string]*Tree)}
}

func (ms *memoryStore) Create(ctx context.Context, t *Tree) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for {
		ms.nextID++
		id := strconv.FormatUint(ms.nextID, 10)
		if _, taken := ms.trees[id]; !taken {
			ms.trees[id] = t
			return id, nil
		}
	}
}

func (ms *memoryStore) Get(ctx context.Context, id string) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	t, ok := ms.trees[id]
	if !ok {
		return nil, fmt.Errorf("retrieving tree %q: %w", id, ErrNotFound)
	}
	return t, nil
}

func (ms *memoryStore) Store(ctx context.Context, id string, t *Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms.mu.Lock()
	ms.trees[id] = t
	ms.mu.Unlock()
	return nil
}

func (ms *memoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms.mu.Lock()
	delete(ms.trees, id)
	ms.mu.Unlock()
	return nil
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}
