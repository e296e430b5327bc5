package server

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/idilsaglam/catalog/internal/model"
	"github.com/idilsaglam/catalog/internal/store/jsonstore"
)

// Store is an in-memory item table with sequential integer ids starting at 1.
// When path is set, every mutation rewrites the JSON snapshot and only takes
// effect once the write succeeds.
type Store struct {
	mu    sync.RWMutex
	items map[int64]model.Item
	seq   int64
	path  string
}

// NewStore returns an empty store. If path is non-empty the snapshot there
// is loaded and kept up to date.
func NewStore(path string) (*Store, error) {
	s := &Store{items: map[int64]model.Item{}, seq: 1, path: path}
	if path == "" {
		return s, nil
	}
	items, err := jsonstore.Load(path)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		n, err := strconv.ParseInt(it.ID.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("snapshot: bad id %q", it.ID)
		}
		it.ID = model.ID(strconv.FormatInt(n, 10))
		s.items[n] = it
		if n >= s.seq {
			s.seq = n + 1
		}
	}
	return s, nil
}

// List returns all items ordered by id.
func (s *Store) List() []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

func (s *Store) Get(id int64) (model.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	return it, ok
}

// Create assigns the next id. A failed snapshot write leaves both the table
// and the sequence untouched.
func (s *Store) Create(d model.Draft) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.seq
	it := model.Item{ID: model.ID(strconv.FormatInt(id, 10)), Name: d.Name, Description: d.Description}
	s.items[id] = it
	if err := s.persistLocked(); err != nil {
		delete(s.items, id)
		return model.Item{}, err
	}
	s.seq++
	return it, nil
}

// Update returns false when the id does not exist.
func (s *Store) Update(id int64, d model.Draft) (model.Item, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.items[id]
	if !ok {
		return model.Item{}, false, nil
	}
	it := prev
	it.Name, it.Description = d.Name, d.Description
	s.items[id] = it
	if err := s.persistLocked(); err != nil {
		s.items[id] = prev
		return model.Item{}, true, err
	}
	return it, true, nil
}

// Delete returns false when the id does not exist.
func (s *Store) Delete(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.items[id]
	if !ok {
		return false, nil
	}
	delete(s.items, id)
	if err := s.persistLocked(); err != nil {
		s.items[id] = prev
		return true, err
	}
	return true, nil
}

func (s *Store) sortedLocked() []model.Item {
	ids := make([]int64, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]model.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.items[id])
	}
	return out
}

func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	if err := jsonstore.Save(s.path, s.sortedLocked()); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
