package store

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	sweeterrors "github.com/abgdnv/sweetshop/internal/sweet/errors"
)

// inMemory implements SweetStore using an in-memory map.
type inMemory struct {
	mu     sync.RWMutex
	sweets map[int]Sweet
	nextID int
}

// NewInMemoryStore creates a new instance of SweetStore.
// Each instance owns its own ID generator starting at FirstGeneratedID.
func NewInMemoryStore() SweetStore {
	return &inMemory{
		sweets: make(map[int]Sweet),
		nextID: FirstGeneratedID,
	}
}

// Insert stores a sweet under its own ID.
func (s *inMemory) Insert(sweet *Sweet) error {
	if sweet == nil {
		return fmt.Errorf("%w: sweet cannot be nil", sweeterrors.ErrInvalidArgument)
	}
	if err := sweet.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sweets[sweet.ID]; exists {
		return fmt.Errorf("%w: ID %d", sweeterrors.ErrDuplicateID, sweet.ID)
	}
	s.sweets[sweet.ID] = *sweet
	return nil
}

// Create stores a new sweet under a generated ID and returns it.
func (s *inMemory) Create(name, category string, price float64, quantity int) (*Sweet, error) {
	sweet := Sweet{
		Name:     name,
		Category: category,
		Price:    price,
		Quantity: quantity,
	}
	if err := sweet.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// skip IDs already taken by explicit inserts
	for {
		if _, taken := s.sweets[s.nextID]; !taken {
			break
		}
		s.nextID++
	}
	sweet.ID = s.nextID
	s.nextID++
	s.sweets[sweet.ID] = sweet

	return &sweet, nil
}

// FindByID retrieves a sweet by its ID.
func (s *inMemory) FindByID(id int) (*Sweet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.sweets[id]
	if !ok {
		return nil, false
	}
	return &t, true
}

// FindAll retrieves all sweets.
func (s *inMemory) FindAll() []Sweet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Sweet, 0, len(s.sweets))
	for _, t := range s.sweets {
		list = append(list, t)
	}
	slices.SortFunc(list, func(a, b Sweet) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return list
}

// Update mutates a sweet in place, all or nothing.
func (s *inMemory) Update(id int, fn func(sweet *Sweet) error) (*Sweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sweets[id]
	if !ok {
		return nil, fmt.Errorf("%w: ID %d", sweeterrors.ErrSweetNotFound, id)
	}
	working := current
	if err := fn(&working); err != nil {
		return nil, err
	}
	if working.ID != id {
		return nil, fmt.Errorf("%w: sweet ID cannot be changed", sweeterrors.ErrInvalidArgument)
	}
	if err := working.Validate(); err != nil {
		return nil, err
	}
	s.sweets[id] = working

	return &working, nil
}

// DeleteByID deletes a sweet by its ID.
func (s *inMemory) DeleteByID(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sweets[id]; !exists {
		return false
	}
	delete(s.sweets, id)
	return true
}

func (s *inMemory) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sweets)
}

func (s *inMemory) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.sweets)
}
