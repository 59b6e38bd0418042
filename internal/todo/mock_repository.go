package todo

import (
	"sort"
	"sync"
	"time"
)

type mockRepository struct {
	items  map[int]*ToDoItem
	nextID int
	mu     sync.RWMutex

	// clock lets tests control creation timestamps for ordering assertions.
	clock func() time.Time
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		items:  make(map[int]*ToDoItem),
		nextID: 1,
		clock:  time.Now,
	}
}

func (r *mockRepository) GetByID(id int, userID string) (*ToDoItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists || item.UserID != userID {
		return nil, ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *mockRepository) ListByOwner(userID string) ([]ToDoItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []ToDoItem
	for _, item := range r.items {
		if item.UserID == userID {
			items = append(items, *item)
		}
	}
	sortByCreatedDesc(items)
	return items, nil
}

func (r *mockRepository) ListByCompletion(userID string, completed bool) ([]ToDoItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []ToDoItem
	for _, item := range r.items {
		if item.UserID == userID && item.IsCompleted == completed {
			items = append(items, *item)
		}
	}
	sortByCreatedDesc(items)
	return items, nil
}

func (r *mockRepository) Create(item *ToDoItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	item.CreatedAt = r.clock()

	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *mockRepository) Update(item *ToDoItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.items[item.ID]
	if !exists || existing.UserID != item.UserID {
		return ErrItemNotFound
	}

	existing.Title = item.Title
	existing.Description = item.Description
	existing.IsCompleted = item.IsCompleted
	return nil
}

func (r *mockRepository) Delete(id int, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists || item.UserID != userID {
		return ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *mockRepository) Metrics(userID string) (*Metrics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var metrics Metrics
	for _, item := range r.items {
		if item.UserID != userID {
			continue
		}
		metrics.TotalTasks++
		if item.IsCompleted {
			metrics.CompletedTasks++
		} else {
			metrics.PendingTasks++
		}
	}
	return &metrics, nil
}

func sortByCreatedDesc(items []ToDoItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
