package notification

import (
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("notification not found")

type Repository interface {
	Create(n Notification) (Notification, error)
	// ListForUser returns the user's notifications; admins also see the
	// global ones (nil user). Unread first, then newest, capped at limit.
	ListForUser(userID int, isAdmin bool, limit int) ([]Notification, error)
	MarkRead(id int) error
	Delete(id int) error
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu      sync.Mutex
	storage []Notification
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(n Notification) (Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == 0 {
		n.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, n)
	return n, nil
}

func (r *InMemoryRepository) ListForUser(userID int, isAdmin bool, limit int) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, 0)
	for _, n := range r.storage {
		if n.UserID == nil {
			if isAdmin {
				out = append(out, n)
			}
			continue
		}
		if *n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsRead != out[j].IsRead {
			return !out[i].IsRead
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) MarkRead(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].IsRead = true
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
