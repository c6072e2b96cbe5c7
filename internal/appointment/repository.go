package appointment

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("appointment not found")

type Repository interface {
	Create(a Appointment) (Appointment, error)
	GetByID(id int) (Appointment, error)
	ListAll() ([]Appointment, error)
	Update(id int, a Appointment) (Appointment, error)
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu      sync.Mutex
	storage []Appointment
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(a Appointment) (Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == 0 {
		a.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, a)
	return a, nil
}

func (r *InMemoryRepository) GetByID(id int) (Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.storage {
		if a.ID == id {
			return a, nil
		}
	}
	return Appointment{}, ErrNotFound
}

func (r *InMemoryRepository) ListAll() ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Appointment, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) Update(id int, a Appointment) (Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			a.ID = id
			r.storage[i] = a
			return a, nil
		}
	}
	return Appointment{}, ErrNotFound
}
