package order

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id int) (Order, error)
	ListByUser(userID int) ([]Order, error)
	ListAll() ([]Order, error)
	// ConditionalMarkPaid flips isPaid false->true in a single conditional
	// write. It returns the updated order, or nil when no unpaid order
	// matched (already paid or unknown id). Callers treat nil as a
	// duplicate delivery and stop.
	ConditionalMarkPaid(id int, paidAt string, result PaymentResult) (*Order, error)
	UpdateStatus(id int, status string, updatedAt string) (Order, error)
	Stats() (Stats, error)
}

// InMemoryRepository is a mutex-guarded in-memory implementation useful for
// tests; the conditional claim runs under the lock so concurrent callers
// serialize the same way the SQL version does.
type InMemoryRepository struct {
	mu      sync.Mutex
	storage []Order
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ord.ID == 0 {
		ord.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ord := range r.storage {
		if ord.ID == id {
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, 0)
	for _, ord := range r.storage {
		if ord.UserID == userID {
			out = append(out, ord)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListAll() ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) ConditionalMarkPaid(id int, paidAt string, result PaymentResult) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			if r.storage[i].IsPaid {
				return nil, nil
			}
			r.storage[i].IsPaid = true
			r.storage[i].PaidAt = paidAt
			r.storage[i].PaymentResult = &result
			r.storage[i].UpdatedAt = paidAt
			ord := r.storage[i]
			return &ord, nil
		}
	}
	return nil, nil
}

func (r *InMemoryRepository) UpdateStatus(id int, status string, updatedAt string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Status = status
			r.storage[i].UpdatedAt = updatedAt
			if status == StatusDelivered {
				r.storage[i].IsDelivered = true
				r.storage[i].DeliveredAt = updatedAt
			}
			return r.storage[i], nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) Stats() (Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var st Stats
	for _, ord := range r.storage {
		st.TotalOrders++
		if ord.IsPaid {
			st.PaidOrders++
			st.TotalRevenue += ord.TotalPrice
		} else {
			st.PendingOrders++
		}
	}
	return st, nil
}
