package order

import "errors"

var ErrEmptyOrder = errors.New("order has no items")

// ServiceInterface lets other packages (payment) depend on the order service
// without binding to the concrete type.
type ServiceInterface interface {
	Create(ord Order) (Order, error)
	GetByID(id int) (Order, error)
	ListByUser(userID int) ([]Order, error)
	ListAll() ([]Order, error)
	ConditionalMarkPaid(id int, paidAt string, result PaymentResult) (*Order, error)
	UpdateStatus(id int, status string, updatedAt string) (Order, error)
	Stats() (Stats, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var _ ServiceInterface = (*Service)(nil)

func (s *Service) Create(ord Order) (Order, error) {
	if ord.UserID <= 0 {
		return Order{}, errors.New("invalid user")
	}
	if len(ord.Items) == 0 {
		return Order{}, ErrEmptyOrder
	}
	if ord.Status == "" {
		ord.Status = StatusPending
	}
	return s.repo.Create(ord)
}

func (s *Service) GetByID(id int) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) ListAll() ([]Order, error) {
	return s.repo.ListAll()
}

// ConditionalMarkPaid is the only path that flips isPaid; a nil order means
// the claim was lost (already paid or unknown id).
func (s *Service) ConditionalMarkPaid(id int, paidAt string, result PaymentResult) (*Order, error) {
	return s.repo.ConditionalMarkPaid(id, paidAt, result)
}

func (s *Service) UpdateStatus(id int, status string, updatedAt string) (Order, error) {
	if !IsAllowedStatus(status) {
		return Order{}, errors.New("invalid status")
	}
	return s.repo.UpdateStatus(id, status, updatedAt)
}

func (s *Service) Stats() (Stats, error) {
	return s.repo.Stats()
}
