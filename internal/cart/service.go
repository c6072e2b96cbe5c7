package cart

import "time"

// Service orchestrates cart operations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddToCart(userID int, productID int, qty int) ([]CartItem, error) {
	if qty == 0 {
		return s.repo.GetCart(userID)
	}
	return s.repo.AddToCart(userID, productID, qty, time.Now().UTC().Format(time.RFC3339))
}

func (s *Service) GetCart(userID int) ([]CartItem, error) {
	return s.repo.GetCart(userID)
}

func (s *Service) Clear(userID int) error {
	return s.repo.Clear(userID, time.Now().UTC().Format(time.RFC3339))
}
