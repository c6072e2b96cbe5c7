package notification

import "time"

// listLimit caps how many notifications the menu polls for at once.
const listLimit = 20

// ServiceInterface lets other packages (order, payment, appointment) push
// notifications without binding to the concrete type.
type ServiceInterface interface {
	NotifyAdmins(message, link string) error
	NotifyUser(userID int, message, typ, link string) error
	ListForUser(userID int, isAdmin bool) ([]Notification, error)
	MarkRead(id int) error
	Delete(id int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var _ ServiceInterface = (*Service)(nil)

// NotifyAdmins creates one notification addressed to every admin (nil user).
func (s *Service) NotifyAdmins(message, link string) error {
	_, err := s.repo.Create(Notification{
		Message:   message,
		Type:      TypeOrder,
		Link:      link,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	return err
}

func (s *Service) NotifyUser(userID int, message, typ, link string) error {
	_, err := s.repo.Create(Notification{
		UserID:    &userID,
		Message:   message,
		Type:      typ,
		Link:      link,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	return err
}

func (s *Service) ListForUser(userID int, isAdmin bool) ([]Notification, error) {
	return s.repo.ListForUser(userID, isAdmin, listLimit)
}

func (s *Service) MarkRead(id int) error {
	return s.repo.MarkRead(id)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
