package appointment

import (
	"errors"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(a Appointment) (Appointment, error) {
	if a.UserID <= 0 {
		return Appointment{}, errors.New("invalid user")
	}
	if a.PetName == "" || a.PetPhoto == "" || a.ContactPhone == "" {
		return Appointment{}, errors.New("missing required fields")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if a.DateRequested == "" {
		a.DateRequested = now
	}
	a.Status = StatusPending
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.repo.Create(a)
}

func (s *Service) GetByID(id int) (Appointment, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListAll() ([]Appointment, error) {
	return s.repo.ListAll()
}

// UpdateStatus changes the appointment status and optionally pins the
// confirmed date. It returns the previous and updated records so callers can
// tell whether the status actually changed.
func (s *Service) UpdateStatus(id int, status, confirmedDate string) (previous, updated Appointment, err error) {
	if !IsAllowedStatus(status) {
		return Appointment{}, Appointment{}, errors.New("invalid status")
	}

	previous, err = s.repo.GetByID(id)
	if err != nil {
		return Appointment{}, Appointment{}, err
	}

	updated = previous
	updated.Status = status
	if confirmedDate != "" {
		updated.ConfirmedDate = confirmedDate
	}
	updated.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	updated, err = s.repo.Update(id, updated)
	if err != nil {
		return Appointment{}, Appointment{}, err
	}
	return previous, updated, nil
}
