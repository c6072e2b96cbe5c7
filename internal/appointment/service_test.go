package appointment

import "testing"

func TestCreate_SetsPendingStatus(t *testing.T) {
	s := NewService(NewInMemoryRepository())

	created, err := s.Create(Appointment{UserID: 1, PetName: "Firulais", PetPhoto: "p.jpg", ContactPhone: "341-555"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != StatusPending {
		t.Fatalf("expected status %q, got %q", StatusPending, created.Status)
	}
	if created.DateRequested == "" || created.CreatedAt == "" {
		t.Fatalf("timestamps not set: %+v", created)
	}
}

func TestCreate_MissingFields(t *testing.T) {
	s := NewService(NewInMemoryRepository())

	if _, err := s.Create(Appointment{UserID: 1, PetName: "Firulais"}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestUpdateStatus_ReportsPrevious(t *testing.T) {
	s := NewService(NewInMemoryRepository())
	created, _ := s.Create(Appointment{UserID: 1, PetName: "Firulais", PetPhoto: "p.jpg", ContactPhone: "341-555"})

	previous, updated, err := s.UpdateStatus(created.ID, StatusConfirmed, "2026-09-01T10:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if previous.Status != StatusPending || updated.Status != StatusConfirmed {
		t.Fatalf("unexpected transition %q -> %q", previous.Status, updated.Status)
	}
	if updated.ConfirmedDate != "2026-09-01T10:00:00Z" {
		t.Fatalf("confirmed date not pinned: %q", updated.ConfirmedDate)
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	s := NewService(NewInMemoryRepository())
	created, _ := s.Create(Appointment{UserID: 1, PetName: "Firulais", PetPhoto: "p.jpg", ContactPhone: "341-555"})

	if _, _, err := s.UpdateStatus(created.ID, "Enviado", ""); err == nil {
		t.Fatal("expected invalid status error")
	}
}
