package appointment

// Grooming appointment statuses.
const (
	StatusPending   = "Pendiente"
	StatusConfirmed = "Confirmado"
	StatusFinished  = "Finalizado"
	StatusCancelled = "Cancelado"
)

var AllowedStatuses = []string{StatusPending, StatusConfirmed, StatusFinished, StatusCancelled}

func IsAllowedStatus(status string) bool {
	for _, s := range AllowedStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Appointment is a grooming booking request made by a customer.
type Appointment struct {
	ID            int    `json:"appointmentId"`
	UserID        int    `json:"userId"`
	PetName       string `json:"petName"`
	PetPhoto      string `json:"petPhoto"`
	ContactPhone  string `json:"contactPhone"`
	DateRequested string `json:"dateRequested"`
	Status        string `json:"status"`
	ConfirmedDate string `json:"confirmedDate,omitempty"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}
