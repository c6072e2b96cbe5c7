package notification

// Notification types mirror the places they originate from.
const (
	TypeOrder       = "order"
	TypeAppointment = "appointment"
	TypeSystem      = "system"
)

// Notification is a message shown in the notification menu. A nil UserID
// means the notification is addressed to every admin.
type Notification struct {
	ID        int    `json:"notificationId"`
	UserID    *int   `json:"userId"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Link      string `json:"link"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}
