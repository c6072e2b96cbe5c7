package order

// Shipping status labels shown to customers and admins.
const (
	StatusPending   = "Pendiente"
	StatusShipped   = "Enviado"
	StatusDelivered = "Entregado"
	StatusCancelled = "Cancelado"
)

var AllowedStatuses = []string{StatusPending, StatusShipped, StatusDelivered, StatusCancelled}

func IsAllowedStatus(status string) bool {
	for _, s := range AllowedStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// OrderItem snapshots the product at purchase time; later catalog edits must
// not change historical orders.
type OrderItem struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// PaymentResult stores the provider-side payment metadata recorded when the
// order is marked paid.
type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// Order represents a purchase made by a user.
type Order struct {
	ID              int             `json:"orderId"`
	UserID          int             `json:"userId"`
	Items           []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          string          `json:"paidAt,omitempty"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     string          `json:"deliveredAt,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

// Stats summarizes orders for the admin dashboard.
type Stats struct {
	TotalOrders   int     `json:"totalOrders"`
	PaidOrders    int     `json:"paidOrders"`
	PendingOrders int     `json:"pendingOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
}
