package payment

import "errors"

var (
	// ErrEmptyCart is returned by Checkout when the cart has no items.
	ErrEmptyCart = errors.New("cart cannot be empty")
	// ErrGateway wraps failures talking to the payment provider.
	ErrGateway = errors.New("payment gateway error")
)

// PreferenceItem is one purchasable line sent to the provider's hosted
// checkout.
type PreferenceItem struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Currency  string  `json:"currency_id"`
}

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PreferenceRequest describes a checkout session. ExternalReference carries
// the local order id so provider-side payment events can be mapped back.
type PreferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	BackURLs          BackURLs         `json:"back_urls"`
	NotificationURL   string           `json:"notification_url"`
	ExternalReference string           `json:"external_reference"`
	AutoReturn        string           `json:"auto_return"`
}

// CheckoutSession is what the buyer gets redirected with.
type CheckoutSession struct {
	ID          string `json:"id"`
	RedirectURL string `json:"url"`
}

// Payment is the authoritative provider-side payment record.
type Payment struct {
	ID                string
	Status            string
	ExternalReference string
	PayerEmail        string
}

// Gateway is the payment provider collaborator: it creates hosted checkout
// sessions and answers status queries for individual payments.
type Gateway interface {
	CreatePreference(req PreferenceRequest) (CheckoutSession, error)
	GetPayment(paymentID string) (Payment, error)
}
