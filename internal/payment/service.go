package payment

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/huellitas/pet-shop-backend/internal/order"
)

var ErrInvalidItem = errors.New("cart item has invalid quantity or price")

// currency for the hosted checkout; the shop only sells in pesos.
const currency = "ARS"

// approved is the only provider payment status that releases stock.
const statusApproved = "approved"

// OrderStore is the slice of the order service the payment flow needs.
type OrderStore interface {
	Create(ord order.Order) (order.Order, error)
	ConditionalMarkPaid(id int, paidAt string, result order.PaymentResult) (*order.Order, error)
}

// ProductStore decrements stock for sold items, clamped at zero.
type ProductStore interface {
	DecrementStock(id int, qty int) error
}

// Notifier pushes the new-sale notification to the admins.
type Notifier interface {
	NotifyAdmins(message, link string) error
}

// CheckoutItem is one cart line submitted by the buyer. Name, image and
// price are snapshotted onto the order so later catalog edits don't rewrite
// purchase history.
type CheckoutItem struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Service owns the two halves of the payment flow: turning a cart into a
// pending order plus hosted-checkout session, and reconciling the provider's
// webhook callbacks into the exactly-once paid transition.
type Service struct {
	gateway     Gateway
	orders      OrderStore
	products    ProductStore
	notifier    Notifier
	webhookURL  string
	frontendURL string
}

func NewService(gateway Gateway, orders OrderStore, products ProductStore, notifier Notifier, webhookURL, frontendURL string) *Service {
	return &Service{
		gateway:     gateway,
		orders:      orders,
		products:    products,
		notifier:    notifier,
		webhookURL:  webhookURL,
		frontendURL: frontendURL,
	}
}

// Checkout persists a pending unpaid order and asks the gateway for a hosted
// checkout session bound to it via external_reference. The pending order is
// deliberately not rolled back when the gateway fails: it stays visible as
// unpaid and the reconciler will never mark it paid.
func (s *Service) Checkout(userID int, items []CheckoutItem, addr order.ShippingAddress) (CheckoutSession, order.Order, error) {
	if len(items) == 0 {
		return CheckoutSession{}, order.Order{}, ErrEmptyCart
	}

	total := 0.0
	orderItems := make([]order.OrderItem, 0, len(items))
	prefItems := make([]PreferenceItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 || item.Price < 0 {
			return CheckoutSession{}, order.Order{}, ErrInvalidItem
		}
		total += item.Price * float64(item.Quantity)
		orderItems = append(orderItems, order.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Qty:       item.Quantity,
		})
		prefItems = append(prefItems, PreferenceItem{
			Title:     item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Currency:  currency,
		})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	ord, err := s.orders.Create(order.Order{
		UserID:          userID,
		Items:           orderItems,
		ShippingAddress: addr,
		PaymentMethod:   "MercadoPago",
		ItemsPrice:      total,
		TotalPrice:      total,
		Status:          order.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return CheckoutSession{}, order.Order{}, err
	}

	shopURL := s.frontendURL + "/tienda"
	session, err := s.gateway.CreatePreference(PreferenceRequest{
		Items:             prefItems,
		BackURLs:          BackURLs{Success: shopURL, Failure: shopURL, Pending: shopURL},
		NotificationURL:   s.webhookURL,
		ExternalReference: strconv.Itoa(ord.ID),
		AutoReturn:        "approved",
	})
	if err != nil {
		return CheckoutSession{}, ord, err
	}

	return session, ord, nil
}

// HandleWebhook reconciles one provider callback. The provider delivers
// at least once, so everything after the status check hinges on the
// conditional claim: only the caller that flips is_paid runs the stock
// decrement and the admin notification.
func (s *Service) HandleWebhook(paymentID, eventType string) error {
	if eventType != "payment" || paymentID == "" {
		return nil
	}

	// Never trust the payload's status: ask the gateway directly.
	p, err := s.gateway.GetPayment(paymentID)
	if err != nil {
		return err
	}
	if p.Status != statusApproved {
		return nil
	}

	orderID, err := strconv.Atoi(p.ExternalReference)
	if err != nil {
		fmt.Printf("warning: payment %s carries bad external reference %q\n", paymentID, p.ExternalReference)
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	claimed, err := s.orders.ConditionalMarkPaid(orderID, now, order.PaymentResult{
		ID:           p.ID,
		Status:       p.Status,
		EmailAddress: p.PayerEmail,
	})
	if err != nil {
		return err
	}
	if claimed == nil {
		// lost the claim: already paid or unknown order, nothing to do
		return nil
	}

	for _, item := range claimed.Items {
		if err := s.products.DecrementStock(item.ProductID, item.Qty); err != nil {
			fmt.Printf("warning: could not decrement stock for product %d (order %d): %v\n", item.ProductID, claimed.ID, err)
		}
	}

	msg := fmt.Sprintf("¡Nueva venta! Pedido #%d por $%.2f", claimed.ID, claimed.TotalPrice)
	if err := s.notifier.NotifyAdmins(msg, "/admin/orders"); err != nil {
		fmt.Printf("warning: could not notify admins about order %d: %v\n", claimed.ID, err)
	}

	return nil
}
