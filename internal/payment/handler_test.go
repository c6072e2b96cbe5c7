package payment

import (
	"bytes"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/huellitas/pet-shop-backend/internal/order"
)

func setupWebhookApp(g *fakeGateway, products *fakeProductStore, n *fakeNotifier) (*fiber.App, *order.InMemoryRepository) {
	s, orders := newTestService(g, products, n)
	a := fiber.New()
	NewHandler(s).RegisterPublicRoutes(a)
	return a, orders
}

func TestWebhook_BodyPayload(t *testing.T) {
	products := &fakeProductStore{stocks: map[int]int{1: 5}}
	g := &fakeGateway{payments: map[string]Payment{}}
	a, orders := setupWebhookApp(g, products, &fakeNotifier{})

	ord, _ := orders.Create(order.Order{UserID: 1, Items: []order.OrderItem{{ProductID: 1, Qty: 2}}})
	g.payments["123"] = Payment{ID: "123", Status: "approved", ExternalReference: strconv.Itoa(ord.ID)}

	body := []byte(`{"type":"payment","data":{"id":123}}`)
	req := httptest.NewRequest("POST", "/api/payments/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}

	paid, _ := orders.GetByID(ord.ID)
	if !paid.IsPaid {
		t.Fatal("order should be paid after body-style webhook")
	}
}

func TestWebhook_QueryPayload(t *testing.T) {
	products := &fakeProductStore{stocks: map[int]int{1: 5}}
	g := &fakeGateway{payments: map[string]Payment{}}
	a, orders := setupWebhookApp(g, products, &fakeNotifier{})

	ord, _ := orders.Create(order.Order{UserID: 1, Items: []order.OrderItem{{ProductID: 1, Qty: 1}}})
	g.payments["456"] = Payment{ID: "456", Status: "approved", ExternalReference: strconv.Itoa(ord.ID)}

	req := httptest.NewRequest("POST", "/api/payments/webhook?topic=payment&id=456", nil)

	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}

	paid, _ := orders.GetByID(ord.ID)
	if !paid.IsPaid {
		t.Fatal("order should be paid after query-style webhook")
	}
}

func TestWebhook_AlwaysRespondsOK(t *testing.T) {
	// gateway down: the handler still answers 200 so the provider retries
	// later instead of storming
	g := &fakeGateway{getErr: ErrGateway}
	a, _ := setupWebhookApp(g, &fakeProductStore{stocks: map[int]int{}}, &fakeNotifier{})

	req := httptest.NewRequest("POST", "/api/payments/webhook?topic=payment&id=1", nil)
	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 even on internal failure, got %d", res.StatusCode)
	}
}

func TestWebhook_NonPaymentTopicIgnored(t *testing.T) {
	g := &fakeGateway{}
	a, _ := setupWebhookApp(g, &fakeProductStore{stocks: map[int]int{}}, &fakeNotifier{})

	req := httptest.NewRequest("POST", "/api/payments/webhook?topic=merchant_order&id=1", nil)
	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	if g.getCalls != 0 {
		t.Fatal("non-payment topics must not reach the gateway")
	}
}

func TestCheckout_RequiresAuth(t *testing.T) {
	s, _ := newTestService(&fakeGateway{}, &fakeProductStore{stocks: map[int]int{}}, &fakeNotifier{})
	a := fiber.New()
	NewHandler(s).RegisterProtectedRoutes(a)

	body := []byte(`{"items":[{"productId":1,"name":"x","price":10,"quantity":1}]}`)
	req := httptest.NewRequest("POST", "/api/payments/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 401 {
		t.Fatalf("expected 401 without a token, got %d", res.StatusCode)
	}
}
