package order

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/huellitas/pet-shop-backend/internal/notification"
)

type dummyNotifier struct {
	adminCalls int
	userCalls  int
}

func (d *dummyNotifier) NotifyAdmins(message, link string) error {
	d.adminCalls++
	return nil
}

func (d *dummyNotifier) NotifyUser(userID int, message, typ, link string) error {
	d.userCalls++
	return nil
}

func (d *dummyNotifier) ListForUser(userID int, isAdmin bool) ([]notification.Notification, error) {
	return nil, nil
}

func (d *dummyNotifier) MarkRead(id int) error { return nil }
func (d *dummyNotifier) Delete(id int) error   { return nil }

var _ notification.ServiceInterface = (*dummyNotifier)(nil)

func setupApp() (*fiber.App, *InMemoryRepository, *dummyNotifier) {
	repo := NewInMemoryRepository()
	notifier := &dummyNotifier{}
	a := fiber.New()
	NewHandler(NewService(repo), notifier).RegisterProtectedRoutes(a)
	return a, repo, notifier
}

func TestCreateOrder_EmptyItemsRejected(t *testing.T) {
	a, repo, _ := setupApp()

	b, _ := json.Marshal(map[string]interface{}{"orderItems": []OrderItem{}})
	req := httptest.NewRequest("POST", "/api/orders", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 400 {
		t.Fatalf("expected 400 got %d", res.StatusCode)
	}

	all, _ := repo.ListAll()
	if len(all) != 0 {
		t.Fatalf("no order should be created, got %d", len(all))
	}
}

func TestCreateOrder_InvalidItemRejected(t *testing.T) {
	a, _, _ := setupApp()

	b, _ := json.Marshal(map[string]interface{}{
		"orderItems": []OrderItem{{ProductID: 1, Name: "x", Price: 10, Qty: 0}},
	})
	req := httptest.NewRequest("POST", "/api/orders", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 400 {
		t.Fatalf("expected 400 got %d", res.StatusCode)
	}
}

func TestCreateOrder_RequiresAuth(t *testing.T) {
	a, _, _ := setupApp()

	b, _ := json.Marshal(map[string]interface{}{
		"orderItems": []OrderItem{{ProductID: 1, Name: "x", Price: 10, Qty: 1}},
	})
	req := httptest.NewRequest("POST", "/api/orders", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 401 {
		t.Fatalf("expected 401 without a token, got %d", res.StatusCode)
	}
}

func TestGetAllOrders_AdminOnly(t *testing.T) {
	a, _, _ := setupApp()

	req := httptest.NewRequest("GET", "/api/orders", nil)
	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 403 {
		t.Fatalf("expected 403 for non-admin, got %d", res.StatusCode)
	}
}

func TestStats_CountsPaidRevenue(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Create(Order{UserID: 1, Items: []OrderItem{{ProductID: 1, Qty: 1}}, TotalPrice: 100})
	ord2, _ := repo.Create(Order{UserID: 2, Items: []OrderItem{{ProductID: 2, Qty: 1}}, TotalPrice: 250})
	repo.ConditionalMarkPaid(ord2.ID, "t", PaymentResult{ID: "p", Status: "approved"})

	st, err := repo.Stats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.TotalOrders != 2 || st.PaidOrders != 1 || st.PendingOrders != 1 {
		t.Fatalf("unexpected counts: %+v", st)
	}
	if st.TotalRevenue != 250 {
		t.Fatalf("expected revenue 250, got %v", st.TotalRevenue)
	}
}
