package product

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func setupProductApp(seed []Product) *fiber.App {
	a := fiber.New()
	h := NewHandler(NewService(NewInMemoryRepository(seed)))
	h.RegisterPublicRoutes(a)
	h.RegisterProtectedRoutes(a)
	return a
}

func TestListProducts_Public(t *testing.T) {
	a := setupProductApp([]Product{
		{ID: 1, Name: "Dog food", Price: 100, Stock: 5, Category: "dog"},
		{ID: 2, Name: "Cat toy", Price: 50, Stock: 3, Category: "cat"},
	})

	req := httptest.NewRequest("GET", "/api/products", nil)
	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}

	var products []Product
	json.NewDecoder(res.Body).Decode(&products)
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	a := setupProductApp(nil)

	req := httptest.NewRequest("GET", "/api/products/42", nil)
	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 404 {
		t.Fatalf("expected 404 got %d", res.StatusCode)
	}
}

func TestCreateProduct_AdminOnly(t *testing.T) {
	a := setupProductApp(nil)

	b, _ := json.Marshal(map[string]interface{}{
		"name": "Leash", "price": 25.0, "description": "d", "category": "dog",
	})
	req := httptest.NewRequest("POST", "/api/products", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 403 {
		t.Fatalf("expected 403 for non-admin, got %d", res.StatusCode)
	}
}

func TestIsAllowedCategory(t *testing.T) {
	for _, c := range AllowedCategories {
		if !IsAllowedCategory(c) {
			t.Errorf("category %q should be allowed", c)
		}
	}
	if IsAllowedCategory("bird") {
		t.Error("unknown category must be rejected")
	}
}
