package user

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func setupAuthApp() *fiber.App {
	a := fiber.New()
	NewHandler(NewService(NewInMemoryRepository(nil))).RegisterPublicRoutes(a)
	return a
}

func TestRegister_Success(t *testing.T) {
	a := setupAuthApp()

	b, _ := json.Marshal(map[string]string{
		"name": "Ana", "email": "ana@example.com", "password": "secret123",
	})
	req := httptest.NewRequest("POST", "/api/users/sign-up", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 201 {
		t.Fatalf("expected 201 got %d", res.StatusCode)
	}

	var created User
	json.NewDecoder(res.Body).Decode(&created)
	if created.ID == 0 || created.Email != "ana@example.com" {
		t.Fatalf("unexpected user %+v", created)
	}
	if created.Password != "" {
		t.Fatal("password must not be echoed back")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	a := setupAuthApp()

	b, _ := json.Marshal(map[string]string{
		"name": "Ana", "email": "ana@example.com", "password": "secret123",
	})
	for i, want := range []int{201, 409} {
		req := httptest.NewRequest("POST", "/api/users/sign-up", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		res, err := a.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode != want {
			t.Fatalf("attempt %d: expected %d got %d", i+1, want, res.StatusCode)
		}
	}
}

func TestRegister_MissingFields(t *testing.T) {
	a := setupAuthApp()

	b, _ := json.Marshal(map[string]string{"email": "ana@example.com"})
	req := httptest.NewRequest("POST", "/api/users/sign-up", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 400 {
		t.Fatalf("expected 400 got %d", res.StatusCode)
	}
}

func TestLogin_SuccessReturnsToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	a := setupAuthApp()

	b, _ := json.Marshal(map[string]string{
		"name": "Ana", "email": "ana@example.com", "password": "secret123",
	})
	req := httptest.NewRequest("POST", "/api/users/sign-up", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if _, err := a.Test(req, -1); err != nil {
		t.Fatal(err)
	}

	lb, _ := json.Marshal(map[string]string{"email": "ana@example.com", "password": "secret123"})
	lreq := httptest.NewRequest("POST", "/api/users/sign-in", bytes.NewReader(lb))
	lreq.Header.Set("Content-Type", "application/json")

	res, err := a.Test(lreq, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	json.NewDecoder(res.Body).Decode(&body)
	if body.Token == "" {
		t.Fatal("expected a JWT in the response")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	a := setupAuthApp()

	b, _ := json.Marshal(map[string]string{
		"name": "Ana", "email": "ana@example.com", "password": "secret123",
	})
	req := httptest.NewRequest("POST", "/api/users/sign-up", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if _, err := a.Test(req, -1); err != nil {
		t.Fatal(err)
	}

	lb, _ := json.Marshal(map[string]string{"email": "ana@example.com", "password": "nope"})
	lreq := httptest.NewRequest("POST", "/api/users/sign-in", bytes.NewReader(lb))
	lreq.Header.Set("Content-Type", "application/json")

	res, err := a.Test(lreq, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 401 {
		t.Fatalf("expected 401 got %d", res.StatusCode)
	}
}
