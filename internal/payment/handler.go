package payment

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/huellitas/pet-shop-backend/internal/order"
	"github.com/huellitas/pet-shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// The webhook must stay public: the provider calls it without a token.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/payments/webhook", h.webhook)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/payments/checkout", h.checkout)
}

type checkoutRequest struct {
	Items           []CheckoutItem        `json:"items"`
	ShippingAddress order.ShippingAddress `json:"shippingAddress"`
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	session, ord, err := h.service.Checkout(userID, payload.Items, payload.ShippingAddress)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrInvalidItem):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrGateway):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "could not start payment"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"id":      session.ID,
		"url":     session.RedirectURL,
		"orderId": ord.ID,
	})
}

// webhookBody is the duck-typed shape Mercado Pago posts; the same event may
// instead arrive as ?topic=payment&id=123 query parameters.
type webhookBody struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
	Data  struct {
		ID json.Number `json:"id"`
	} `json:"data"`
	ID json.Number `json:"id"`
}

// webhook always answers 200 so the provider does not retry forever;
// internal failures are logged and compensated by the provider's own
// at-least-once redelivery.
func (h *Handler) webhook(c *fiber.Ctx) error {
	paymentID, eventType := normalizeWebhook(c)

	if err := h.service.HandleWebhook(paymentID, eventType); err != nil {
		fmt.Printf("warning: webhook for payment %q failed: %v\n", paymentID, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

// normalizeWebhook reduces the body/query variants to a canonical
// (paymentID, eventType) pair before any filtering happens.
func normalizeWebhook(c *fiber.Ctx) (paymentID, eventType string) {
	var body webhookBody
	if err := json.Unmarshal(c.Body(), &body); err == nil {
		if body.Type != "" {
			eventType = body.Type
		} else if body.Topic != "" {
			eventType = body.Topic
		}
		if body.Data.ID != "" {
			paymentID = body.Data.ID.String()
		} else if body.ID != "" {
			paymentID = body.ID.String()
		}
	}

	if eventType == "" {
		if topic := c.Query("topic"); topic != "" {
			eventType = topic
		} else {
			eventType = c.Query("type")
		}
	}
	if paymentID == "" {
		if id := c.Query("id"); id != "" {
			paymentID = id
		} else {
			paymentID = c.Query("data.id")
		}
	}
	return paymentID, eventType
}
