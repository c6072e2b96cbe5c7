package order

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/huellitas/pet-shop-backend/internal/notification"
	"github.com/huellitas/pet-shop-backend/internal/user"
)

// Handler delegates order operations to the order service. It also needs the
// notification service so status changes reach the order's owner.
type Handler struct {
	service  ServiceInterface
	notifier notification.ServiceInterface
}

func NewHandler(service ServiceInterface, notifier notification.ServiceInterface) *Handler {
	return &Handler{service: service, notifier: notifier}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/orders", h.createOrder)
	app.Get("/api/orders/myorders", h.getMyOrders)
	app.Get("/api/orders/stats", h.getStats)
	app.Get("/api/orders", h.getAllOrders)
	app.Put("/api/orders/:id<[0-9]+>/status", h.updateStatus)
}

type createOrderRequest struct {
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if len(payload.OrderItems) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "no order items"})
	}
	for _, item := range payload.OrderItems {
		if item.Qty < 1 || item.Price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order item"})
		}
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Create(Order{
		UserID:          userID,
		Items:           payload.OrderItems,
		ShippingAddress: payload.ShippingAddress,
		PaymentMethod:   payload.PaymentMethod,
		ItemsPrice:      payload.ItemsPrice,
		TaxPrice:        payload.TaxPrice,
		ShippingPrice:   payload.ShippingPrice,
		TotalPrice:      payload.TotalPrice,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getMyOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getAllOrders(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	orders, err := h.service.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getStats(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	stats, err := h.service.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(stats)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if !IsAllowedStatus(payload.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid status"})
	}

	previous, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.UpdateStatus(id, payload.Status, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	if previous.Status != updated.Status {
		msg := fmt.Sprintf("Tu pedido #%d ahora está: %s", updated.ID, updated.Status)
		if err := h.notifier.NotifyUser(updated.UserID, msg, notification.TypeOrder, "/profile"); err != nil {
			fmt.Printf("warning: could not notify user %d about order %d: %v\n", updated.UserID, updated.ID, err)
		}
	}

	return c.JSON(updated)
}
