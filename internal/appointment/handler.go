package appointment

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/huellitas/pet-shop-backend/internal/notification"
	"github.com/huellitas/pet-shop-backend/internal/user"
)

// Handler delegates appointment operations to the service and pushes the
// admin/client notifications that go with them.
type Handler struct {
	service  *Service
	notifier notification.ServiceInterface
}

func NewHandler(service *Service, notifier notification.ServiceInterface) *Handler {
	return &Handler{service: service, notifier: notifier}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/appointments", h.createAppointment)
	app.Get("/api/appointments", h.getAllAppointments)
	app.Put("/api/appointments/:id<[0-9]+>/status", h.updateStatus)
}

type createAppointmentRequest struct {
	PetName      string `json:"petName"`
	PetPhoto     string `json:"petPhoto"`
	ContactPhone string `json:"contactPhone"`
	Notes        string `json:"notes"`
}

func (h *Handler) createAppointment(c *fiber.Ctx) error {
	payload := new(createAppointmentRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	created, err := h.service.Create(Appointment{
		UserID:       userID,
		PetName:      payload.PetName,
		PetPhoto:     payload.PetPhoto,
		ContactPhone: payload.ContactPhone,
		Notes:        payload.Notes,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.notifier.NotifyAdmins("¡Nueva solicitud de turno!", "/admin"); err != nil {
		fmt.Printf("warning: could not notify admins about appointment %d: %v\n", created.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getAllAppointments(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	appointments, err := h.service.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(appointments)
}

type updateStatusRequest struct {
	Status        string `json:"status"`
	ConfirmedDate string `json:"confirmedDate"`
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

	previous, updated, err := h.service.UpdateStatus(id, payload.Status, payload.ConfirmedDate)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "appointment not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if previous.Status != updated.Status {
		msg := fmt.Sprintf("Tu turno para %s ahora está: %s", updated.PetName, updated.Status)
		switch updated.Status {
		case StatusConfirmed:
			msg = fmt.Sprintf("¡Buenas noticias! Tu turno para %s fue CONFIRMADO.", updated.PetName)
		case StatusCancelled:
			msg = fmt.Sprintf("Lo sentimos, tu turno para %s fue cancelado.", updated.PetName)
		}
		if err := h.notifier.NotifyUser(updated.UserID, msg, notification.TypeAppointment, "/profile"); err != nil {
			fmt.Printf("warning: could not notify user %d about appointment %d: %v\n", updated.UserID, updated.ID, err)
		}
	}

	return c.JSON(updated)
}
