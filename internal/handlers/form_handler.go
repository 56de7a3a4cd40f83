package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"orderdesk/internal/middleware"
	"orderdesk/internal/orderform"
	"orderdesk/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FormHandler handles HTTP requests for the create-order page.
type FormHandler struct {
	service *services.FormService
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(service *services.FormService) *FormHandler {
	return &FormHandler{
		service: service,
	}
}

// RegisterRoutes registers the create-order routes with the Fiber app.
func (h *FormHandler) RegisterRoutes(router fiber.Router) {
	formRoutes := router.Group("/create-order/sessions")
	formRoutes.Post("/", h.HandleOpen)
	formRoutes.Delete("/:id", h.HandleClose)

	session := middleware.SessionRequired(h.service.Get)
	formRoutes.Get("/:id", session, h.HandleGet)
	formRoutes.Put("/:id/customer-name", session, h.HandleCustomerName)
	formRoutes.Put("/:id/email", session, h.HandleEmail)
	formRoutes.Post("/:id/lines", session, h.HandleAddLine)
	formRoutes.Put("/:id/lines/:index", session, h.HandleUpdateLine)
	formRoutes.Delete("/:id/lines/:index", session, h.HandleRemoveLine)
	formRoutes.Post("/:id/submit", session, h.HandleSubmit)
}

type valueRequest struct {
	Value string `json:"value"`
}

// lineRequest updates a line. An absent field is left as is; a null quantity
// blanks the quantity.
type lineRequest struct {
	ProductID *string         `json:"productId"`
	Quantity  json.RawMessage `json:"quantity"`
}

type openFormResponse struct {
	ID   string         `json:"id"`
	Form orderform.View `json:"form"`
}

// HandleOpen starts a new form session.
func (h *FormHandler) HandleOpen(c *fiber.Ctx) error {
	id, session := h.service.Open(c.UserContext())
	return c.Status(fiber.StatusCreated).JSON(openFormResponse{
		ID:   id,
		Form: session.State().View(),
	})
}

// HandleGet returns the current form view.
func (h *FormHandler) HandleGet(c *fiber.Ctx) error {
	return c.JSON(formSession(c).State().View())
}

// HandleClose ends a form session.
func (h *FormHandler) HandleClose(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Close(id); err != nil {
		return middleware.SessionError(c, id, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCustomerName sets the customer name.
func (h *FormHandler) HandleCustomerName(c *fiber.Ctx) error {
	var req valueRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return h.apply(c, orderform.CustomerNameChanged{Value: req.Value})
}

// HandleEmail sets the email. The order history check runs in the background;
// poll the session to see it complete.
func (h *FormHandler) HandleEmail(c *fiber.Ctx) error {
	var req valueRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return h.apply(c, orderform.EmailChanged{Value: req.Value})
}

// HandleAddLine appends an empty product line.
func (h *FormHandler) HandleAddLine(c *fiber.Ctx) error {
	return h.apply(c, orderform.LineAdded{})
}

// HandleUpdateLine changes the product and/or quantity of a line.
func (h *FormHandler) HandleUpdateLine(c *fiber.Ctx) error {
	session := formSession(c)
	index, ok := lineIndex(c, session.State())
	if !ok {
		return lineNotFound(c)
	}

	var req lineRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	var events []orderform.Event
	if req.ProductID != nil {
		events = append(events, orderform.LineProductSelected{Index: index, ProductID: *req.ProductID})
	}
	if len(req.Quantity) > 0 {
		var quantity *int
		if err := json.Unmarshal(req.Quantity, &quantity); err != nil {
			return badRequest(c, fmt.Errorf("quantity: %w", err))
		}
		events = append(events, orderform.LineQuantityChanged{Index: index, Quantity: quantity})
	}

	st := session.State()
	for _, ev := range events {
		st = session.Dispatch(ev)
	}
	return c.JSON(st.View())
}

// HandleRemoveLine removes a line.
func (h *FormHandler) HandleRemoveLine(c *fiber.Ctx) error {
	session := formSession(c)
	index, ok := lineIndex(c, session.State())
	if !ok {
		return lineNotFound(c)
	}
	return c.JSON(session.Dispatch(orderform.LineRemoved{Index: index}).View())
}

// HandleSubmit sends the order to the backend.
func (h *FormHandler) HandleSubmit(c *fiber.Ctx) error {
	session := formSession(c)

	created, err := session.Submit(c.UserContext())
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(created)
	case errors.Is(err, orderform.ErrFormInvalid):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(session.State().View())
	case errors.Is(err, orderform.ErrSubmitInProgress):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Order is already being submitted",
			"error":   err.Error(),
		})
	default:
		log.Printf("Error submitting form session %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusBadGateway).JSON(session.State().View())
	}
}

func (h *FormHandler) apply(c *fiber.Ctx, ev orderform.Event) error {
	return c.JSON(formSession(c).Dispatch(ev).View())
}

func formSession(c *fiber.Ctx) *orderform.Session {
	return middleware.Session[*orderform.Session](c)
}

func lineIndex(c *fiber.Ctx, st orderform.State) (int, bool) {
	index, err := c.ParamsInt("index")
	if err != nil || index < 0 || index >= len(st.Lines) {
		return 0, false
	}
	return index, true
}

func lineNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": fmt.Sprintf("Line %s not found", c.Params("index")),
	})
}
