package handlers

import (
	"log"

	"orderdesk/internal/middleware"
	"orderdesk/internal/orderlist"
	"orderdesk/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// ListHandler handles HTTP requests for the order list page.
type ListHandler struct {
	service *services.ListService
}

// NewListHandler creates a new ListHandler.
func NewListHandler(service *services.ListService) *ListHandler {
	return &ListHandler{
		service: service,
	}
}

// RegisterRoutes registers the order list routes with the Fiber app.
func (h *ListHandler) RegisterRoutes(router fiber.Router) {
	listRoutes := router.Group("/order-list/sessions")
	listRoutes.Post("/", h.HandleOpen)
	listRoutes.Delete("/:id", h.HandleClose)

	session := middleware.SessionRequired(h.service.Get)
	listRoutes.Get("/:id", session, h.HandleGet)
	listRoutes.Post("/:id/refresh", session, h.HandleRefresh)
	listRoutes.Delete("/:id/search", session, h.HandleClearSearch)
}

type openListResponse struct {
	ID   string             `json:"id"`
	List orderlist.Snapshot `json:"list"`
}

// HandleOpen starts a new list session and loads the orders.
func (h *ListHandler) HandleOpen(c *fiber.Ctx) error {
	id, view := h.service.Open(c.UserContext())
	return c.Status(fiber.StatusCreated).JSON(openListResponse{
		ID:   id,
		List: view.Snapshot(),
	})
}

// HandleGet returns the list. A search query parameter filters it and the
// sort parameter ("date" or "total") orders the filtered copy.
func (h *ListHandler) HandleGet(c *fiber.Ctx) error {
	view := listSession(c)

	if c.Context().QueryArgs().Has("search") {
		view.Filter(utils.CopyString(c.Query("search")))
	}

	switch sort := c.Query("sort"); sort {
	case "":
	case "date":
		view.SortByDate()
	case "total":
		view.SortByTotal()
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid sort key",
			"error":   "sort must be date or total, got " + sort,
		})
	}

	return c.JSON(view.Snapshot())
}

// HandleClose ends a list session.
func (h *ListHandler) HandleClose(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Close(id); err != nil {
		return middleware.SessionError(c, id, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleRefresh refetches the orders. The filter is cleared.
func (h *ListHandler) HandleRefresh(c *fiber.Ctx) error {
	view := listSession(c)
	if err := view.Refresh(c.UserContext()); err != nil {
		log.Printf("Error refreshing list session %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusBadGateway).JSON(view.Snapshot())
	}
	return c.JSON(view.Snapshot())
}

// HandleClearSearch drops the filter and shows every order again.
func (h *ListHandler) HandleClearSearch(c *fiber.Ctx) error {
	view := listSession(c)
	view.ClearFilter()
	return c.JSON(view.Snapshot())
}

func listSession(c *fiber.Ctx) *orderlist.View {
	return middleware.Session[*orderlist.View](c)
}
