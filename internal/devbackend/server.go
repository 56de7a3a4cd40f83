package devbackend

import (
	"log"
	"time"

	"orderdesk/internal/models"
	"orderdesk/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Handler serves the products and orders resources.
type Handler struct {
	products *services.ProductService
	orders   *services.OrderService
	validate *validator.Validate
}

// NewHandler creates a new Handler.
func NewHandler(products *services.ProductService, orders *services.OrderService) *Handler {
	return &Handler{
		products: products,
		orders:   orders,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the backend resources with the Fiber app.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleGetProducts)
	router.Get("/orders", h.HandleGetOrders)
	router.Post("/orders", h.HandleCreateOrder)
}

// HandleGetProducts lists the catalog.
func (h *Handler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.products.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetOrders lists every order, or only those placed with the email
// query parameter when it is given.
func (h *Handler) HandleGetOrders(c *fiber.Ctx) error {
	var (
		orders []models.Order
		err    error
	)
	if email := c.Query("email"); email != "" {
		orders, err = h.orders.GetOrdersByEmail(email)
	} else {
		orders, err = h.orders.GetAllOrders()
	}
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(orders)
}

// HandleCreateOrder stores a new order.
func (h *Handler) HandleCreateOrder(c *fiber.Ctx) error {
	var orderRequest models.Order
	if err := c.BodyParser(&orderRequest); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(orderRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Customer name, email and at least one product are required for an order.",
			"error":   err.Error(),
		})
	}

	createdOrder, err := h.orders.CreateOrder(orderRequest)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(createdOrder)
}

// NewApp builds the dev backend over store, seeding the default catalog.
// events may be nil.
func NewApp(store *Store, events services.OrderEventPublisher) (*fiber.App, error) {
	productService := services.NewProductService(store.Products)
	if err := productService.SeedProducts(DefaultProducts()); err != nil {
		return nil, err
	}
	orderService := services.NewOrderService(store.Orders, events)

	app := fiber.New(fiber.Config{AppName: "orderdesk dev backend"})
	app.Use(logger.New())
	NewHandler(productService, orderService).RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	return app, nil
}
