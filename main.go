package main

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"orderdesk/internal/client"
	"orderdesk/internal/config"
	"orderdesk/internal/handlers"
	"orderdesk/internal/orderform"
	"orderdesk/internal/orderlist"
	"orderdesk/internal/repositories"
	"orderdesk/internal/services"
)

// Backend is everything the order desk pages need from the order backend.
type Backend interface {
	orderform.Backend
	orderlist.OrderSource
}

// NewApp wires both pages over backend.
func NewApp(cfg *config.Config, backend Backend) *fiber.App {
	formService := services.NewFormService(backend,
		repositories.NewSessionRepository[*orderform.Session](),
		orderform.WithDebounce(cfg.EmailCheckDebounce),
	)
	listService := services.NewListService(backend, repositories.NewSessionRepository[*orderlist.View]())

	formHandler := handlers.NewFormHandler(formService)
	listHandler := handlers.NewListHandler(listService)

	app := fiber.New(fiber.Config{AppName: "orderdesk"})
	app.Use(logger.New())

	stopJanitor := startSessionJanitor(cfg.SessionIdleTimeout, formService, listService)
	app.Hooks().OnShutdown(func() error {
		stopJanitor()
		return nil
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/create-order", fiber.StatusFound)
	})

	formHandler.RegisterRoutes(app)
	listHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"backend": cfg.APIURL,
		})
	})
	return app
}

// startSessionJanitor expires idle sessions every half idle period until the
// returned stop func is called.
func startSessionJanitor(maxIdle time.Duration, forms *services.FormService, lists *services.ListService) func() {
	interval := maxIdle / 2
	if interval <= 0 {
		interval = maxIdle
	}
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				forms.Expire(maxIdle)
				lists.Expire(maxIdle)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	backend := client.New(cfg.APIURL, cfg.APITimeout)
	app := NewApp(cfg, backend)

	log.Printf("Starting server on port %s (backend %s)", cfg.AppPort, cfg.APIURL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
