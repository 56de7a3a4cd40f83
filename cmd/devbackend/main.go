package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"orderdesk/internal/config"
	"orderdesk/internal/devbackend"
	"orderdesk/internal/services"
	"orderdesk/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := devbackend.OpenStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.DatabaseType, err)
	}

	var events services.OrderEventPublisher
	if cfg.OrderEventsURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.OrderEventsURL, Queue: cfg.OrderEventsQueue})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient
	}

	app, err := devbackend.NewApp(store, events)
	if err != nil {
		log.Fatalf("Failed to create dev backend: %v", err)
	}

	log.Printf("Starting dev backend on port %s (%s store)", cfg.DevBackendPort, cfg.DatabaseType)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.DevBackendPort); err != nil {
			log.Fatalf("Dev backend failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down dev backend...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Dev backend gracefully stopped")
}
