package main

import (
	"context"
	"log"

	"yuktadhara-be/internal/bootstrap"
	"yuktadhara-be/internal/config"
	"yuktadhara-be/internal/server"
	"yuktadhara-be/internal/tracer"
)

func main() {
	// 1. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Layer Encoder Service...")
		if err := container.EncoderService.Consume(context.Background()); err != nil {
			log.Printf("Background Encoder Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
