package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/atriumhr/people-risk-api/internal/application/usecases"
	"github.com/atriumhr/people-risk-api/internal/infrastructure/database"
	"github.com/atriumhr/people-risk-api/internal/interfaces/http/middleware"
	"github.com/atriumhr/people-risk-api/internal/interfaces/http/routes"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system environment variables")
	}

	// Initialize database
	db, err := database.SetupDatabase()
	if err != nil {
		log.Fatalf("❌ Error setting up database: %v", err)
	}

	// Configure Fiber for better performance
	app := fiber.New(fiber.Config{
		Concurrency:  256 * 1024,
		Prefork:      false,
		BodyLimit:    10 * 1024 * 1024, // 10MB
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	// Setup middleware
	middleware.SetupMiddlewares(app)

	// Setup routes
	alertUseCase := routes.SetupRoutes(app, db)

	// Start the SLA sweep scheduler
	go runSLASweep(alertUseCase)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server is running on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

// runSLASweep recalcula o status de SLA dos alertas pendentes em intervalo
// fixo, independente de qualquer requisição. Intervalo em minutos via
// SLA_SWEEP_INTERVAL (padrão 5).
func runSLASweep(alertUseCase *usecases.AlertUseCase) {
	interval := 5
	if raw := os.Getenv("SLA_SWEEP_INTERVAL"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			interval = parsed
		}
	}

	ticker := time.NewTicker(time.Duration(interval) * time.Minute)
	defer ticker.Stop()

	log.Printf("⏰ SLA sweep a cada %d minutos", interval)
	for range ticker.C {
		updated, err := alertUseCase.RunSLASweep()
		if err != nil {
			log.Printf("⚠️ Sweep de SLA falhou: %v", err)
			continue
		}
		if updated > 0 {
			log.Printf("⏰ Sweep de SLA atualizou %d alertas", updated)
		}
	}
}
