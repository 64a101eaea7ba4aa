package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"gorm.io/gorm"

	"github.com/atriumhr/people-risk-api/internal/application/usecases"
	"github.com/atriumhr/people-risk-api/internal/domain/repositories"
	"github.com/atriumhr/people-risk-api/internal/interfaces/http/handlers"
	"github.com/atriumhr/people-risk-api/internal/interfaces/http/middleware"
)

// SetupRoutes monta repositórios, casos de uso e handlers, e registra as
// rotas. Retorna o caso de uso de alertas para o agendador do sweep de SLA.
func SetupRoutes(app *fiber.App, db *gorm.DB) *usecases.AlertUseCase {
	// Add performance middleware
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Add ETag support for efficient caching
	app.Use(etag.New())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Repositories
	responseRepo := repositories.NewResponseRepository(db)
	recordRepo := repositories.NewRecordRepository(db)
	alertRepo := repositories.NewAlertRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Use Cases
	submissionUseCase := usecases.NewSubmissionUseCase(responseRepo, recordRepo, alertRepo, settingsRepo)
	alertUseCase := usecases.NewAlertUseCase(alertRepo)
	insightUseCase := usecases.NewInsightUseCase(recordRepo, settingsRepo)

	// Handlers
	submissionHandler := handlers.NewSubmissionHandler(submissionUseCase)
	alertHandler := handlers.NewAlertHandler(alertUseCase)
	insightHandler := handlers.NewInsightHandler(insightUseCase)

	// Routes
	authMiddleware := middleware.JWTAuth(os.Getenv("JWT_SECRET"))
	groups := middleware.SetupRouteGroups(app, authMiddleware)

	// Processamento de submissões (webhook de conclusão de pesquisa)
	groups.Process.Post("/:participant_id", submissionHandler.ProcessSubmission)

	// Rotas de alertas
	groups.Alerts.Get("/", alertHandler.GetAlerts)
	groups.Alerts.Get("/stats", alertHandler.GetStatistics)
	groups.Alerts.Patch("/:id/acknowledge", alertHandler.Acknowledge)
	groups.Alerts.Patch("/:id/resolve", alertHandler.Resolve)
	groups.Alerts.Patch("/:id/dismiss", alertHandler.Dismiss)
	groups.Alerts.Patch("/:id/notes", alertHandler.AddNote)

	// Rotas de insights
	groups.Insights.Get("/factors", insightHandler.GetFactorPatterns)

	return alertUseCase
}
