package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func SetupMiddlewares(app *fiber.App) {
	// CORS configuration
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "https://app.atriumhr.com, http://localhost:3000",
		AllowMethods:     "GET,POST,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))
}

// RouteGroups define os grupos de rotas da API
type RouteGroups struct {
	Public   fiber.Router
	Process  fiber.Router
	Alerts   fiber.Router
	Insights fiber.Router
}

// SetupRouteGroups configura os grupos de rotas com seus respectivos middlewares
func SetupRouteGroups(app *fiber.App, authMiddleware fiber.Handler) RouteGroups {
	// Grupo público (health check)
	public := app.Group("/")

	// Processamento de submissões (chamado pelo handler de conclusão de pesquisa)
	process := app.Group("/process")
	process.Use(authMiddleware)

	// Alertas (dashboard)
	alertsGroup := app.Group("/alerts")
	alertsGroup.Use(authMiddleware)

	// Insights de fatores
	insights := app.Group("/insights")
	insights.Use(authMiddleware)

	return RouteGroups{
		Public:   public,
		Process:  process,
		Alerts:   alertsGroup,
		Insights: insights,
	}
}
