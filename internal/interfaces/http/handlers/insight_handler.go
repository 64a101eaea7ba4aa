package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atriumhr/people-risk-api/internal/application/usecases"
	"github.com/atriumhr/people-risk-api/internal/domain/entities"
	"github.com/atriumhr/people-risk-api/internal/interfaces/http/middleware"
)

// InsightHandler lida com as projeções de padrões de fatores
type InsightHandler struct {
	insightUseCase *usecases.InsightUseCase
}

// NewInsightHandler cria uma nova instância de InsightHandler
func NewInsightHandler(insightUseCase *usecases.InsightUseCase) *InsightHandler {
	return &InsightHandler{insightUseCase: insightUseCase}
}

// GetFactorPatterns retorna os quadrantes frequência × severidade por fator
// @Summary Padrões de fatores do recorte
// @Tags insights
// @Produce json
// @Param org_unit_id query string false "Unidade organizacional (vazio = todas)"
// @Param record_type query string false "Tipo de registro" default(exit)
// @Success 200 {object} usecases.FactorInsights
// @Router /insights/factors [get]
func (h *InsightHandler) GetFactorPatterns(c *fiber.Ctx) error {
	tenantID, _ := c.Locals(middleware.LocalTenantID).(string)

	recordType := c.Query("record_type", entities.RecordTypeExit)
	if recordType != entities.RecordTypeExit && recordType != entities.RecordTypeOnboarding {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "record_type deve ser exit ou onboarding",
		})
	}

	insights, err := h.insightUseCase.GetFactorPatterns(tenantID, c.Query("org_unit_id"), recordType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(insights)
}
