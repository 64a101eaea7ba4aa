package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/atriumhr/people-risk-api/internal/application/alerts"
	"github.com/atriumhr/people-risk-api/internal/application/usecases"
	"github.com/atriumhr/people-risk-api/internal/interfaces/http/middleware"
	"github.com/atriumhr/people-risk-api/internal/utils"
)

// AlertHandler lida com requisições do dashboard de alertas
type AlertHandler struct {
	alertUseCase *usecases.AlertUseCase
}

// NewAlertHandler cria uma nova instância de AlertHandler
func NewAlertHandler(alertUseCase *usecases.AlertUseCase) *AlertHandler {
	return &AlertHandler{alertUseCase: alertUseCase}
}

// GetAlerts retorna os alertas do tenant com filtros e paginação
// @Summary Lista alertas do tenant
// @Tags alerts
// @Produce json
// @Param status query string false "Status do ciclo de vida"
// @Param severity query string false "Severidade"
// @Param sla_status query string false "Status de SLA"
// @Param org_unit_id query string false "Unidade organizacional"
// @Param alert_type query string false "Tipo de alerta"
// @Param created_from query string false "Criado a partir de (ISO8601)"
// @Param created_to query string false "Criado até (ISO8601)"
// @Param page query int false "Página atual" default(1)
// @Param limit query int false "Itens por página" default(20)
// @Success 200 {object} map[string]interface{} "Lista de alertas"
// @Router /alerts [get]
func (h *AlertHandler) GetAlerts(c *fiber.Ctx) error {
	tenantID, _ := c.Locals(middleware.LocalTenantID).(string)

	params := map[string]interface{}{
		"status":         c.Query("status"),
		"severity":       c.Query("severity"),
		"sla_status":     c.Query("sla_status"),
		"org_unit_id":    c.Query("org_unit_id"),
		"alert_type":     c.Query("alert_type"),
		"sort_by":        c.Query("sort_by"),
		"sort_direction": c.Query("sort_direction"),
	}

	if page, err := strconv.Atoi(c.Query("page", "1")); err == nil {
		params["page"] = page
	}
	if limit, err := strconv.Atoi(c.Query("limit", "20")); err == nil {
		params["limit"] = limit
	}

	if from := c.Query("created_from"); from != "" {
		t, err := utils.ParseDateParam(from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "formato de data inválido para created_from",
			})
		}
		params["created_from"] = t
	}
	if to := c.Query("created_to"); to != "" {
		t, err := utils.ParseDateParam(to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "formato de data inválido para created_to",
			})
		}
		params["created_to"] = t
	}

	alertList, total, err := h.alertUseCase.GetAlerts(tenantID, params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"alerts": alertList,
		"total":  total,
	})
}

// GetStatistics retorna as contagens agregadas para o dashboard
func (h *AlertHandler) GetStatistics(c *fiber.Ctx) error {
	tenantID, _ := c.Locals(middleware.LocalTenantID).(string)

	stats, err := h.alertUseCase.GetStatistics(tenantID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(stats)
}

// transitionBody é o corpo aceito pelas rotas de transição
type transitionBody struct {
	Note string `json:"note"`
}

// Acknowledge marca um alerta como assumido pelo usuário autenticado
func (h *AlertHandler) Acknowledge(c *fiber.Ctx) error {
	return h.runTransition(c, func(tenantID, alertID, actor, _ string) error {
		_, err := h.alertUseCase.Acknowledge(tenantID, alertID, actor)
		return err
	})
}

// Resolve encerra um alerta como resolvido
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	return h.runTransition(c, func(tenantID, alertID, actor, note string) error {
		_, err := h.alertUseCase.Resolve(tenantID, alertID, actor, note)
		return err
	})
}

// Dismiss encerra um alerta como descartado
func (h *AlertHandler) Dismiss(c *fiber.Ctx) error {
	return h.runTransition(c, func(tenantID, alertID, actor, note string) error {
		_, err := h.alertUseCase.Dismiss(tenantID, alertID, actor, note)
		return err
	})
}

// AddNote anexa uma nota sem mudar o status
func (h *AlertHandler) AddNote(c *fiber.Ctx) error {
	return h.runTransition(c, func(tenantID, alertID, actor, note string) error {
		if note == "" {
			return errors.New("note é obrigatório")
		}
		_, err := h.alertUseCase.AddNote(tenantID, alertID, actor, note)
		return err
	})
}

func (h *AlertHandler) runTransition(c *fiber.Ctx, apply func(tenantID, alertID, actor, note string) error) error {
	tenantID, _ := c.Locals(middleware.LocalTenantID).(string)
	actor, _ := c.Locals(middleware.LocalActorID).(string)
	alertID := c.Params("id")

	var body transitionBody
	_ = c.BodyParser(&body) // corpo vazio é válido

	if err := apply(tenantID, alertID, actor, body.Note); err != nil {
		if errors.Is(err, alerts.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
