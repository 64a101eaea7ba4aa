package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/atriumhr/people-risk-api/internal/application/usecases"
)

// SubmissionHandler lida com o processamento de submissões concluídas
type SubmissionHandler struct {
	submissionUseCase *usecases.SubmissionUseCase
}

// NewSubmissionHandler cria uma nova instância de SubmissionHandler
func NewSubmissionHandler(submissionUseCase *usecases.SubmissionUseCase) *SubmissionHandler {
	return &SubmissionHandler{submissionUseCase: submissionUseCase}
}

// ProcessSubmission executa o pós-processamento de uma submissão concluída.
// Idempotente: repetir a chamada para o mesmo participante retorna os valores
// já armazenados e não cria alertas duplicados, então o webhook de conclusão
// pode reentregar à vontade.
// @Summary Processa uma submissão concluída
// @Tags process
// @Produce json
// @Param participant_id path string true "ID do participante"
// @Success 200 {object} usecases.ProcessingResult
// @Failure 404 {object} map[string]interface{} "Participante sem registro"
// @Failure 500 {object} map[string]interface{} "Erro interno do servidor"
// @Router /process/{participant_id} [post]
func (h *SubmissionHandler) ProcessSubmission(c *fiber.Ctx) error {
	participantID := c.Params("participant_id")
	if participantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "participant_id é obrigatório",
		})
	}

	result, err := h.submissionUseCase.ProcessSubmission(participantID)
	if err != nil {
		if errors.Is(err, usecases.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		// Falha de persistência: o registro ficou no estado pré-chamada,
		// o chamador decide quando repetir
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}
