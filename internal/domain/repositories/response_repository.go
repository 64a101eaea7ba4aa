package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/atriumhr/people-risk-api/internal/domain/entities"
)

// ResponseRepository implementa o acesso a respostas de pesquisa e aos
// metadados das perguntas (somente leitura para o motor).
type ResponseRepository struct {
	db *gorm.DB
}

// NewResponseRepository cria uma nova instância de ResponseRepository
func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// GetByParticipant retorna as respostas de um participante com os metadados
// das perguntas pré-carregados, em ordem estável de posição da pergunta.
func (r *ResponseRepository) GetByParticipant(participantID string) ([]entities.SurveyResponse, error) {
	var responses []entities.SurveyResponse

	err := r.db.
		Preload("Question").
		Joins("JOIN survey_questions ON survey_questions.question_id = survey_responses.question_id").
		Where("survey_responses.participant_id = ?", participantID).
		Order("survey_questions.position ASC").
		Find(&responses).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar respostas do participante %s: %w", participantID, err)
	}
	return responses, nil
}

// SaveCanonicalScore grava o score canônico calculado preguiçosamente para
// respostas antigas que ainda não o tinham (caminho de retrocompatibilidade).
// A resposta em si permanece imutável.
func (r *ResponseRepository) SaveCanonicalScore(responseID string, score *float64) error {
	err := r.db.Model(&entities.SurveyResponse{}).
		Where("id = ? AND canonical_score IS NULL", responseID).
		Update("canonical_score", score).Error
	if err != nil {
		return fmt.Errorf("erro ao gravar score canônico da resposta %s: %w", responseID, err)
	}
	return nil
}
