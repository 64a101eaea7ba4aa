package entities

import (
	"time"
)

// Tipos de resposta suportados pelo normalizador
const (
	ResponseTypeRating       = "rating"
	ResponseTypeSingleChoice = "single_choice"
	ResponseTypeMultiChoice  = "multi_choice"
	ResponseTypeMatrix       = "matrix"
	ResponseTypeText         = "text"
)

// SurveyQuestion descreve como normalizar o valor bruto de uma pergunta.
// Pertence ao subsistema de definição de pesquisas; somente leitura para o motor.
type SurveyQuestion struct {
	QuestionID   string  `json:"question_id" gorm:"primaryKey;column:question_id;type:uuid"`
	SurveyID     int64   `json:"survey_id" gorm:"column:survey_id;type:int8"`
	QuestionText string  `json:"question_text" gorm:"column:question_text"`
	ResponseType string  `json:"response_type" gorm:"column:response_type"`
	MinValue     float64 `json:"min_value" gorm:"column:min_value"`
	MaxValue     float64 `json:"max_value" gorm:"column:max_value"`

	// Mapeamento explícito de rótulo → score canônico (opcional)
	ValueMap map[string]float64 `json:"value_map,omitempty" gorm:"column:value_map;serializer:json"`

	// Dimensão do índice composto que esta pergunta alimenta (vazio = nenhuma)
	Dimension string `json:"dimension" gorm:"column:dimension"`
	Position  int    `json:"position" gorm:"column:position"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName retorna o nome da tabela para o GORM
func (SurveyQuestion) TableName() string {
	return "survey_questions"
}

// SurveyResponse representa uma resposta de um participante a uma pergunta.
// Imutável depois de gravada; o score canônico pode ser (re)calculado
// preguiçosamente quando ausente (caminho de retrocompatibilidade).
type SurveyResponse struct {
	ID            string `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	ParticipantID string `json:"participant_id" gorm:"column:participant_id;type:uuid"`
	QuestionID    string `json:"question_id" gorm:"column:question_id;type:uuid"`

	// Valor bruto: numérico, rótulo de escolha única, conjunto de rótulos ou texto livre
	NumericValue *float64 `json:"numeric_value,omitempty" gorm:"column:numeric_value"`
	Value        string   `json:"value" gorm:"column:value"`
	Values       []string `json:"values,omitempty" gorm:"column:values;serializer:json"`

	// Score canônico derivado na escala 0–5; nulo = sem sinal numérico
	CanonicalScore *float64 `json:"canonical_score,omitempty" gorm:"column:canonical_score"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`

	// Relações
	Question SurveyQuestion `json:"question,omitempty" gorm:"foreignKey:QuestionID;references:QuestionID"`
}

// TableName retorna o nome da tabela para o GORM
func (SurveyResponse) TableName() string {
	return "survey_responses"
}
