package usecases

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/atriumhr/people-risk-api/internal/application/alerts"
	"github.com/atriumhr/people-risk-api/internal/domain/config"
	"github.com/atriumhr/people-risk-api/internal/domain/entities"
	"github.com/atriumhr/people-risk-api/internal/domain/repositories"
	"github.com/atriumhr/people-risk-api/internal/domain/scoring"
)

// ErrRecordNotFound indica que o participante não tem registro de avaliação
var ErrRecordNotFound = errors.New("registro de avaliação não encontrado")

// ResponseSource é a interface de leitura de respostas consumida pelo motor
type ResponseSource interface {
	GetByParticipant(participantID string) ([]entities.SurveyResponse, error)
	SaveCanonicalScore(responseID string, score *float64) error
}

// RecordStore é a interface de registros de avaliação consumida pelo motor
type RecordStore interface {
	GetByParticipant(participantID string) (*entities.EvaluationRecord, error)
	GetScoredSiblings(tenantID, orgUnitID, recordType, excludeID string) ([]entities.EvaluationRecord, error)
	ApplyScoring(record *entities.EvaluationRecord, newAlerts []entities.Alert) error
}

// AlertSource é a consulta de alertas abertos usada pela deduplicação
type AlertSource interface {
	GetOpenByRecord(recordID string) ([]entities.Alert, error)
}

// ConfigSource resolve a configuração validada de um tenant
type ConfigSource interface {
	GetTenantConfig(tenantID string) (config.TenantConfig, error)
}

// ProcessingResult é o resultado do pós-processamento de uma submissão
type ProcessingResult struct {
	Success          bool     `json:"success"`
	AlreadyProcessed bool     `json:"already_processed"`
	RecordID         string   `json:"record_id"`
	CompositeIndex   *float64 `json:"composite_index,omitempty"`
	Classification   *string  `json:"classification,omitempty"`
	AlertsCreated    int      `json:"alerts_created"`
	AlertTypes       []string `json:"alert_types,omitempty"`

	// Padrões entre registros irmãos; nulo quando há dados insuficientes
	Patterns map[string]scoring.FactorPattern `json:"patterns,omitempty"`
}

// SubmissionUseCase é o ponto de entrada único e idempotente invocado uma vez
// por pesquisa concluída: normaliza, compõe, classifica, detecta padrões e
// materializa alertas em uma única unidade lógica de persistência.
type SubmissionUseCase struct {
	responses ResponseSource
	records   RecordStore
	alerts    AlertSource
	settings  ConfigSource
}

// NewSubmissionUseCase cria uma nova instância de SubmissionUseCase
func NewSubmissionUseCase(responses ResponseSource, records RecordStore, alertSource AlertSource, settings ConfigSource) *SubmissionUseCase {
	return &SubmissionUseCase{
		responses: responses,
		records:   records,
		alerts:    alertSource,
		settings:  settings,
	}
}

// ProcessSubmission executa o pipeline completo para um participante.
// Seguro para chamar mais de uma vez pela mesma submissão (retries de
// webhook): um registro já pontuado retorna os valores armazenados sem
// gravar nada e sem duplicar alertas.
func (u *SubmissionUseCase) ProcessSubmission(participantID string) (*ProcessingResult, error) {
	record, err := u.records.GetByParticipant(participantID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: participante %s", ErrRecordNotFound, participantID)
	}

	// Guarda de idempotência: registro já pontuado é no-op de sucesso
	if record.IsScored() {
		return u.storedResult(record), nil
	}

	cfg, err := u.settings.GetTenantConfig(record.TenantID)
	if err != nil {
		return nil, err
	}

	responses, err := u.responses.GetByParticipant(participantID)
	if err != nil {
		return nil, err
	}

	dimensionScores := u.normalizeResponses(responses)
	factors, factorSeverity := extractFactors(responses)

	record.Factors = factors
	record.FactorSeverity = factorSeverity
	record.ComplianceFlags = deriveComplianceFlags(dimensionScores, cfg.Classification.DimensionBands)

	// Índice composto e classificação, quando a cobertura permite
	if index, valid := scoring.Compose(dimensionScores, cfg.Classification.Weights, cfg.Classification.CompositeOptions()); valid {
		label := scoring.Classify(index, cfg.Classification.CompositeBands)
		record.CompositeIndex = &index
		record.Classification = &label
	}

	openAlerts, err := u.alerts.GetOpenByRecord(record.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	candidates := alerts.EvaluateRules(alerts.RecordContext{
		Record:          *record,
		DimensionScores: dimensionScores,
		CompositeIndex:  record.CompositeIndex,
	}, cfg.Catalog, openAlerts)

	newAlerts := make([]entities.Alert, 0, len(candidates))
	alertTypes := make([]string, 0, len(candidates))
	for _, c := range candidates {
		newAlerts = append(newAlerts, alerts.Materialize(c, *record, now))
		alertTypes = append(alertTypes, c.Rule.Type)
	}

	// Escrita condicional: uma corrida de double-submit perde aqui e cai no
	// caminho idempotente, sem gravação dupla de registro ou alertas.
	if err := u.records.ApplyScoring(record, newAlerts); err != nil {
		if errors.Is(err, repositories.ErrAlreadyScored) {
			current, rerr := u.records.GetByParticipant(participantID)
			if rerr != nil || current == nil {
				return nil, err
			}
			return u.storedResult(current), nil
		}
		return nil, err
	}

	result := &ProcessingResult{
		Success:        true,
		RecordID:       record.ID,
		CompositeIndex: record.CompositeIndex,
		Classification: record.Classification,
		AlertsCreated:  len(newAlerts),
		AlertTypes:     alertTypes,
	}

	// Verificação de padrões entre irmãos, quando há registros suficientes
	if patterns, ok := u.detectSiblingPatterns(record, cfg.Classification.Patterns); ok {
		result.Patterns = patterns
	}
	return result, nil
}

// storedResult monta o resultado no-op a partir dos valores já armazenados
func (u *SubmissionUseCase) storedResult(record *entities.EvaluationRecord) *ProcessingResult {
	return &ProcessingResult{
		Success:          true,
		AlreadyProcessed: true,
		RecordID:         record.ID,
		CompositeIndex:   record.CompositeIndex,
		Classification:   record.Classification,
	}
}

// normalizeResponses resolve o score canônico de cada resposta e agrega por
// dimensão (média quando mais de uma pergunta alimenta a mesma dimensão).
// Entrada malformada vira dado insuficiente para aquela pergunta, nunca
// aborta o processamento das demais.
func (u *SubmissionUseCase) normalizeResponses(responses []entities.SurveyResponse) map[string]*float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, resp := range responses {
		score := resp.CanonicalScore
		if score == nil {
			// Caminho de retrocompatibilidade: calcular e gravar preguiçosamente
			score = scoring.Normalize(resp, resp.Question)
			if score != nil {
				if err := u.responses.SaveCanonicalScore(resp.ID, score); err != nil {
					log.Printf("⚠️ Falha ao gravar score canônico da resposta %s: %v", resp.ID, err)
				}
			}
		}
		if score == nil || resp.Question.Dimension == "" {
			continue
		}
		sums[resp.Question.Dimension] += *score
		counts[resp.Question.Dimension]++
	}

	scores := make(map[string]*float64, len(sums))
	for dim, sum := range sums {
		mean := sum / float64(counts[dim])
		scores[dim] = &mean
	}
	return scores
}

// extractFactors coleta os rótulos selecionados nas respostas de múltipla
// escolha e a severidade por rótulo a partir da matriz da pergunta.
func extractFactors(responses []entities.SurveyResponse) ([]string, map[string]float64) {
	var factors []string
	severity := make(map[string]float64)
	seen := make(map[string]bool)

	for _, resp := range responses {
		for _, label := range scoring.SelectedLabels(resp, resp.Question) {
			if label == "" || seen[label] {
				continue
			}
			seen[label] = true
			factors = append(factors, label)
			if sev, ok := resp.Question.ValueMap[label]; ok {
				severity[label] = sev
			}
		}
	}
	return factors, severity
}

// deriveComplianceFlags classifica cada dimensão com tabela própria e grava
// a flag resultante (ex.: "safety_compliance_review").
func deriveComplianceFlags(dimensionScores map[string]*float64, dimensionBands map[string][]scoring.Band) map[string]bool {
	flags := make(map[string]bool)
	for dim, bands := range dimensionBands {
		score := dimensionScores[dim]
		if score == nil {
			continue
		}
		label := scoring.Classify(*score, bands)
		flags[dim+"_"+label] = true
	}
	return flags
}

// detectSiblingPatterns roda o detector de quadrantes sobre os registros
// irmãos já pontuados mais o registro atual.
func (u *SubmissionUseCase) detectSiblingPatterns(record *entities.EvaluationRecord, th scoring.PatternThresholds) (map[string]scoring.FactorPattern, bool) {
	siblings, err := u.records.GetScoredSiblings(record.TenantID, record.OrgUnitID, record.RecordType, record.ID)
	if err != nil {
		log.Printf("⚠️ Falha ao buscar registros irmãos para padrões: %v", err)
		return nil, false
	}

	observations := make([]scoring.FactorObservation, 0, len(siblings)+1)
	for _, s := range siblings {
		observations = append(observations, scoring.FactorObservation{Factors: s.Factors, Severity: s.FactorSeverity})
	}
	observations = append(observations, scoring.FactorObservation{Factors: record.Factors, Severity: record.FactorSeverity})

	return scoring.DetectPatterns(observations, th)
}
