package usecases

import (
	"errors"
	"testing"
	"time"

	"github.com/atriumhr/people-risk-api/internal/domain/config"
	"github.com/atriumhr/people-risk-api/internal/domain/entities"
	"github.com/atriumhr/people-risk-api/internal/domain/repositories"
)

func f(v float64) *float64 { return &v }

// ── fakes ──

type fakeResponseSource struct {
	responses []entities.SurveyResponse
	saved     map[string]*float64
}

func (s *fakeResponseSource) GetByParticipant(string) ([]entities.SurveyResponse, error) {
	return s.responses, nil
}

func (s *fakeResponseSource) SaveCanonicalScore(id string, score *float64) error {
	if s.saved == nil {
		s.saved = make(map[string]*float64)
	}
	s.saved[id] = score
	return nil
}

type fakeRecordStore struct {
	record     *entities.EvaluationRecord
	siblings   []entities.EvaluationRecord
	alerts     []entities.Alert
	applyCalls int
	raceLoser  bool
}

func (s *fakeRecordStore) GetByParticipant(string) (*entities.EvaluationRecord, error) {
	return s.record, nil
}

func (s *fakeRecordStore) GetScoredSiblings(_, _, _, _ string) ([]entities.EvaluationRecord, error) {
	return s.siblings, nil
}

func (s *fakeRecordStore) ApplyScoring(record *entities.EvaluationRecord, newAlerts []entities.Alert) error {
	s.applyCalls++
	if s.raceLoser {
		// Outra invocação venceu a corrida da escrita condicional
		s.record.CompositeIndex = f(88.8)
		now := time.Now()
		s.record.ProcessedAt = &now
		return repositories.ErrAlreadyScored
	}
	if s.record.ProcessedAt != nil {
		return repositories.ErrAlreadyScored
	}
	now := time.Now()
	record.ProcessedAt = &now
	s.alerts = append(s.alerts, newAlerts...)
	return nil
}

type fakeAlertSource struct {
	records *fakeRecordStore
}

func (s *fakeAlertSource) GetOpenByRecord(recordID string) ([]entities.Alert, error) {
	var open []entities.Alert
	for _, a := range s.records.alerts {
		if a.RecordID == recordID && a.IsOpen() {
			open = append(open, a)
		}
	}
	return open, nil
}

type fakeConfigSource struct{}

func (fakeConfigSource) GetTenantConfig(string) (config.TenantConfig, error) {
	return config.TenantConfig{
		Classification: config.DefaultClassification(),
		Catalog:        config.DefaultRuleCatalog(),
	}, nil
}

// ── fixtures ──

func ratingResponse(id, dimension string, value float64) entities.SurveyResponse {
	return entities.SurveyResponse{
		ID:           id,
		QuestionID:   "q-" + id,
		NumericValue: f(value),
		Question: entities.SurveyQuestion{
			QuestionID:   "q-" + id,
			ResponseType: entities.ResponseTypeRating,
			MinValue:     1,
			MaxValue:     5,
			Dimension:    dimension,
		},
	}
}

func factorResponse(id string, labels []string, severity map[string]float64) entities.SurveyResponse {
	return entities.SurveyResponse{
		ID:         id,
		QuestionID: "q-" + id,
		Values:     labels,
		Question: entities.SurveyQuestion{
			QuestionID:   "q-" + id,
			ResponseType: entities.ResponseTypeMultiChoice,
			ValueMap:     severity,
		},
	}
}

func newFixture(responses []entities.SurveyResponse) (*SubmissionUseCase, *fakeRecordStore) {
	records := &fakeRecordStore{
		record: &entities.EvaluationRecord{
			ID:            "rec-1",
			TenantID:      "t-1",
			OrgUnitID:     "ou-1",
			ParticipantID: "p-1",
			RecordType:    entities.RecordTypeExit,
		},
	}
	uc := NewSubmissionUseCase(
		&fakeResponseSource{responses: responses},
		records,
		&fakeAlertSource{records: records},
		fakeConfigSource{},
	)
	return uc, records
}

// ── tests ──

func TestProcessSubmissionFullPipeline(t *testing.T) {
	uc, records := newFixture([]entities.SurveyResponse{
		ratingResponse("r1", config.DimensionSatisfaction, 4),
		ratingResponse("r2", config.DimensionLeadership, 4),
		ratingResponse("r3", config.DimensionGrowth, 4),
		ratingResponse("r4", config.DimensionSafety, 2),
		factorResponse("r5", []string{"Leadership"}, map[string]float64{"Leadership": 1.5}),
	})

	result, err := uc.ProcessSubmission("p-1")
	if err != nil {
		t.Fatalf("processamento falhou: %v", err)
	}
	if !result.Success || result.AlreadyProcessed {
		t.Errorf("resultado inesperado: %+v", result)
	}

	// 25×75 + 20×75 + 15×75 + 25×25 = 5125 → 51.3 (compensation ausente,
	// pesos declarados sem renormalização)
	if result.CompositeIndex == nil || *result.CompositeIndex != 51.3 {
		t.Errorf("índice composto esperado 51.3, veio %v", result.CompositeIndex)
	}
	if result.Classification == nil || *result.Classification != "moderate" {
		t.Errorf("classificação esperada moderate, veio %v", result.Classification)
	}

	// safety 2.0 ≤ 2.5 → critical; fator Leadership 1.5 ≤ 2.0 → high
	if result.AlertsCreated != 2 {
		t.Fatalf("esperado 2 alertas, veio %d (%v)", result.AlertsCreated, result.AlertTypes)
	}
	if result.AlertTypes[0] != "safety_critical" || result.AlertTypes[1] != "leadership_factor" {
		t.Errorf("tipos/ordem de prioridade incorretos: %v", result.AlertTypes)
	}

	if records.record.ComplianceFlags["safety_compliance_review"] != true {
		t.Errorf("flag de conformidade não derivada: %v", records.record.ComplianceFlags)
	}
	if len(records.record.Factors) != 1 || records.record.Factors[0] != "Leadership" {
		t.Errorf("fatores não extraídos: %v", records.record.Factors)
	}
}

func TestProcessSubmissionIsIdempotent(t *testing.T) {
	uc, records := newFixture([]entities.SurveyResponse{
		ratingResponse("r1", config.DimensionSatisfaction, 4),
		ratingResponse("r2", config.DimensionLeadership, 4),
		ratingResponse("r3", config.DimensionSafety, 2),
	})

	first, err := uc.ProcessSubmission("p-1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := uc.ProcessSubmission("p-1")
	if err != nil {
		t.Fatal(err)
	}

	if !second.AlreadyProcessed {
		t.Error("segunda chamada deveria ser no-op de sucesso")
	}
	if records.applyCalls != 1 {
		t.Errorf("escrita deveria ocorrer uma única vez, veio %d", records.applyCalls)
	}
	if len(records.alerts) != first.AlertsCreated {
		t.Errorf("retry duplicou alertas: %d", len(records.alerts))
	}
	if *second.CompositeIndex != *first.CompositeIndex {
		t.Errorf("resultados divergentes: %v != %v", *second.CompositeIndex, *first.CompositeIndex)
	}
}

// Cenário de referência: só a dimensão de segurança respondida (2 em 1–5).
// Sem índice composto (1 < 3 dimensões), mas a regra de conformidade legal
// dispara independentemente, com SLA de 24 horas.
func TestProcessSubmissionSparseDataStillAlerts(t *testing.T) {
	uc, records := newFixture([]entities.SurveyResponse{
		ratingResponse("r1", config.DimensionSafety, 2),
	})

	result, err := uc.ProcessSubmission("p-1")
	if err != nil {
		t.Fatal(err)
	}
	if result.CompositeIndex != nil {
		t.Errorf("cobertura insuficiente não pode produzir índice: %v", *result.CompositeIndex)
	}
	if result.AlertsCreated != 1 || result.AlertTypes[0] != "safety_critical" {
		t.Fatalf("regra de segurança deveria disparar sozinha: %+v", result)
	}

	alert := records.alerts[0]
	if alert.Severity != entities.SeverityCritical {
		t.Errorf("severidade esperada critical, veio %s", alert.Severity)
	}
	if want := alert.CreatedAt.Add(24 * time.Hour); !alert.DueAt.Equal(want) {
		t.Errorf("vencimento esperado %v, veio %v", want, alert.DueAt)
	}

	// Registro processado mesmo sem índice: retry continua sendo no-op
	second, err := uc.ProcessSubmission("p-1")
	if err != nil {
		t.Fatal(err)
	}
	if !second.AlreadyProcessed || len(records.alerts) != 1 {
		t.Errorf("retry de registro sem índice duplicou trabalho: %+v", second)
	}
}

func TestProcessSubmissionRaceLoserReadsStoredResult(t *testing.T) {
	uc, records := newFixture([]entities.SurveyResponse{
		ratingResponse("r1", config.DimensionSatisfaction, 4),
		ratingResponse("r2", config.DimensionLeadership, 4),
		ratingResponse("r3", config.DimensionSafety, 4),
	})
	records.raceLoser = true

	result, err := uc.ProcessSubmission("p-1")
	if err != nil {
		t.Fatalf("perdedor da corrida deveria retornar o resultado armazenado: %v", err)
	}
	if !result.AlreadyProcessed || result.CompositeIndex == nil || *result.CompositeIndex != 88.8 {
		t.Errorf("resultado da corrida incorreto: %+v", result)
	}
	if len(records.alerts) != 0 {
		t.Errorf("perdedor da corrida gravou alertas: %v", records.alerts)
	}
}

func TestProcessSubmissionBackfillsCanonicalScore(t *testing.T) {
	responses := &fakeResponseSource{responses: []entities.SurveyResponse{
		ratingResponse("r1", config.DimensionSatisfaction, 4),
	}}
	records := &fakeRecordStore{record: &entities.EvaluationRecord{
		ID: "rec-1", TenantID: "t-1", ParticipantID: "p-1", RecordType: entities.RecordTypeExit,
	}}
	uc := NewSubmissionUseCase(responses, records, &fakeAlertSource{records: records}, fakeConfigSource{})

	if _, err := uc.ProcessSubmission("p-1"); err != nil {
		t.Fatal(err)
	}
	if score, ok := responses.saved["r1"]; !ok || score == nil || *score != 4 {
		t.Errorf("score canônico não foi gravado preguiçosamente: %v", responses.saved)
	}
}

func TestProcessSubmissionSiblingPatterns(t *testing.T) {
	siblings := make([]entities.EvaluationRecord, 3)
	for i := range siblings {
		siblings[i] = entities.EvaluationRecord{
			Factors:        []string{"Leadership"},
			FactorSeverity: map[string]float64{"Leadership": 1.0},
		}
	}

	uc, records := newFixture([]entities.SurveyResponse{
		ratingResponse("r1", config.DimensionSatisfaction, 4),
		ratingResponse("r2", config.DimensionLeadership, 4),
		ratingResponse("r3", config.DimensionSafety, 4),
	})
	records.siblings = siblings

	result, err := uc.ProcessSubmission("p-1")
	if err != nil {
		t.Fatal(err)
	}
	p, ok := result.Patterns["Leadership"]
	if !ok {
		t.Fatalf("padrões de irmãos ausentes: %+v", result.Patterns)
	}
	if p.Quadrant == "" || p.MentionCount != 3 {
		t.Errorf("padrão incorreto: %+v", p)
	}
}

func TestProcessSubmissionUnknownParticipant(t *testing.T) {
	records := &fakeRecordStore{}
	uc := NewSubmissionUseCase(&fakeResponseSource{}, records, &fakeAlertSource{records: records}, fakeConfigSource{})

	if _, err := uc.ProcessSubmission("ghost"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("esperado ErrRecordNotFound, veio %v", err)
	}
}
