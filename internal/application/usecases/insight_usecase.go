package usecases

import (
	"sort"

	"github.com/atriumhr/people-risk-api/internal/domain/entities"
	"github.com/atriumhr/people-risk-api/internal/domain/scoring"
)

// ScoredRecordSource lê registros já pontuados para as projeções de insight
type ScoredRecordSource interface {
	GetScoredByOrgUnit(tenantID, orgUnitID, recordType string) ([]entities.EvaluationRecord, error)
}

// FactorInsights é a projeção de padrões consumida pelo dashboard
type FactorInsights struct {
	TotalRecords     int                     `json:"total_records"`
	InsufficientData bool                    `json:"insufficient_data"`
	Patterns         []scoring.FactorPattern `json:"patterns,omitempty"`
}

// InsightUseCase expõe a detecção de quadrantes frequência × severidade como
// projeção de leitura por tenant/unidade organizacional.
type InsightUseCase struct {
	records  ScoredRecordSource
	settings ConfigSource
}

// NewInsightUseCase cria uma nova instância de InsightUseCase
func NewInsightUseCase(records ScoredRecordSource, settings ConfigSource) *InsightUseCase {
	return &InsightUseCase{records: records, settings: settings}
}

// GetFactorPatterns calcula taxa de menção, severidade média e quadrante por
// fator sobre os registros pontuados do recorte. Abaixo do mínimo de
// registros o resultado é "dados insuficientes", não um quadrante.
func (u *InsightUseCase) GetFactorPatterns(tenantID, orgUnitID, recordType string) (*FactorInsights, error) {
	cfg, err := u.settings.GetTenantConfig(tenantID)
	if err != nil {
		return nil, err
	}

	records, err := u.records.GetScoredByOrgUnit(tenantID, orgUnitID, recordType)
	if err != nil {
		return nil, err
	}

	observations := make([]scoring.FactorObservation, 0, len(records))
	for _, rec := range records {
		observations = append(observations, scoring.FactorObservation{
			Factors:  rec.Factors,
			Severity: rec.FactorSeverity,
		})
	}

	byFactor, ok := scoring.DetectPatterns(observations, cfg.Classification.Patterns)
	if !ok {
		return &FactorInsights{TotalRecords: len(records), InsufficientData: true}, nil
	}

	patterns := make([]scoring.FactorPattern, 0, len(byFactor))
	for _, p := range byFactor {
		patterns = append(patterns, p)
	}
	// Ordenação estável para a UI: mais mencionados primeiro
	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].MentionRate != patterns[j].MentionRate {
			return patterns[i].MentionRate > patterns[j].MentionRate
		}
		return patterns[i].Factor < patterns[j].Factor
	})

	return &FactorInsights{TotalRecords: len(records), Patterns: patterns}, nil
}
