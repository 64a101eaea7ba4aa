package entities

import (
	"time"
)

// Tipos de registro avaliado pelos dois produtos
const (
	RecordTypeExit       = "exit"
	RecordTypeOnboarding = "onboarding"
)

// EvaluationRecord é o sujeito sendo pontuado (desligamento ou jornada de
// onboarding). Os campos compostos são preenchidos exatamente uma vez pelo
// pós-processador e depois são imutáveis — o índice composto é gravado no
// máximo uma vez por registro (guarda de idempotência).
type EvaluationRecord struct {
	ID            string `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	TenantID      string `json:"tenant_id" gorm:"column:tenant_id;type:uuid"`
	OrgUnitID     string `json:"org_unit_id" gorm:"column:org_unit_id;type:uuid"`
	ParticipantID string `json:"participant_id" gorm:"column:participant_id;type:uuid"`
	RecordType    string `json:"record_type" gorm:"column:record_type"`

	// Preenchidos pelo pós-processador
	CompositeIndex *float64 `json:"composite_index,omitempty" gorm:"column:composite_index"`
	Classification *string  `json:"classification,omitempty" gorm:"column:classification"`

	// Fatores qualitativos extraídos das respostas de múltipla escolha
	Factors        []string           `json:"factors,omitempty" gorm:"column:factors;serializer:json"`
	FactorSeverity map[string]float64 `json:"factor_severity,omitempty" gorm:"column:factor_severity;serializer:json"`

	// Flags de conformidade derivadas (ex.: "critical_safety")
	ComplianceFlags map[string]bool `json:"compliance_flags,omitempty" gorm:"column:compliance_flags;serializer:json"`

	ProcessedAt *time.Time `json:"processed_at,omitempty" gorm:"column:processed_at"`
	CreatedAt   time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

// TableName retorna o nome da tabela para o GORM
func (EvaluationRecord) TableName() string {
	return "evaluation_records"
}

// IsScored indica se o registro já passou pelo pós-processador.
// Um índice composto não nulo é a guarda de idempotência: chamadas repetidas
// de processamento observam o registro já pontuado e retornam cedo.
func (r *EvaluationRecord) IsScored() bool {
	return r.CompositeIndex != nil || r.ProcessedAt != nil
}
