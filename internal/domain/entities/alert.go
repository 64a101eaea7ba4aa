package entities

import (
	"time"
)

// Severidade de um alerta, em ordem crescente
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Status do ciclo de vida de um alerta
const (
	AlertStatusPending      = "pending"
	AlertStatusAcknowledged = "acknowledged"
	AlertStatusResolved     = "resolved"
	AlertStatusDismissed    = "dismissed"
)

// Status de SLA derivado pelo sweep periódico
const (
	SLAOnTrack  = "on_track"
	SLAAtRisk   = "at_risk"
	SLABreached = "breached"
)

// severityRank permite ordenar severidades sem depender da ordem alfabética
var severityRank = map[string]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// SeverityRank retorna a posição ordinal de uma severidade (0 = desconhecida)
func SeverityRank(severity string) int {
	return severityRank[severity]
}

// Alert é uma unidade de ação humana obrigatória. Criado pelo motor de regras;
// mutado somente através das transições do gerenciador de ciclo de vida;
// nunca apagado, apenas transicionado para um status terminal.
//
// Invariante de deduplicação: no máximo um alerta de um dado par
// (registro, tipo de alerta) pode estar em status não terminal
// (pending ou acknowledged) a qualquer momento.
type Alert struct {
	ID        string `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	RecordID  string `json:"record_id" gorm:"column:record_id;type:uuid"`
	TenantID  string `json:"tenant_id" gorm:"column:tenant_id;type:uuid"`
	OrgUnitID string `json:"org_unit_id" gorm:"column:org_unit_id;type:uuid"`

	AlertType   string `json:"alert_type" gorm:"column:alert_type"`
	Severity    string `json:"severity" gorm:"column:severity"`
	Title       string `json:"title" gorm:"column:title"`
	Description string `json:"description" gorm:"column:description"`

	// Score que disparou a regra (nulo para regras de presença de fator)
	TriggerScore *float64 `json:"trigger_score,omitempty" gorm:"column:trigger_score"`

	SLAHours  int       `json:"sla_hours" gorm:"column:sla_hours"`
	DueAt     time.Time `json:"due_at" gorm:"column:due_at"`
	SLAStatus string    `json:"sla_status" gorm:"column:sla_status"`
	Status    string    `json:"status" gorm:"column:status"`

	// Auditoria: quem/quando para cada transição
	AcknowledgedBy *string    `json:"acknowledged_by,omitempty" gorm:"column:acknowledged_by"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty" gorm:"column:acknowledged_at"`
	ResolvedBy     *string    `json:"resolved_by,omitempty" gorm:"column:resolved_by"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty" gorm:"column:resolved_at"`
	DismissedBy    *string    `json:"dismissed_by,omitempty" gorm:"column:dismissed_by"`
	DismissedAt    *time.Time `json:"dismissed_at,omitempty" gorm:"column:dismissed_at"`
	Notes          []string   `json:"notes,omitempty" gorm:"column:notes;serializer:json"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName retorna o nome da tabela para o GORM
func (Alert) TableName() string {
	return "alerts"
}

// IsOpen indica se o alerta está em um status não terminal
func (a *Alert) IsOpen() bool {
	return a.Status == AlertStatusPending || a.Status == AlertStatusAcknowledged
}
