package entities

import (
	"encoding/json"
	"time"
)

// TenantSettings guarda a configuração de classificação e o catálogo de regras
// de um tenant como dados versionáveis (JSONB), separados de qualquer texto de
// apresentação. Tenants sem linha própria usam a configuração padrão embutida.
type TenantSettings struct {
	TenantID string `json:"tenant_id" gorm:"primaryKey;column:tenant_id;type:uuid"`

	ClassificationBands json.RawMessage `json:"classification_bands,omitempty" gorm:"column:classification_bands;type:jsonb"`
	DimensionWeights    json.RawMessage `json:"dimension_weights,omitempty" gorm:"column:dimension_weights;type:jsonb"`
	RuleCatalog         json.RawMessage `json:"rule_catalog,omitempty" gorm:"column:rule_catalog;type:jsonb"`

	// Ver nota de design: pesos declarados não são renormalizados por padrão
	RenormalizeWeights bool `json:"renormalize_weights" gorm:"column:renormalize_weights"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName retorna o nome da tabela para o GORM
func (TenantSettings) TableName() string {
	return "tenant_settings"
}
