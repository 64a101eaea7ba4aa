package config

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/atriumhr/people-risk-api/internal/domain/entities"
	"github.com/atriumhr/people-risk-api/internal/domain/scoring"
)

// ClassificationConfig é a configuração de classificação de um tenant:
// faixas, pesos por dimensão e limiares de padrão. Validada no carregamento,
// antes de qualquer registro ser processado — erro de configuração nunca é
// descoberto no meio de um cálculo. Somente leitura para o motor.
type ClassificationConfig struct {
	// Faixas do índice composto (0–100); a mais baixa deve cobrir o zero
	CompositeBands []scoring.Band `json:"composite_bands"`

	// Tabelas de faixa opcionais para scores brutos por dimensão (0–5),
	// ex.: limiar de conformidade legal para a dimensão de segurança
	DimensionBands map[string][]scoring.Band `json:"dimension_bands,omitempty"`

	// Pesos percentuais por dimensão; devem somar 100
	Weights map[string]float64 `json:"weights"`

	// Ver nota de design: pesos declarados, sem renormalização, por padrão
	RenormalizeWeights bool `json:"renormalize_weights"`

	MinDimensions int                       `json:"min_dimensions"`
	Patterns      scoring.PatternThresholds `json:"patterns"`
}

// Validate rejeita configurações malformadas no carregamento
func (c ClassificationConfig) Validate() error {
	if err := validateBands("composite_bands", c.CompositeBands); err != nil {
		return err
	}
	for dim, bands := range c.DimensionBands {
		if err := validateBands(fmt.Sprintf("dimension_bands[%s]", dim), bands); err != nil {
			return err
		}
	}

	if len(c.Weights) == 0 {
		return fmt.Errorf("configuração inválida: nenhum peso de dimensão declarado")
	}
	var sum float64
	for dim, w := range c.Weights {
		if w < 0 {
			return fmt.Errorf("configuração inválida: peso negativo para a dimensão %q", dim)
		}
		sum += w
	}
	if math.Abs(sum-100) > 1e-6 {
		return fmt.Errorf("configuração inválida: pesos somam %.2f, esperado 100", sum)
	}
	return nil
}

func validateBands(name string, bands []scoring.Band) error {
	if len(bands) == 0 {
		return fmt.Errorf("configuração inválida: %s vazio", name)
	}
	lowest := math.Inf(1)
	for _, b := range bands {
		if b.Label == "" {
			return fmt.Errorf("configuração inválida: %s contém faixa sem rótulo", name)
		}
		if b.LowerBound < lowest {
			lowest = b.LowerBound
		}
	}
	if lowest != 0 {
		return fmt.Errorf("configuração inválida: %s não cobre o zero (limite mínimo %.2f)", name, lowest)
	}
	return nil
}

// CompositeOptions traduz a configuração para as opções do calculador
func (c ClassificationConfig) CompositeOptions() scoring.CompositeOptions {
	return scoring.CompositeOptions{
		MinDimensions:      c.MinDimensions,
		RenormalizeWeights: c.RenormalizeWeights,
	}
}

// TenantConfig agrupa a configuração validada de um tenant
type TenantConfig struct {
	Classification ClassificationConfig
	Catalog        RuleCatalog
}

// FromSettings materializa a configuração de um tenant a partir da linha
// persistida, completando com os padrões embutidos o que estiver ausente.
// Retorna erro (e nenhuma configuração) quando o JSON é inválido ou a
// validação falha.
func FromSettings(settings entities.TenantSettings) (TenantConfig, error) {
	cfg := TenantConfig{
		Classification: DefaultClassification(),
		Catalog:        DefaultRuleCatalog(),
	}
	cfg.Classification.RenormalizeWeights = settings.RenormalizeWeights

	if len(settings.ClassificationBands) > 0 {
		var bands []scoring.Band
		if err := json.Unmarshal(settings.ClassificationBands, &bands); err != nil {
			return TenantConfig{}, fmt.Errorf("faixas de classificação malformadas para o tenant %s: %w", settings.TenantID, err)
		}
		cfg.Classification.CompositeBands = bands
	}

	if len(settings.DimensionWeights) > 0 {
		var weights map[string]float64
		if err := json.Unmarshal(settings.DimensionWeights, &weights); err != nil {
			return TenantConfig{}, fmt.Errorf("pesos de dimensão malformados para o tenant %s: %w", settings.TenantID, err)
		}
		cfg.Classification.Weights = weights
	}

	if len(settings.RuleCatalog) > 0 {
		var rules []Rule
		if err := json.Unmarshal(settings.RuleCatalog, &rules); err != nil {
			return TenantConfig{}, fmt.Errorf("catálogo de regras malformado para o tenant %s: %w", settings.TenantID, err)
		}
		cfg.Catalog = RuleCatalog{Rules: rules}
	}

	if err := cfg.Classification.Validate(); err != nil {
		return TenantConfig{}, err
	}
	if err := cfg.Catalog.Validate(); err != nil {
		return TenantConfig{}, err
	}
	return cfg, nil
}
