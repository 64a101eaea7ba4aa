package config

import (
	"github.com/atriumhr/people-risk-api/internal/domain/entities"
	"github.com/atriumhr/people-risk-api/internal/domain/scoring"
)

// Dimensões do índice composto no deployment de referência
const (
	DimensionSatisfaction = "satisfaction"
	DimensionLeadership   = "leadership"
	DimensionGrowth       = "growth"
	DimensionCompensation = "compensation"
	DimensionSafety       = "safety"
)

// DefaultClassification retorna a configuração de classificação embutida,
// usada quando o tenant não tem configuração própria.
func DefaultClassification() ClassificationConfig {
	return ClassificationConfig{
		CompositeBands: []scoring.Band{
			{Label: "critical", LowerBound: 0, Color: "#dc2626"},
			{Label: "high_risk", LowerBound: 40, Color: "#ea580c"},
			{Label: "moderate", LowerBound: 55, Color: "#f59e0b"},
			{Label: "healthy", LowerBound: 70, Color: "#22c55e"},
			{Label: "excellent", LowerBound: 85, Color: "#15803d"},
		},
		DimensionBands: map[string][]scoring.Band{
			// Limiar de conformidade legal para a dimensão de segurança (0–5)
			DimensionSafety: {
				{Label: "compliance_review", LowerBound: 0, Color: "#dc2626"},
				{Label: "compliant", LowerBound: 2.6, Color: "#22c55e"},
			},
		},
		Weights: map[string]float64{
			DimensionSatisfaction: 25,
			DimensionLeadership:   20,
			DimensionGrowth:       15,
			DimensionCompensation: 15,
			DimensionSafety:       25,
		},
		RenormalizeWeights: false,
		MinDimensions:      scoring.DefaultMinDimensions,
		Patterns:           scoring.DefaultPatternThresholds(),
	}
}

// DefaultRuleCatalog retorna o catálogo de regras embutido. As regras de
// conformidade e de índice composto compartilham o grupo de exclusão
// "compliance": a regra de segurança tem precedência sobre a regra genérica
// de índice baixo para o mesmo registro.
func DefaultRuleCatalog() RuleCatalog {
	return RuleCatalog{Rules: []Rule{
		{
			Type:                "safety_critical",
			Scope:               RuleScopeDimension,
			Target:              DimensionSafety,
			Comparator:          ComparatorLTE,
			Threshold:           2.5,
			Severity:            entities.SeverityCritical,
			SLAHours:            24,
			Priority:            10,
			ExclusionGroup:      "compliance",
			Title:               "Risco crítico de segurança",
			DescriptionTemplate: "Score de segurança %.1f abaixo do limiar de conformidade legal. Revisão obrigatória em 24 horas.",
		},
		{
			Type:                "composite_critical",
			Scope:               RuleScopeComposite,
			Comparator:          ComparatorLTE,
			Threshold:           40,
			Severity:            entities.SeverityHigh,
			SLAHours:            48,
			Priority:            20,
			ExclusionGroup:      "compliance",
			Title:               "Índice de risco crítico",
			DescriptionTemplate: "Índice composto em %.1f, dentro da faixa crítica do tenant.",
		},
		{
			Type:                "leadership_factor",
			Scope:               RuleScopeFactor,
			Target:              "Leadership",
			Comparator:          ComparatorLTE,
			Threshold:           2.0,
			Severity:            entities.SeverityHigh,
			SLAHours:            48,
			Priority:            25,
			Title:               "Fator de liderança grave",
			DescriptionTemplate: "Fator de liderança apontado com severidade %.1f.",
		},
		{
			Type:                "satisfaction_low",
			Scope:               RuleScopeDimension,
			Target:              DimensionSatisfaction,
			Comparator:          ComparatorLTE,
			Threshold:           2.0,
			Severity:            entities.SeverityMedium,
			SLAHours:            72,
			Priority:            30,
			Title:               "Satisfação muito baixa",
			DescriptionTemplate: "Score de satisfação em %.1f na saída do colaborador.",
		},
		{
			Type:                "onboarding_risk",
			Scope:               RuleScopeComposite,
			Comparator:          ComparatorLTE,
			Threshold:           50,
			Severity:            entities.SeverityMedium,
			SLAHours:            72,
			Priority:            40,
			RecordType:          entities.RecordTypeOnboarding,
			Title:               "Onboarding em risco",
			DescriptionTemplate: "Índice de onboarding em %.1f nas primeiras semanas do contratado.",
		},
	}}
}
