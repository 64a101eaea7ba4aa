package alerts

import (
	"github.com/atriumhr/people-risk-api/internal/domain/config"
	"github.com/atriumhr/people-risk-api/internal/domain/entities"
)

// RecordContext reúne os sinais de um registro já normalizados, prontos para
// avaliação do catálogo de regras.
type RecordContext struct {
	Record entities.EvaluationRecord

	// Score canônico por dimensão; nil = dado insuficiente
	DimensionScores map[string]*float64

	// Índice composto; nil quando a cobertura ficou abaixo do piso
	CompositeIndex *float64
}

// Candidate é um alerta candidato produzido pelo motor de regras, ainda não
// persistido. A materialização é responsabilidade do ciclo de vida.
type Candidate struct {
	Rule  config.Rule
	Score *float64
}

// EvaluateRules avalia o catálogo contra um registro e produz zero ou mais
// alertas candidatos. A avaliação é idempotente entre invocações repetidas:
// um alerta aberto (pending/acknowledged) do mesmo par (registro, tipo)
// suprime a emissão de um novo candidato.
//
// Regras são avaliadas em ordem de prioridade; a primeira regra satisfeita de
// um grupo de exclusão cobre o grupo, mesmo quando a emissão foi deduplicada —
// reprocessar um registro não pode deixar uma regra de menor prioridade do
// mesmo grupo disparar no lugar.
func EvaluateRules(ctx RecordContext, catalog config.RuleCatalog, openAlerts []entities.Alert) []Candidate {
	openByType := make(map[string]bool, len(openAlerts))
	for _, a := range openAlerts {
		if a.RecordID == ctx.Record.ID && a.IsOpen() {
			openByType[a.AlertType] = true
		}
	}

	firedGroups := make(map[string]bool)
	var candidates []Candidate

	for _, rule := range catalog.Ordered() {
		if rule.RecordType != "" && rule.RecordType != ctx.Record.RecordType {
			continue
		}
		if rule.ExclusionGroup != "" && firedGroups[rule.ExclusionGroup] {
			continue
		}

		score, satisfied := evaluateRule(ctx, rule)
		if !satisfied {
			continue
		}
		if rule.ExclusionGroup != "" {
			firedGroups[rule.ExclusionGroup] = true
		}
		if openByType[rule.Type] {
			continue // dedup: já existe alerta aberto deste tipo
		}
		candidates = append(candidates, Candidate{Rule: rule, Score: score})
	}
	return candidates
}

// evaluateRule resolve o sinal alvo da regra e avalia o predicado.
// Score nulo nunca satisfaz um predicado (falha fechado).
func evaluateRule(ctx RecordContext, rule config.Rule) (*float64, bool) {
	switch rule.Scope {
	case config.RuleScopeDimension:
		score := ctx.DimensionScores[rule.Target]
		return score, compare(score, rule.Comparator, rule.Threshold)

	case config.RuleScopeComposite:
		return ctx.CompositeIndex, compare(ctx.CompositeIndex, rule.Comparator, rule.Threshold)

	case config.RuleScopeFactor:
		if !mentions(ctx.Record.Factors, rule.Target) {
			return nil, false
		}
		if rule.Comparator == "" {
			// Regra de presença: dispara pela simples seleção do fator
			return nil, true
		}
		sev, ok := ctx.Record.FactorSeverity[rule.Target]
		if !ok {
			return nil, false
		}
		return &sev, compare(&sev, rule.Comparator, rule.Threshold)
	}
	return nil, false
}

func compare(score *float64, comparator string, threshold float64) bool {
	if score == nil {
		return false
	}
	switch comparator {
	case config.ComparatorLTE:
		return *score <= threshold
	case config.ComparatorGTE:
		return *score >= threshold
	}
	return false
}

func mentions(factors []string, target string) bool {
	for _, f := range factors {
		if f == target {
			return true
		}
	}
	return false
}
