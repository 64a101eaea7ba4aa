package config

import (
	"fmt"
	"sort"

	"github.com/atriumhr/people-risk-api/internal/domain/entities"
)

// Escopo de uma regra: sobre qual sinal o predicado é avaliado
const (
	RuleScopeDimension = "dimension" // score canônico de uma dimensão
	RuleScopeFactor    = "factor"    // presença/severidade de um fator
	RuleScopeComposite = "composite" // índice composto do registro
)

// Comparadores de predicado
const (
	ComparatorLTE = "lte" // score ≤ threshold
	ComparatorGTE = "gte" // score ≥ threshold
)

// Rule é uma regra declarativa do catálogo de alertas. Prioridade e grupo de
// exclusão são explícitos: a precedência não depende da ordem do catálogo, e
// a primeira regra que dispara em um grupo suprime as demais do mesmo grupo.
type Rule struct {
	// Chave do tipo de alerta; única dentro do catálogo
	Type string `json:"type"`

	Scope  string `json:"scope"`
	Target string `json:"target,omitempty"` // dimensão ou fator; vazio para composite

	// Comparator vazio em regras de fator significa disparo por presença
	Comparator string  `json:"comparator,omitempty"`
	Threshold  float64 `json:"threshold"`

	Severity string `json:"severity"`
	SLAHours int    `json:"sla_hours"`

	// Menor valor = maior prioridade
	Priority       int    `json:"priority"`
	ExclusionGroup string `json:"exclusion_group,omitempty"`

	// Vazio = qualquer tipo de registro
	RecordType string `json:"record_type,omitempty"`

	Title string `json:"title"`
	// Template fmt com um %.1f para o score disparador
	DescriptionTemplate string `json:"description_template"`
}

// RuleCatalog é a lista de regras de um tenant (ou o catálogo padrão)
type RuleCatalog struct {
	Rules []Rule `json:"rules"`
}

// Validate rejeita catálogos malformados no carregamento
func (c RuleCatalog) Validate() error {
	seen := make(map[string]bool, len(c.Rules))
	for i, r := range c.Rules {
		if r.Type == "" {
			return fmt.Errorf("catálogo inválido: regra %d sem tipo", i)
		}
		if seen[r.Type] {
			return fmt.Errorf("catálogo inválido: tipo de regra duplicado %q", r.Type)
		}
		seen[r.Type] = true

		switch r.Scope {
		case RuleScopeDimension, RuleScopeComposite:
			if r.Comparator != ComparatorLTE && r.Comparator != ComparatorGTE {
				return fmt.Errorf("catálogo inválido: regra %q com comparador %q", r.Type, r.Comparator)
			}
		case RuleScopeFactor:
			if r.Comparator != "" && r.Comparator != ComparatorLTE && r.Comparator != ComparatorGTE {
				return fmt.Errorf("catálogo inválido: regra %q com comparador %q", r.Type, r.Comparator)
			}
		default:
			return fmt.Errorf("catálogo inválido: regra %q com escopo %q", r.Type, r.Scope)
		}

		if r.Scope != RuleScopeComposite && r.Target == "" {
			return fmt.Errorf("catálogo inválido: regra %q sem alvo", r.Type)
		}
		if entities.SeverityRank(r.Severity) == 0 {
			return fmt.Errorf("catálogo inválido: regra %q com severidade %q", r.Type, r.Severity)
		}
		if r.SLAHours <= 0 {
			return fmt.Errorf("catálogo inválido: regra %q com SLA de %d horas", r.Type, r.SLAHours)
		}
	}
	return nil
}

// Ordered retorna as regras em ordem de avaliação: prioridade crescente, com
// o tipo como desempate para manter a avaliação determinística.
func (c RuleCatalog) Ordered() []Rule {
	ordered := make([]Rule, len(c.Rules))
	copy(ordered, c.Rules)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority < ordered[j].Priority
		}
		return ordered[i].Type < ordered[j].Type
	})
	return ordered
}
