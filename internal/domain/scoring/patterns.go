package scoring

// Quadrantes de triagem frequência × severidade
const (
	QuadrantActNow      = "act_now"     // alta frequência + alta severidade
	QuadrantInvestigate = "investigate" // baixa frequência + alta severidade
	QuadrantMonitor     = "monitor"     // alta frequência + baixa severidade
	QuadrantObserve     = "observe"     // baixa frequência + baixa severidade
)

// PatternThresholds parametriza a detecção de padrões entre registros
type PatternThresholds struct {
	// Mínimo de registros para o resultado não ser espúrio
	MinRecords int

	// Taxa de menção a partir da qual um fator é "alta frequência"
	HighFrequencyRate float64

	// Severidade média (escala 1–5 invertida: menor = pior) até a qual um
	// fator é "alta severidade"
	HighSeverityCeiling float64
}

// DefaultPatternThresholds retorna os limiares do deployment de referência
func DefaultPatternThresholds() PatternThresholds {
	return PatternThresholds{
		MinRecords:          3,
		HighFrequencyRate:   0.25,
		HighSeverityCeiling: 2.5,
	}
}

// FactorObservation é a fatia de um registro relevante para detecção de
// padrões: fatores selecionados e severidade por fator.
type FactorObservation struct {
	Factors  []string
	Severity map[string]float64
}

// FactorPattern é o resultado agregado de um fator entre muitos registros
type FactorPattern struct {
	Factor       string  `json:"factor"`
	MentionCount int     `json:"mention_count"`
	MentionRate  float64 `json:"mention_rate"`
	MeanSeverity float64 `json:"mean_severity"`
	Quadrant     string  `json:"quadrant"`
}

// DetectPatterns calcula taxa de menção e severidade média por fator e
// classifica cada fator em um dos quatro quadrantes. Retorna (nil, false)
// quando há menos registros que o mínimo — dado insuficiente é um resultado
// explícito, não um quadrante.
//
// O resultado depende só do conjunto de entrada: reordenar os registros não
// muda taxa, média nem quadrante de nenhum fator.
func DetectPatterns(records []FactorObservation, th PatternThresholds) (map[string]FactorPattern, bool) {
	if th.MinRecords <= 0 {
		th.MinRecords = DefaultPatternThresholds().MinRecords
	}
	if len(records) < th.MinRecords {
		return nil, false
	}

	type accum struct {
		mentions      int
		severitySum   float64
		severityCount int
	}
	byFactor := make(map[string]*accum)

	for _, rec := range records {
		seen := make(map[string]bool, len(rec.Factors))
		for _, f := range rec.Factors {
			if f == "" || seen[f] {
				continue
			}
			seen[f] = true

			acc := byFactor[f]
			if acc == nil {
				acc = &accum{}
				byFactor[f] = acc
			}
			acc.mentions++
			if sev, ok := rec.Severity[f]; ok {
				acc.severitySum += sev
				acc.severityCount++
			}
		}
	}

	total := float64(len(records))
	result := make(map[string]FactorPattern, len(byFactor))

	for factor, acc := range byFactor {
		p := FactorPattern{
			Factor:       factor,
			MentionCount: acc.mentions,
			MentionRate:  float64(acc.mentions) / total,
		}

		highFreq := p.MentionRate >= th.HighFrequencyRate

		// Fator mencionado sem nenhuma severidade registrada não pode contar
		// como "alta severidade" — dado ausente falha para o lado seguro.
		highSev := false
		if acc.severityCount > 0 {
			p.MeanSeverity = acc.severitySum / float64(acc.severityCount)
			highSev = p.MeanSeverity <= th.HighSeverityCeiling
		}

		switch {
		case highFreq && highSev:
			p.Quadrant = QuadrantActNow
		case !highFreq && highSev:
			// Raro mas devastador: o quadrante mais perigoso, porque é fácil
			// de descartar como ruído.
			p.Quadrant = QuadrantInvestigate
		case highFreq && !highSev:
			p.Quadrant = QuadrantMonitor
		default:
			p.Quadrant = QuadrantObserve
		}

		result[factor] = p
	}

	return result, true
}
