package scoring

import (
	"testing"
)

// Cenário de referência: 10 registros, 3 mencionam "Leadership" com
// severidades 1.0, 1.5 e 2.0 → taxa 0.30, média 1.5 → act_now.
func leadershipFixture() []FactorObservation {
	records := []FactorObservation{
		{Factors: []string{"Leadership"}, Severity: map[string]float64{"Leadership": 1.0}},
		{Factors: []string{"Leadership", "Compensation"}, Severity: map[string]float64{"Leadership": 1.5, "Compensation": 4.0}},
		{Factors: []string{"Leadership"}, Severity: map[string]float64{"Leadership": 2.0}},
	}
	for i := 0; i < 7; i++ {
		records = append(records, FactorObservation{Factors: []string{"Workload"}, Severity: map[string]float64{"Workload": 4.0}})
	}
	return records
}

func TestDetectPatternsActNowQuadrant(t *testing.T) {
	patterns, ok := DetectPatterns(leadershipFixture(), DefaultPatternThresholds())
	if !ok {
		t.Fatal("10 registros deveriam ser suficientes")
	}

	p, found := patterns["Leadership"]
	if !found {
		t.Fatal("fator Leadership ausente do resultado")
	}
	if p.MentionCount != 3 || p.MentionRate != 0.3 {
		t.Errorf("taxa de menção: esperado 3/0.30, veio %d/%v", p.MentionCount, p.MentionRate)
	}
	if p.MeanSeverity != 1.5 {
		t.Errorf("severidade média: esperado 1.5, veio %v", p.MeanSeverity)
	}
	if p.Quadrant != QuadrantActNow {
		t.Errorf("quadrante: esperado %s, veio %s", QuadrantActNow, p.Quadrant)
	}

	// Workload: 0.70 de taxa, severidade 4.0 → alta frequência, baixa severidade
	if w := patterns["Workload"]; w.Quadrant != QuadrantMonitor {
		t.Errorf("Workload: esperado %s, veio %s", QuadrantMonitor, w.Quadrant)
	}

	// Compensation: 0.10 de taxa, severidade 4.0 → baixa em ambos
	if c := patterns["Compensation"]; c.Quadrant != QuadrantObserve {
		t.Errorf("Compensation: esperado %s, veio %s", QuadrantObserve, c.Quadrant)
	}
}

func TestDetectPatternsInvestigateQuadrant(t *testing.T) {
	// Raro mas devastador: 1 menção em 10, severidade 1.0
	records := []FactorObservation{
		{Factors: []string{"Harassment"}, Severity: map[string]float64{"Harassment": 1.0}},
	}
	for i := 0; i < 9; i++ {
		records = append(records, FactorObservation{})
	}

	patterns, ok := DetectPatterns(records, DefaultPatternThresholds())
	if !ok {
		t.Fatal("10 registros deveriam ser suficientes")
	}
	if p := patterns["Harassment"]; p.Quadrant != QuadrantInvestigate {
		t.Errorf("esperado %s, veio %s", QuadrantInvestigate, p.Quadrant)
	}
}

func TestDetectPatternsInsufficientData(t *testing.T) {
	records := []FactorObservation{
		{Factors: []string{"Leadership"}, Severity: map[string]float64{"Leadership": 1.0}},
		{Factors: []string{"Leadership"}, Severity: map[string]float64{"Leadership": 1.0}},
	}
	if _, ok := DetectPatterns(records, DefaultPatternThresholds()); ok {
		t.Error("2 registros abaixo do mínimo deveriam retornar dado insuficiente")
	}
}

func TestDetectPatternsOrderIndependent(t *testing.T) {
	records := leadershipFixture()
	base, _ := DetectPatterns(records, DefaultPatternThresholds())

	reversed := make([]FactorObservation, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}
	other, _ := DetectPatterns(reversed, DefaultPatternThresholds())

	for factor, p := range base {
		o := other[factor]
		if o.MentionRate != p.MentionRate || o.MeanSeverity != p.MeanSeverity || o.Quadrant != p.Quadrant {
			t.Errorf("fator %s mudou com a reordenação: %+v != %+v", factor, p, o)
		}
	}
}

func TestDetectPatternsMissingSeverityFailsClosed(t *testing.T) {
	// Fator mencionado sem severidade registrada não pode virar alta severidade
	records := []FactorObservation{
		{Factors: []string{"Culture"}},
		{Factors: []string{"Culture"}},
		{Factors: []string{"Culture"}},
	}
	patterns, ok := DetectPatterns(records, DefaultPatternThresholds())
	if !ok {
		t.Fatal("3 registros deveriam ser suficientes")
	}
	if p := patterns["Culture"]; p.Quadrant != QuadrantMonitor {
		t.Errorf("sem severidade: esperado %s, veio %s", QuadrantMonitor, p.Quadrant)
	}
}

func TestDetectPatternsDuplicateMentionCountsOnce(t *testing.T) {
	records := []FactorObservation{
		{Factors: []string{"Leadership", "Leadership"}, Severity: map[string]float64{"Leadership": 1.0}},
		{Factors: []string{"Growth"}},
		{Factors: []string{"Growth"}},
	}
	patterns, _ := DetectPatterns(records, DefaultPatternThresholds())
	if p := patterns["Leadership"]; p.MentionCount != 1 {
		t.Errorf("menção duplicada no mesmo registro: esperado 1, veio %d", p.MentionCount)
	}
}
