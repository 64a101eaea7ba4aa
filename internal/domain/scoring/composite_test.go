package scoring

import (
	"testing"
)

var testWeights = map[string]float64{
	"satisfaction": 25,
	"leadership":   20,
	"growth":       15,
	"compensation": 15,
	"safety":       25,
}

func TestComposeAllDimensionsPresent(t *testing.T) {
	scores := map[string]*float64{
		"satisfaction": f(4),
		"leadership":   f(4),
		"growth":       f(4),
		"compensation": f(4),
		"safety":       f(4),
	}

	index, valid := Compose(scores, testWeights, CompositeOptions{})
	if !valid {
		t.Fatal("cobertura completa deveria ser válida")
	}
	// 4 na escala 0–5 reescala para 75; todos os pesos presentes → 75.0
	if index != 75.0 {
		t.Errorf("índice esperado 75.0, veio %v", index)
	}
}

func TestComposeBelowCoverageFloor(t *testing.T) {
	scores := map[string]*float64{
		"safety":     f(2),
		"leadership": nil,
	}

	if _, valid := Compose(scores, testWeights, CompositeOptions{}); valid {
		t.Error("uma dimensão presente não pode produzir índice válido")
	}
}

func TestComposeDeclaredWeightsAreNotRenormalized(t *testing.T) {
	// safety (25%) ausente: as demais dimensões em 4 somam só 75% do teto
	scores := map[string]*float64{
		"satisfaction": f(4),
		"leadership":   f(4),
		"growth":       f(4),
		"compensation": f(4),
	}

	index, valid := Compose(scores, testWeights, CompositeOptions{})
	if !valid {
		t.Fatal("quatro dimensões presentes deveriam ser válidas")
	}
	// 75 × (25+20+15+15) / 100 = 56.25 → 56.3
	if index != 56.3 {
		t.Errorf("sem renormalização: esperado 56.3, veio %v", index)
	}

	renorm, _ := Compose(scores, testWeights, CompositeOptions{RenormalizeWeights: true})
	if renorm != 75.0 {
		t.Errorf("com renormalização: esperado 75.0, veio %v", renorm)
	}
}

func TestComposeNullDimensionIsNotWorstScore(t *testing.T) {
	// Dimensão nula deve ser excluída, não contada como zero
	withNull := map[string]*float64{
		"satisfaction": f(4),
		"leadership":   f(4),
		"growth":       f(4),
		"safety":       nil,
	}
	without := map[string]*float64{
		"satisfaction": f(4),
		"leadership":   f(4),
		"growth":       f(4),
	}

	a, _ := Compose(withNull, testWeights, CompositeOptions{})
	b, _ := Compose(without, testWeights, CompositeOptions{})
	if a != b {
		t.Errorf("dimensão nula mudou o índice: %v != %v", a, b)
	}
}

func TestComposeRounding(t *testing.T) {
	scores := map[string]*float64{
		"satisfaction": f(3),
		"leadership":   f(4),
		"growth":       f(2),
	}
	// 50×25 + 75×20 + 25×15 = 3125 → 31.25 → 31.3
	index, valid := Compose(scores, testWeights, CompositeOptions{})
	if !valid {
		t.Fatal("três dimensões deveriam ser válidas")
	}
	if index != 31.3 {
		t.Errorf("arredondamento para uma casa: esperado 31.3, veio %v", index)
	}
}

func TestComposeRangeClamped(t *testing.T) {
	// Score 0 de mapeamento legado reescalaria para -25; represado em 0
	scores := map[string]*float64{
		"satisfaction": f(0),
		"leadership":   f(0),
		"growth":       f(0),
	}
	index, valid := Compose(scores, testWeights, CompositeOptions{})
	if !valid {
		t.Fatal("três dimensões deveriam ser válidas")
	}
	if index != 0 {
		t.Errorf("índice abaixo de 0 deveria ser represado: %v", index)
	}
}
