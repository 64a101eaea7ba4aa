package scoring

import (
	"math"
)

// DefaultMinDimensions é o piso de cobertura do índice composto: abaixo de
// três dimensões presentes o cálculo é inválido, para evitar conclusões
// fortes a partir de dados esparsos.
const DefaultMinDimensions = 3

// CompositeOptions parametriza o cálculo do índice composto
type CompositeOptions struct {
	// Mínimo de dimensões não nulas para o índice ser válido (0 = padrão 3)
	MinDimensions int

	// Quando false (padrão, comportamento da fonte), os pesos declarados são
	// aplicados diretamente às dimensões presentes sem renormalização: uma
	// dimensão ausente com 25% de peso deixa o teto efetivo em 75. Quando
	// true, o denominador passa a ser a soma dos pesos presentes.
	RenormalizeWeights bool
}

// Compose agrega os scores canônicos por dimensão em um único índice
// ponderado 0–100. Cada score na escala 0–5 é reescalado linearmente para
// 0–100 (1 → 0, 5 → 100) antes da ponderação. Dimensões com score nulo são
// excluídas de numerador e denominador.
//
// Retorna (índice, true) com o índice arredondado para uma casa decimal, ou
// (0, false) quando a cobertura fica abaixo do piso mínimo.
func Compose(dimensionScores map[string]*float64, weights map[string]float64, opts CompositeOptions) (float64, bool) {
	minDims := opts.MinDimensions
	if minDims <= 0 {
		minDims = DefaultMinDimensions
	}

	var weightedSum, presentWeight float64
	present := 0

	for dim, weight := range weights {
		score, ok := dimensionScores[dim]
		if !ok || score == nil {
			continue
		}
		present++
		presentWeight += weight
		weightedSum += rescaleTo100(*score) * weight
	}

	if present < minDims {
		return 0, false
	}

	denom := 100.0
	if opts.RenormalizeWeights && presentWeight > 0 {
		denom = presentWeight
	}

	index := weightedSum / denom
	if index < 0 {
		index = 0
	}
	if index > 100 {
		index = 100
	}
	return math.Round(index*10) / 10, true
}

// rescaleTo100 leva um score 0–5 para a escala 0–100: (s − 1) / 4 × 100.
// Valores abaixo de 1 são represados em 0 para que mapeamentos legados com
// score zero não produzam contribuição negativa.
func rescaleTo100(score float64) float64 {
	scaled := (score - 1) / 4 * 100
	if scaled < 0 {
		return 0
	}
	if scaled > 100 {
		return 100
	}
	return scaled
}
