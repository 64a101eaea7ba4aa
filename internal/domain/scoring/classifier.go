package scoring

import (
	"sort"
)

// Band é uma faixa nomeada do índice composto ou de um score bruto, usada
// para classificação legível (ex.: "critical", "healthy"). O limite inferior
// é inclusivo; a faixa mais baixa de uma tabela válida cobre o zero.
type Band struct {
	Label      string  `json:"label"`
	LowerBound float64 `json:"lower_bound"`
	Color      string  `json:"color,omitempty"`
}

// Classify retorna o rótulo da primeira faixa, em ordem decrescente de limite
// inferior, cujo limite é ≤ value. A validação de configuração garante que a
// faixa mais baixa tem limite 0, então a função é total sobre valores ≥ 0.
func Classify(value float64, bands []Band) string {
	if len(bands) == 0 {
		return ""
	}

	ordered := make([]Band, len(bands))
	copy(ordered, bands)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].LowerBound > ordered[j].LowerBound
	})

	for _, b := range ordered {
		if b.LowerBound <= value {
			return b.Label
		}
	}
	// Só alcançável com tabela malformada (limite mínimo > 0)
	return ordered[len(ordered)-1].Label
}
