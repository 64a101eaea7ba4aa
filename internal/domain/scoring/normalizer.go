package scoring

import (
	"sort"
	"strings"

	"github.com/atriumhr/people-risk-api/internal/domain/entities"
)

// Normalize converte o valor bruto de uma resposta em um score canônico na
// escala 0–5, usando os metadados da pergunta. Retorna nil quando não há
// sinal numérico — violação de limites, rótulo sem mapeamento ou texto livre.
//
// Nil nunca é coagido para zero: uma avaliação ausente não pode contar
// silenciosamente como "pior nota". Estágios seguintes tratam nil como
// dado insuficiente e pulam o cálculo.
func Normalize(resp entities.SurveyResponse, q entities.SurveyQuestion) *float64 {
	switch q.ResponseType {
	case entities.ResponseTypeRating, entities.ResponseTypeMatrix:
		return normalizeRating(resp, q)
	case entities.ResponseTypeSingleChoice:
		return lookupLabel(resp.Value, q.ValueMap)
	case entities.ResponseTypeMultiChoice:
		// Múltipla escolha não produz score único: o motor de regras consome
		// o conjunto de rótulos junto com a matriz de severidade por rótulo.
		return nil
	case entities.ResponseTypeText:
		return normalizeText(resp.Value, q.ValueMap)
	default:
		return nil
	}
}

// normalizeRating repassa o valor numérico diretamente quando dentro dos
// limites declarados da pergunta; fora dos limites é dado insuficiente.
func normalizeRating(resp entities.SurveyResponse, q entities.SurveyQuestion) *float64 {
	if resp.NumericValue == nil {
		return nil
	}
	v := *resp.NumericValue
	if v < q.MinValue || v > q.MaxValue {
		return nil
	}
	return &v
}

// lookupLabel resolve um rótulo de escolha única na tabela de mapeamento
func lookupLabel(label string, valueMap map[string]float64) *float64 {
	if label == "" || len(valueMap) == 0 {
		return nil
	}
	if score, ok := valueMap[label]; ok {
		return &score
	}
	return nil
}

// normalizeText só existe para compatibilidade com dados legados: texto livre
// não tem sinal numérico, a menos que o mapeamento declare palavras-chave
// reconhecidas. A busca percorre as chaves em ordem estável para que o mesmo
// texto sempre produza o mesmo score.
func normalizeText(text string, valueMap map[string]float64) *float64 {
	if text == "" || len(valueMap) == 0 {
		return nil
	}
	lowered := strings.ToLower(text)

	keys := make([]string, 0, len(valueMap))
	for k := range valueMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.Contains(lowered, strings.ToLower(k)) {
			score := valueMap[k]
			return &score
		}
	}
	return nil
}

// SelectedLabels retorna o conjunto de rótulos escolhidos em uma resposta de
// múltipla escolha, para consumo do motor de regras e do detector de padrões.
func SelectedLabels(resp entities.SurveyResponse, q entities.SurveyQuestion) []string {
	if q.ResponseType != entities.ResponseTypeMultiChoice {
		return nil
	}
	return resp.Values
}
