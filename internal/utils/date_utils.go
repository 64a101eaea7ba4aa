package utils

import "time"

// GetBrasilLocation retorna a localização de São Paulo (UTC-3), o fuso padrão
// do deployment. Usar sempre esta função para operações de data e hora
// visíveis ao usuário, garantindo consistência com o banco.
func GetBrasilLocation() *time.Location {
	brazilLocation, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		brazilLocation = time.FixedZone("BRT", -3*60*60)
	}
	return brazilLocation
}

// ParseDateParam converte uma string de data de query param para time.Time
func ParseDateParam(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil
	}

	// Tentar formato ISO8601 com timezone
	t, err := time.Parse(time.RFC3339, dateStr)
	if err == nil {
		return t, nil
	}

	// Tentar formato de data simples (início do dia no fuso padrão)
	t, err = time.Parse("2006-01-02", dateStr)
	if err == nil {
		loc := GetBrasilLocation()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
	}

	// Tentar formato de data e hora sem timezone
	return time.Parse("2006-01-02T15:04:05", dateStr)
}
