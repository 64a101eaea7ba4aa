package database

import (
	"context"

	"gorm.io/gorm"
)

// Chave para o contexto que indica se o timezone já foi configurado
type timezoneKey struct{}

// setTimezoneCallback cria um callback GORM que fixa o timezone da sessão.
// Prazos de SLA e janelas de filtro do dashboard assumem o fuso padrão do
// deployment, independente do fuso do servidor de aplicação.
func setTimezoneCallback() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		// Evita recursão infinita quando o próprio Exec passa pelo callback
		if _, ok := db.Statement.Context.Value(timezoneKey{}).(bool); ok {
			return
		}
		ctx := context.WithValue(db.Statement.Context, timezoneKey{}, true)
		db.WithContext(ctx).Exec("SET timezone = 'America/Sao_Paulo'")
	}
}

// RegisterMiddlewares registra os callbacks necessários no GORM
func RegisterMiddlewares(db *gorm.DB) {
	db.Callback().Query().Before("gorm:query").Register("set_timezone_before_query", setTimezoneCallback())
}
