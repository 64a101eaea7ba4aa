package usecases

import (
	"log"
	"time"

	"github.com/atriumhr/people-risk-api/internal/application/alerts"
	"github.com/atriumhr/people-risk-api/internal/domain/entities"
	"github.com/atriumhr/people-risk-api/internal/domain/repositories"
)

// AlertStore é a interface de persistência de alertas consumida pelo caso de uso
type AlertStore interface {
	GetByID(tenantID, alertID string) (*entities.Alert, error)
	GetByTenant(tenantID string, params map[string]interface{}) ([]entities.Alert, int64, error)
	GetStatistics(tenantID string) (*repositories.AlertStatistics, error)
	GetPendingForSweep() ([]entities.Alert, error)
	UpdateSLAStatus(alertID, slaStatus string) error
	Save(alert *entities.Alert) error
}

// AlertUseCase implementa as transições de ciclo de vida, as projeções de
// leitura para o dashboard e o sweep periódico de SLA.
type AlertUseCase struct {
	alertRepo AlertStore
}

// NewAlertUseCase cria uma nova instância de AlertUseCase
func NewAlertUseCase(alertRepo AlertStore) *AlertUseCase {
	return &AlertUseCase{alertRepo: alertRepo}
}

// GetAlerts retorna os alertas de um tenant com filtros e paginação
func (u *AlertUseCase) GetAlerts(tenantID string, params map[string]interface{}) ([]entities.Alert, int64, error) {
	return u.alertRepo.GetByTenant(tenantID, params)
}

// GetStatistics retorna as contagens agregadas de alertas de um tenant
func (u *AlertUseCase) GetStatistics(tenantID string) (*repositories.AlertStatistics, error) {
	return u.alertRepo.GetStatistics(tenantID)
}

// Acknowledge marca um alerta pendente como assumido pelo ator
func (u *AlertUseCase) Acknowledge(tenantID, alertID, actor string) (*entities.Alert, error) {
	return u.transition(tenantID, alertID, func(a *entities.Alert, now time.Time) error {
		return alerts.Acknowledge(a, actor, now)
	})
}

// Resolve encerra um alerta como resolvido, com nota opcional
func (u *AlertUseCase) Resolve(tenantID, alertID, actor, note string) (*entities.Alert, error) {
	return u.transition(tenantID, alertID, func(a *entities.Alert, now time.Time) error {
		return alerts.Resolve(a, actor, note, now)
	})
}

// Dismiss encerra um alerta como descartado, com nota opcional
func (u *AlertUseCase) Dismiss(tenantID, alertID, actor, note string) (*entities.Alert, error) {
	return u.transition(tenantID, alertID, func(a *entities.Alert, now time.Time) error {
		return alerts.Dismiss(a, actor, note, now)
	})
}

// AddNote anexa uma nota a um alerta sem mudar o status (permitido também em
// alertas já encerrados).
func (u *AlertUseCase) AddNote(tenantID, alertID, actor, note string) (*entities.Alert, error) {
	return u.transition(tenantID, alertID, func(a *entities.Alert, now time.Time) error {
		alerts.AppendNote(a, actor, note, now)
		return nil
	})
}

func (u *AlertUseCase) transition(tenantID, alertID string, apply func(*entities.Alert, time.Time) error) (*entities.Alert, error) {
	alert, err := u.alertRepo.GetByID(tenantID, alertID)
	if err != nil {
		return nil, err
	}
	if err := apply(alert, time.Now()); err != nil {
		return nil, err
	}
	if err := u.alertRepo.Save(alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// RunSLASweep recalcula o status de SLA de todos os alertas pendentes sem
// esperar ação do usuário. Seguro para rodar concorrente à criação de
// alertas: só atualiza sla_status de linhas pendentes — um alerta criado
// instantes antes do passe é pego no próximo passe.
func (u *AlertUseCase) RunSLASweep() (int, error) {
	pending, err := u.alertRepo.GetPendingForSweep()
	if err != nil {
		return 0, err
	}

	now := time.Now()
	updated := 0
	for _, alert := range pending {
		next := alerts.ComputeSLAStatus(alert, now)
		if next == alert.SLAStatus {
			continue
		}
		if err := u.alertRepo.UpdateSLAStatus(alert.ID, next); err != nil {
			// Um alerta com falha não interrompe o restante do passe
			log.Printf("⚠️ Sweep de SLA falhou para o alerta %s: %v", alert.ID, err)
			continue
		}
		updated++
	}
	return updated, nil
}
