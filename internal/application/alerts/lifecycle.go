package alerts

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atriumhr/people-risk-api/internal/domain/entities"
)

// AtRiskWindow é a antecedência em relação ao vencimento a partir da qual um
// alerta pendente passa a at_risk.
const AtRiskWindow = 2 * time.Hour

// ErrInvalidTransition indica uma transição fora da máquina de estados
// pending → acknowledged → resolved/dismissed (ou pending → resolved/dismissed).
var ErrInvalidTransition = fmt.Errorf("transição de status inválida")

// Materialize constrói o alerta inicial de um candidato: status pending,
// vencimento em createdAt + SLA. Única origem de alertas no sistema.
func Materialize(c Candidate, record entities.EvaluationRecord, now time.Time) entities.Alert {
	description := c.Rule.DescriptionTemplate
	if c.Score != nil {
		description = fmt.Sprintf(c.Rule.DescriptionTemplate, *c.Score)
	}

	return entities.Alert{
		ID:           uuid.NewString(),
		RecordID:     record.ID,
		TenantID:     record.TenantID,
		OrgUnitID:    record.OrgUnitID,
		AlertType:    c.Rule.Type,
		Severity:     c.Rule.Severity,
		Title:        c.Rule.Title,
		Description:  description,
		TriggerScore: c.Score,
		SLAHours:     c.Rule.SLAHours,
		DueAt:        now.Add(time.Duration(c.Rule.SLAHours) * time.Hour),
		SLAStatus:    entities.SLAOnTrack,
		Status:       entities.AlertStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Acknowledge move um alerta pendente para acknowledged. A partir daqui o
// relógio de SLA é considerado pausado: um humano assumiu o alerta.
func Acknowledge(a *entities.Alert, actor string, now time.Time) error {
	if a.Status != entities.AlertStatusPending {
		return fmt.Errorf("%w: %s → acknowledged", ErrInvalidTransition, a.Status)
	}
	a.Status = entities.AlertStatusAcknowledged
	a.AcknowledgedBy = &actor
	a.AcknowledgedAt = &now
	a.UpdatedAt = now
	return nil
}

// Resolve encerra um alerta pendente ou assumido como resolvido
func Resolve(a *entities.Alert, actor, note string, now time.Time) error {
	if a.Status != entities.AlertStatusPending && a.Status != entities.AlertStatusAcknowledged {
		return fmt.Errorf("%w: %s → resolved", ErrInvalidTransition, a.Status)
	}
	a.Status = entities.AlertStatusResolved
	a.ResolvedBy = &actor
	a.ResolvedAt = &now
	a.UpdatedAt = now
	appendNote(a, actor, note, now)
	return nil
}

// Dismiss encerra um alerta pendente ou assumido como descartado
func Dismiss(a *entities.Alert, actor, note string, now time.Time) error {
	if a.Status != entities.AlertStatusPending && a.Status != entities.AlertStatusAcknowledged {
		return fmt.Errorf("%w: %s → dismissed", ErrInvalidTransition, a.Status)
	}
	a.Status = entities.AlertStatusDismissed
	a.DismissedBy = &actor
	a.DismissedAt = &now
	a.UpdatedAt = now
	appendNote(a, actor, note, now)
	return nil
}

// AppendNote anexa uma nota sem mudar o status; permitido inclusive em
// alertas já encerrados.
func AppendNote(a *entities.Alert, actor, note string, now time.Time) {
	appendNote(a, actor, note, now)
	a.UpdatedAt = now
}

func appendNote(a *entities.Alert, actor, note string, now time.Time) {
	if note == "" {
		return
	}
	a.Notes = append(a.Notes, fmt.Sprintf("[%s] %s: %s", now.Format(time.RFC3339), actor, note))
}

// ComputeSLAStatus deriva o status de SLA de um alerta. Só alertas pendentes
// escalam: acknowledged pausa o relógio. O status só aperta — um alerta que
// já estourou o prazo nunca volta para at_risk ou on_track enquanto pendente.
func ComputeSLAStatus(a entities.Alert, now time.Time) string {
	if a.Status != entities.AlertStatusPending {
		return a.SLAStatus
	}
	if a.SLAStatus == entities.SLABreached {
		return entities.SLABreached
	}
	switch {
	case now.After(a.DueAt):
		return entities.SLABreached
	case a.DueAt.Sub(now) <= AtRiskWindow:
		return entities.SLAAtRisk
	default:
		return entities.SLAOnTrack
	}
}
