package alerts

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atriumhr/people-risk-api/internal/domain/config"
	"github.com/atriumhr/people-risk-api/internal/domain/entities"
)

func pendingAlert(now time.Time) entities.Alert {
	rule := config.DefaultRuleCatalog().Rules[0] // safety_critical, SLA 24h
	return Materialize(Candidate{Rule: rule, Score: f(2.0)}, entities.EvaluationRecord{
		ID:        "rec-1",
		TenantID:  "t-1",
		OrgUnitID: "ou-1",
	}, now)
}

func TestMaterializeSetsInitialState(t *testing.T) {
	now := time.Now()
	a := pendingAlert(now)

	if a.Status != entities.AlertStatusPending {
		t.Errorf("status inicial esperado pending, veio %s", a.Status)
	}
	if a.SLAStatus != entities.SLAOnTrack {
		t.Errorf("SLA inicial esperado on_track, veio %s", a.SLAStatus)
	}
	if want := now.Add(24 * time.Hour); !a.DueAt.Equal(want) {
		t.Errorf("vencimento esperado %v, veio %v", want, a.DueAt)
	}
	if !strings.Contains(a.Description, "2.0") {
		t.Errorf("descrição sem o score disparador: %q", a.Description)
	}
	if a.ID == "" {
		t.Error("alerta sem identificador")
	}
}

func TestLifecycleHappyPath(t *testing.T) {
	now := time.Now()
	a := pendingAlert(now)

	if err := Acknowledge(&a, "user-1", now.Add(time.Hour)); err != nil {
		t.Fatalf("acknowledge falhou: %v", err)
	}
	if a.Status != entities.AlertStatusAcknowledged || a.AcknowledgedBy == nil || *a.AcknowledgedBy != "user-1" {
		t.Errorf("auditoria de acknowledge incompleta: %+v", a)
	}

	if err := Resolve(&a, "user-2", "conversa feita com o gestor", now.Add(2*time.Hour)); err != nil {
		t.Fatalf("resolve falhou: %v", err)
	}
	if a.Status != entities.AlertStatusResolved || a.ResolvedBy == nil {
		t.Errorf("auditoria de resolve incompleta: %+v", a)
	}
	if len(a.Notes) != 1 {
		t.Errorf("nota de resolução não anexada: %v", a.Notes)
	}
}

func TestLifecycleRejectsInvalidTransitions(t *testing.T) {
	now := time.Now()

	a := pendingAlert(now)
	if err := Resolve(&a, "u", "", now); err != nil {
		t.Fatalf("pending → resolved deveria ser válido: %v", err)
	}

	// Estados terminais não transicionam mais
	if err := Acknowledge(&a, "u", now); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("resolved → acknowledged deveria falhar, veio %v", err)
	}
	if err := Dismiss(&a, "u", "", now); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("resolved → dismissed deveria falhar, veio %v", err)
	}
	if err := Resolve(&a, "u", "", now); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("resolved → resolved deveria falhar, veio %v", err)
	}

	// Nota pode ser anexada mesmo em status terminal
	AppendNote(&a, "u", "followup agendado", now)
	if len(a.Notes) != 1 {
		t.Errorf("nota em alerta encerrado não anexada: %v", a.Notes)
	}

	b := pendingAlert(now)
	if err := Dismiss(&b, "u", "falso positivo", now); err != nil {
		t.Fatalf("pending → dismissed deveria ser válido: %v", err)
	}
}

func TestComputeSLAStatusWindows(t *testing.T) {
	now := time.Now()
	a := pendingAlert(now) // vence em 24h

	if got := ComputeSLAStatus(a, now); got != entities.SLAOnTrack {
		t.Errorf("início do prazo: esperado on_track, veio %s", got)
	}
	if got := ComputeSLAStatus(a, a.DueAt.Add(-AtRiskWindow)); got != entities.SLAAtRisk {
		t.Errorf("2h do vencimento: esperado at_risk, veio %s", got)
	}
	if got := ComputeSLAStatus(a, a.DueAt.Add(time.Minute)); got != entities.SLABreached {
		t.Errorf("após o vencimento: esperado breached, veio %s", got)
	}
}

func TestComputeSLAStatusIsMonotonic(t *testing.T) {
	now := time.Now()
	a := pendingAlert(now)
	a.SLAStatus = entities.SLABreached

	// Uma vez estourado, nenhum sweep afrouxa o status enquanto pendente
	if got := ComputeSLAStatus(a, now); got != entities.SLABreached {
		t.Errorf("sweep afrouxou SLA estourado: %s", got)
	}
}

func TestComputeSLAStatusPausedAfterAcknowledge(t *testing.T) {
	now := time.Now()
	a := pendingAlert(now)
	if err := Acknowledge(&a, "user-1", now); err != nil {
		t.Fatal(err)
	}

	// Relógio pausado: mesmo após o vencimento o status não escala
	if got := ComputeSLAStatus(a, a.DueAt.Add(48*time.Hour)); got != entities.SLAOnTrack {
		t.Errorf("alerta assumido não escala SLA, veio %s", got)
	}
}
