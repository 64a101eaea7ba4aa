package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/atriumhr/people-risk-api/internal/domain/entities"
)

// AlertRepository implementa o acesso a alertas
type AlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository cria uma nova instância de AlertRepository
func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// GetByID retorna um alerta pelo identificador, escopado ao tenant
func (r *AlertRepository) GetByID(tenantID, alertID string) (*entities.Alert, error) {
	var alert entities.Alert
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, alertID).First(&alert).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar alerta %s: %w", alertID, err)
	}
	return &alert, nil
}

// GetOpenByRecord retorna os alertas não terminais de um registro, usados
// pela verificação de deduplicação do motor de regras.
func (r *AlertRepository) GetOpenByRecord(recordID string) ([]entities.Alert, error) {
	var alerts []entities.Alert
	err := r.db.
		Where("record_id = ? AND status IN ?", recordID,
			[]string{entities.AlertStatusPending, entities.AlertStatusAcknowledged}).
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar alertas abertos do registro %s: %w", recordID, err)
	}
	return alerts, nil
}

// GetByTenant retorna os alertas de um tenant com filtros, ordenação e
// paginação opcionais.
func (r *AlertRepository) GetByTenant(tenantID string, params map[string]interface{}) ([]entities.Alert, int64, error) {
	var alerts []entities.Alert
	var total int64

	query := r.db.Model(&entities.Alert{}).Where("tenant_id = ?", tenantID)

	// Aplicando filtros
	if status, ok := params["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if severity, ok := params["severity"].(string); ok && severity != "" {
		query = query.Where("severity = ?", severity)
	}
	if slaStatus, ok := params["sla_status"].(string); ok && slaStatus != "" {
		query = query.Where("sla_status = ?", slaStatus)
	}
	if orgUnitID, ok := params["org_unit_id"].(string); ok && orgUnitID != "" {
		query = query.Where("org_unit_id = ?", orgUnitID)
	}
	if alertType, ok := params["alert_type"].(string); ok && alertType != "" {
		query = query.Where("alert_type = ?", alertType)
	}
	if from, ok := params["created_from"].(time.Time); ok && !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if to, ok := params["created_to"].(time.Time); ok && !to.IsZero() {
		query = query.Where("created_at <= ?", to)
	}

	// Contar total de registros antes da paginação
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("erro ao contar alertas: %w", err)
	}

	// Aplicar ordenação
	sortBy, _ := params["sort_by"].(string)
	sortDirection, _ := params["sort_direction"].(string)
	if !allowedAlertSort[sortBy] {
		sortBy = "created_at"
	}
	if sortDirection != "asc" && sortDirection != "desc" {
		sortDirection = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortDirection))

	// Aplicar paginação
	page, _ := params["page"].(int)
	limit, _ := params["limit"].(int)
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	query = query.Offset((page - 1) * limit).Limit(limit)

	if err := query.Find(&alerts).Error; err != nil {
		return nil, 0, fmt.Errorf("erro ao buscar alertas: %w", err)
	}
	return alerts, total, nil
}

// allowedAlertSort evita interpolação de colunas arbitrárias no ORDER BY
var allowedAlertSort = map[string]bool{
	"created_at": true,
	"due_at":     true,
	"severity":   true,
	"status":     true,
}

// AlertStatistics são as contagens agregadas consumidas pelo dashboard
type AlertStatistics struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	BySeverity map[string]int64 `json:"by_severity"`
	BySLA      map[string]int64 `json:"by_sla_status"`
}

// GetStatistics retorna contagens por status, severidade e estado de SLA.
// Projeção pura de leitura, sem lógica de negócio além da agregação.
func (r *AlertRepository) GetStatistics(tenantID string) (*AlertStatistics, error) {
	stats := &AlertStatistics{
		ByStatus:   make(map[string]int64),
		BySeverity: make(map[string]int64),
		BySLA:      make(map[string]int64),
	}

	type row struct {
		Key   string
		Count int64
	}

	groupings := []struct {
		column string
		dest   map[string]int64
	}{
		{"status", stats.ByStatus},
		{"severity", stats.BySeverity},
		{"sla_status", stats.BySLA},
	}

	for _, g := range groupings {
		var rows []row
		err := r.db.Model(&entities.Alert{}).
			Select(g.column+" AS key, COUNT(*) AS count").
			Where("tenant_id = ?", tenantID).
			Group(g.column).
			Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("erro ao agregar alertas por %s: %w", g.column, err)
		}
		for _, rw := range rows {
			g.dest[rw.Key] = rw.Count
		}
	}

	for _, c := range stats.ByStatus {
		stats.Total += c
	}
	return stats, nil
}

// GetPendingForSweep retorna os alertas pendentes para o sweep de SLA.
// O sweep só lê pendentes: acknowledged tem o relógio pausado.
func (r *AlertRepository) GetPendingForSweep() ([]entities.Alert, error) {
	var alerts []entities.Alert
	err := r.db.
		Where("status = ?", entities.AlertStatusPending).
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar alertas pendentes para o sweep: %w", err)
	}
	return alerts, nil
}

// UpdateSLAStatus grava o status de SLA recalculado de um alerta ainda
// pendente. A cláusula de status evita corrida com uma transição concorrente:
// se o alerta acabou de ser assumido, o sweep não escreve nada.
func (r *AlertRepository) UpdateSLAStatus(alertID, slaStatus string) error {
	err := r.db.Model(&entities.Alert{}).
		Where("id = ? AND status = ?", alertID, entities.AlertStatusPending).
		Updates(map[string]interface{}{
			"sla_status": slaStatus,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("erro ao atualizar SLA do alerta %s: %w", alertID, err)
	}
	return nil
}

// Save persiste as mutações de uma transição de ciclo de vida
func (r *AlertRepository) Save(alert *entities.Alert) error {
	if err := r.db.Save(alert).Error; err != nil {
		return fmt.Errorf("erro ao salvar alerta %s: %w", alert.ID, err)
	}
	return nil
}
