package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/atriumhr/people-risk-api/internal/domain/entities"
)

// ErrAlreadyScored indica que o registro já tinha índice composto gravado:
// a escrita condicional perdeu a corrida para outra invocação.
var ErrAlreadyScored = errors.New("registro já pontuado")

// RecordRepository implementa o acesso a registros de avaliação
type RecordRepository struct {
	db *gorm.DB
}

// NewRecordRepository cria uma nova instância de RecordRepository
func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// GetByParticipant retorna o registro de avaliação dono de um participante
func (r *RecordRepository) GetByParticipant(participantID string) (*entities.EvaluationRecord, error) {
	var record entities.EvaluationRecord
	err := r.db.Where("participant_id = ?", participantID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar registro do participante %s: %w", participantID, err)
	}
	return &record, nil
}

// GetScoredSiblings retorna os registros irmãos já pontuados do mesmo
// tenant/unidade/tipo, para a detecção de padrões entre registros.
func (r *RecordRepository) GetScoredSiblings(tenantID, orgUnitID, recordType, excludeID string) ([]entities.EvaluationRecord, error) {
	var siblings []entities.EvaluationRecord
	err := r.db.
		Where("tenant_id = ? AND org_unit_id = ? AND record_type = ?", tenantID, orgUnitID, recordType).
		Where("processed_at IS NOT NULL").
		Where("id <> ?", excludeID).
		Find(&siblings).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar registros irmãos: %w", err)
	}
	return siblings, nil
}

// GetScoredByOrgUnit retorna todos os registros pontuados de um recorte
// tenant/unidade/tipo, para as projeções de insight.
func (r *RecordRepository) GetScoredByOrgUnit(tenantID, orgUnitID, recordType string) ([]entities.EvaluationRecord, error) {
	var records []entities.EvaluationRecord
	query := r.db.
		Where("tenant_id = ? AND record_type = ?", tenantID, recordType).
		Where("processed_at IS NOT NULL")
	if orgUnitID != "" {
		query = query.Where("org_unit_id = ?", orgUnitID)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("erro ao buscar registros pontuados: %w", err)
	}
	return records, nil
}

// ApplyScoring persiste os campos calculados do registro e os novos alertas
// em uma única transação. A atualização do registro é condicional
// (composite_index IS NULL): uma segunda invocação concorrente não afeta
// nenhuma linha e recebe ErrAlreadyScored, sem gravar alertas parciais —
// falha parcial nunca deixa o registro "meio pontuado".
func (r *RecordRepository) ApplyScoring(record *entities.EvaluationRecord, newAlerts []entities.Alert) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		res := tx.Model(&entities.EvaluationRecord{}).
			Where("id = ? AND composite_index IS NULL AND processed_at IS NULL", record.ID).
			Updates(map[string]interface{}{
				"composite_index":  record.CompositeIndex,
				"classification":   record.Classification,
				"factors":          record.Factors,
				"factor_severity":  record.FactorSeverity,
				"compliance_flags": record.ComplianceFlags,
				"processed_at":     now,
				"updated_at":       now,
			})
		if res.Error != nil {
			return fmt.Errorf("erro ao gravar pontuação do registro %s: %w", record.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyScored
		}
		record.ProcessedAt = &now
		record.UpdatedAt = now

		for i := range newAlerts {
			if err := tx.Create(&newAlerts[i]).Error; err != nil {
				return fmt.Errorf("erro ao criar alerta %s: %w", newAlerts[i].AlertType, err)
			}
		}
		return nil
	})
}
