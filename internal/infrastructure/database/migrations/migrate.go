package migrations

import (
	"gorm.io/gorm"

	"github.com/atriumhr/people-risk-api/internal/domain/entities"
)

// Migrate applies the schema for the engine-owned tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.SurveyQuestion{},
		&entities.SurveyResponse{},
		&entities.EvaluationRecord{},
		&entities.Alert{},
		&entities.TenantSettings{},
	)
}

// AddIndexes adds indexes to the database to improve query performance and
// enforce the open-alert dedup invariant at the storage boundary.
func AddIndexes(db *gorm.DB) error {
	// Dedup invariant: at most one open (pending/acknowledged) alert per
	// (record, alert type). The partial unique index makes the invariant hold
	// even if two rule evaluations race past the application-level check.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_alerts_open_dedup
		ON alerts (record_id, alert_type)
		WHERE status IN ('pending', 'acknowledged')`).Error; err != nil {
		return err
	}

	// Alert dashboard filters
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_alerts_tenant_status ON alerts (tenant_id, status)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_alerts_tenant_severity ON alerts (tenant_id, severity)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_alerts_tenant_created_at ON alerts (tenant_id, created_at)").Error; err != nil {
		return err
	}

	// SLA sweep reads only pending rows
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_alerts_pending_due ON alerts (due_at) WHERE status = 'pending'").Error; err != nil {
		return err
	}

	// Submission processing lookups
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_responses_participant ON survey_responses (participant_id)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_records_participant ON evaluation_records (participant_id)").Error; err != nil {
		return err
	}

	// Sibling/pattern queries per org unit
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_records_org_unit ON evaluation_records (tenant_id, org_unit_id, record_type)").Error; err != nil {
		return err
	}

	return nil
}
