package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/atriumhr/people-risk-api/internal/domain/config"
	"github.com/atriumhr/people-risk-api/internal/domain/entities"
	"github.com/atriumhr/people-risk-api/internal/infrastructure/cache"
)

// settingsCacheTTL limita quanto tempo uma configuração validada fica em
// memória antes de ser relida do banco.
const settingsCacheTTL = 5 * time.Minute

// SettingsRepository resolve a configuração de classificação e o catálogo de
// regras de um tenant, com fallback para os padrões embutidos e cache em
// memória das configurações já validadas.
type SettingsRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewSettingsRepository cria uma nova instância de SettingsRepository
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{
		db:    db,
		cache: cache.New(),
	}
}

// GetTenantConfig retorna a configuração validada de um tenant. Tenant sem
// linha própria usa os padrões embutidos; configuração malformada é rejeitada
// aqui, antes de qualquer registro ser processado.
func (r *SettingsRepository) GetTenantConfig(tenantID string) (config.TenantConfig, error) {
	if cached, found := r.cache.Get(tenantID); found {
		return cached.(config.TenantConfig), nil
	}

	var settings entities.TenantSettings
	err := r.db.Where("tenant_id = ?", tenantID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cfg := config.TenantConfig{
				Classification: config.DefaultClassification(),
				Catalog:        config.DefaultRuleCatalog(),
			}
			r.cache.Set(tenantID, cfg, settingsCacheTTL)
			return cfg, nil
		}
		return config.TenantConfig{}, fmt.Errorf("erro ao buscar configuração do tenant %s: %w", tenantID, err)
	}

	cfg, err := config.FromSettings(settings)
	if err != nil {
		return config.TenantConfig{}, err
	}
	r.cache.Set(tenantID, cfg, settingsCacheTTL)
	return cfg, nil
}
