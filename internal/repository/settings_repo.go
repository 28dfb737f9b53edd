package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/pasarlink/pasar-api/internal/pricing"
)

// Setting keys stored in the key-value settings table.
const (
	SettingMembershipThreshold = "membership_threshold"
	SettingExcludePromotional  = "membership_exclude_promotional"
	SettingRequireQualifying   = "membership_require_qualifying"
	SettingReceiptFooter       = "receipt_footer"
)

// SettingsRepository handles the key-value platform settings table.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the value for a key, or fallback when the key is absent.
func (r *SettingsRepository) Get(key, fallback string) (string, error) {
	var value string
	err := r.db.Get(&value, `SELECT value FROM settings WHERE key = $1 LIMIT 1`, key)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set upserts a key-value pair.
func (r *SettingsRepository) Set(key, value string) error {
	const q = `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	_, err := r.db.Exec(q, key, value)
	return err
}

// GetMembershipConfig assembles the pricing config from stored settings.
// Missing keys fall back to the defaults.
func (r *SettingsRepository) GetMembershipConfig() (pricing.MembershipConfig, error) {
	cfg := pricing.DefaultMembershipConfig()

	raw, err := r.Get(SettingMembershipThreshold, cfg.Threshold.String())
	if err != nil {
		return cfg, err
	}
	if threshold, err := decimal.NewFromString(raw); err == nil {
		cfg.Threshold = threshold
	}

	excl, err := r.Get(SettingExcludePromotional, boolString(cfg.ExcludePromotional))
	if err != nil {
		return cfg, err
	}
	cfg.ExcludePromotional = excl == "true"

	req, err := r.Get(SettingRequireQualifying, boolString(cfg.RequireQualifying))
	if err != nil {
		return cfg, err
	}
	cfg.RequireQualifying = req == "true"

	return cfg, nil
}

// SaveMembershipConfig persists the pricing config to the settings table.
func (r *SettingsRepository) SaveMembershipConfig(cfg pricing.MembershipConfig) error {
	if err := r.Set(SettingMembershipThreshold, cfg.Threshold.String()); err != nil {
		return err
	}
	if err := r.Set(SettingExcludePromotional, boolString(cfg.ExcludePromotional)); err != nil {
		return err
	}
	return r.Set(SettingRequireQualifying, boolString(cfg.RequireQualifying))
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
