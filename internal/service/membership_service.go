package service

import (
	"github.com/shopspring/decimal"

	"github.com/pasarlink/pasar-api/internal/pricing"
	"github.com/pasarlink/pasar-api/internal/repository"
)

// MembershipService reports membership status and manages the admin-tunable
// membership and receipt settings.
type MembershipService struct {
	userRepo     *repository.UserRepository
	settingsRepo *repository.SettingsRepository
}

// NewMembershipService constructs a new MembershipService.
func NewMembershipService(userRepo *repository.UserRepository, settingsRepo *repository.SettingsRepository) *MembershipService {
	return &MembershipService{userRepo: userRepo, settingsRepo: settingsRepo}
}

// MembershipStatus is the customer-facing membership summary.
type MembershipStatus struct {
	IsMember     bool            `json:"isMember"`
	MemberSince  *string         `json:"memberSince,omitempty"`
	Accumulated  decimal.Decimal `json:"accumulated"`
	Threshold    decimal.Decimal `json:"threshold"`
	Progress     int             `json:"progress"`
	AmountNeeded decimal.Decimal `json:"amountNeeded"`
}

// GetStatus returns the user's lifetime accrual measured against the current
// threshold. Members report full progress regardless of the configured value.
func (s *MembershipService) GetStatus(userID int) (*MembershipStatus, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.settingsRepo.GetMembershipConfig()
	if err != nil {
		return nil, err
	}

	status := &MembershipStatus{
		IsMember:    user.IsMember,
		Accumulated: user.MembershipTotal,
		Threshold:   cfg.Threshold,
	}
	if user.MemberSince != nil {
		formatted := user.MemberSince.Format("2006-01-02")
		status.MemberSince = &formatted
	}

	if user.IsMember {
		status.Progress = 100
		status.AmountNeeded = decimal.Zero
		return status, nil
	}

	status.AmountNeeded = cfg.Threshold.Sub(user.MembershipTotal)
	if status.AmountNeeded.IsNegative() {
		status.AmountNeeded = decimal.Zero
	}
	status.Progress = progressPercent(user.MembershipTotal, cfg.Threshold)
	return status, nil
}

// GetConfig returns the current membership settings.
func (s *MembershipService) GetConfig() (pricing.MembershipConfig, error) {
	return s.settingsRepo.GetMembershipConfig()
}

// UpdateConfig saves new membership settings. Existing members are never
// demoted by a threshold increase.
func (s *MembershipService) UpdateConfig(cfg pricing.MembershipConfig) error {
	if cfg.Threshold.IsNegative() {
		cfg.Threshold = decimal.Zero
	}
	return s.settingsRepo.SaveMembershipConfig(cfg)
}

// GetReceiptFooter returns the configurable receipt footer text.
func (s *MembershipService) GetReceiptFooter() (string, error) {
	return s.settingsRepo.Get(repository.SettingReceiptFooter, "")
}

// SetReceiptFooter updates the receipt footer text.
func (s *MembershipService) SetReceiptFooter(text string) error {
	return s.settingsRepo.Set(repository.SettingReceiptFooter, text)
}

// progressPercent mirrors the cart aggregation's rounding and clamping.
func progressPercent(accumulated, threshold decimal.Decimal) int {
	if !threshold.IsPositive() {
		return 100
	}
	pct := accumulated.Div(threshold).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}
