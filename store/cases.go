package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Fraud case statuses.
const (
	StatusPendingReview      = "pending_review"
	StatusConfirmedSafe      = "confirmed_safe"
	StatusConfirmedFraud     = "confirmed_fraud"
	StatusVerificationFailed = "verification_failed"
)

// FraudCase is one flagged transaction awaiting customer confirmation.
// Cases are pre-seeded, looked up by customer name, and mutated in place;
// they are never created by a conversation and never deleted.
type FraudCase struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserName            string    `gorm:"not null" json:"userName"`
	SecurityIdentifier  string    `gorm:"not null" json:"securityIdentifier"`
	SecurityQuestion    string    `gorm:"not null" json:"securityQuestion"`
	SecurityAnswer      string    `gorm:"not null" json:"securityAnswer"`
	CardEnding          string    `gorm:"not null" json:"cardEnding"`
	Status              string    `gorm:"default:pending_review" json:"status"`
	TransactionName     string    `gorm:"not null" json:"transactionName"`
	TransactionAmount   float64   `gorm:"not null" json:"transactionAmount"`
	TransactionTime     string    `gorm:"not null" json:"transactionTime"`
	TransactionCategory string    `gorm:"not null" json:"transactionCategory"`
	TransactionSource   string    `gorm:"not null" json:"transactionSource"`
	TransactionLocation string    `gorm:"not null" json:"transactionLocation"`
	Outcome             string    `json:"outcome"`
	Verified            bool      `json:"verified"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// TableName keeps the table name the rest of the tooling expects.
func (FraudCase) TableName() string { return "fraud_cases" }

// CaseStore reads and updates fraud cases in a relational table.
type CaseStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCaseStore migrates the fraud_cases table and seeds the sample cases
// when the table is empty.
func NewCaseStore(db *gorm.DB, logger *zap.Logger) (*CaseStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := db.AutoMigrate(&FraudCase{}); err != nil {
		return nil, fmt.Errorf("migrate fraud_cases: %w", err)
	}

	s := &CaseStore{
		db:     db,
		logger: logger.With(zap.String("component", "case_store")),
	}
	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CaseStore) seed() error {
	var count int64
	if err := s.db.Model(&FraudCase{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count fraud_cases: %w", err)
	}
	if count > 0 {
		return nil
	}

	cases := SampleCases()
	for i := range cases {
		if err := s.db.Create(&cases[i]).Error; err != nil {
			return fmt.Errorf("seed case for %s: %w", cases[i].UserName, err)
		}
	}
	s.logger.Info("seeded fraud cases", zap.Int("count", len(cases)))
	return nil
}

// PendingCaseByName returns the most recently created pending case for a
// customer, matched case-insensitively on the exact name. Returns
// gorm.ErrRecordNotFound when no pending case exists.
func (s *CaseStore) PendingCaseByName(ctx context.Context, name string) (*FraudCase, error) {
	var c FraudCase
	err := s.db.WithContext(ctx).
		Where("LOWER(user_name) = LOWER(?)", name).
		Where("status = ?", StatusPendingReview).
		Order("created_at DESC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateStatus performs the single status-transition operation on a case,
// stamping updated_at.
func (s *CaseStore) UpdateStatus(ctx context.Context, id uint, status, outcome string, verified bool) error {
	res := s.db.WithContext(ctx).Model(&FraudCase{}).Where("id = ?", id).Updates(map[string]any{
		"status":     status,
		"outcome":    outcome,
		"verified":   verified,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return fmt.Errorf("update case %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.logger.Info("case status updated",
		zap.Uint("case_id", id),
		zap.String("status", status),
		zap.Bool("verified", verified),
	)
	return nil
}

// CaseByID fetches one case by primary key.
func (s *CaseStore) CaseByID(ctx context.Context, id uint) (*FraudCase, error) {
	var c FraudCase
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// PendingCases lists every case still awaiting review, newest first.
func (s *CaseStore) PendingCases(ctx context.Context) ([]FraudCase, error) {
	var cases []FraudCase
	err := s.db.WithContext(ctx).
		Where("status = ?", StatusPendingReview).
		Order("created_at DESC").
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

// AllCases lists every case, most recently touched first. Used by the admin
// listing command.
func (s *CaseStore) AllCases(ctx context.Context) ([]FraudCase, error) {
	var cases []FraudCase
	if err := s.db.WithContext(ctx).Order("updated_at DESC").Find(&cases).Error; err != nil {
		return nil, err
	}
	return cases, nil
}

// SampleCases returns the pre-seeded review queue used by the demo.
func SampleCases() []FraudCase {
	return []FraudCase{
		{
			UserName:            "John Doe",
			SecurityIdentifier:  "JD12345",
			SecurityQuestion:    "What is your mother's maiden name?",
			SecurityAnswer:      "Smith",
			CardEnding:          "4242",
			Status:              StatusPendingReview,
			TransactionName:     "ABC Electronics Ltd",
			TransactionAmount:   15999.00,
			TransactionTime:     "2025-11-27 02:30:00",
			TransactionCategory: "Electronics",
			TransactionSource:   "alibaba.com",
			TransactionLocation: "Shanghai, China",
		},
		{
			UserName:            "Priya Sharma",
			SecurityIdentifier:  "PS67890",
			SecurityQuestion:    "What city were you born in?",
			SecurityAnswer:      "Mumbai",
			CardEnding:          "8765",
			Status:              StatusPendingReview,
			TransactionName:     "Luxury Fashion Store",
			TransactionAmount:   45000.00,
			TransactionTime:     "2025-11-27 03:15:00",
			TransactionCategory: "Fashion",
			TransactionSource:   "luxuryboutique.eu",
			TransactionLocation: "Paris, France",
		},
		{
			UserName:            "Raj Kumar",
			SecurityIdentifier:  "RK45678",
			SecurityQuestion:    "What is your favorite color?",
			SecurityAnswer:      "Blue",
			CardEnding:          "3456",
			Status:              StatusPendingReview,
			TransactionName:     "Tech Gadgets International",
			TransactionAmount:   28500.00,
			TransactionTime:     "2025-11-26 23:45:00",
			TransactionCategory: "Electronics",
			TransactionSource:   "techgadgets.cn",
			TransactionLocation: "Shenzhen, China",
		},
		{
			UserName:            "Ananya Patel",
			SecurityIdentifier:  "AP98765",
			SecurityQuestion:    "What is your pet's name?",
			SecurityAnswer:      "Max",
			CardEnding:          "7890",
			Status:              StatusPendingReview,
			TransactionName:     "Online Gaming Platform",
			TransactionAmount:   12000.00,
			TransactionTime:     "2025-11-27 01:00:00",
			TransactionCategory: "Gaming",
			TransactionSource:   "gamepro.io",
			TransactionLocation: "Singapore",
		},
	}
}
