package models

import (
	"time"
)

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Currency     string    `json:"currency" db:"currency"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ConsumptionEntry is a single logged usage session. Amount is always
// expressed in grams regardless of consumption method.
type ConsumptionEntry struct {
	ID                string    `json:"id" db:"id"`
	UserID            int       `json:"user_id" db:"user_id"`
	ProductName       string    `json:"product_name" db:"product_name"`
	Amount            float64   `json:"amount" db:"amount"`
	Unit              string    `json:"unit" db:"unit"`
	ConsumptionMethod string    `json:"consumption_method,omitempty" db:"consumption_method"`
	ConsumableID      *string   `json:"consumable_id,omitempty" db:"consumable_id"`
	UnitsConsumed     *float64  `json:"units_consumed,omitempty" db:"units_consumed"`
	Rating            *int      `json:"rating,omitempty" db:"rating"`
	Notes             string    `json:"notes,omitempty" db:"notes"`
	ConsumedAt        time.Time `json:"consumed_at" db:"consumed_at"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// RawProduct is bulk inventory (flower, hash). CurrentAmount depletes
// monotonically as conversions and consumption occur.
type RawProduct struct {
	ID             string    `json:"id" db:"id"`
	UserID         int       `json:"user_id" db:"user_id"`
	ProductType    string    `json:"product_type" db:"product_type"`
	StrainName     string    `json:"strain_name" db:"strain_name"`
	Source         *string   `json:"source,omitempty" db:"source"`
	QualityNotes   string    `json:"quality_notes,omitempty" db:"quality_notes"`
	THCContent     *float64  `json:"thc_content,omitempty" db:"thc_content"`
	CBDContent     *float64  `json:"cbd_content,omitempty" db:"cbd_content"`
	CurrentAmount  float64   `json:"current_amount" db:"current_amount"`
	OriginalAmount float64   `json:"original_amount" db:"original_amount"`
	Cost           *float64  `json:"cost,omitempty" db:"cost"`
	PurchaseDate   time.Time `json:"purchase_date" db:"purchase_date"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Consumable is a discrete-unit product converted from a raw product
// (joint, cartridge, edible). Quantity * GramsPerUnit is the total grams
// remaining in this consumable.
type Consumable struct {
	ID             string    `json:"id" db:"id"`
	UserID         int       `json:"user_id" db:"user_id"`
	ConsumableType string    `json:"consumable_type" db:"consumable_type"`
	Name           string    `json:"name" db:"name"`
	Quantity       int       `json:"quantity" db:"quantity"`
	GramsPerUnit   float64   `json:"grams_per_unit" db:"grams_per_unit"`
	CostPerUnit    *float64  `json:"cost_per_unit,omitempty" db:"cost_per_unit"`
	SourceStrain   *string   `json:"source_strain,omitempty" db:"source_strain"`
	THCContent     *float64  `json:"thc_content,omitempty" db:"thc_content"`
	Notes          string    `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// ToleranceTracking is one user-initiated tolerance check-in.
type ToleranceTracking struct {
	ID                  string     `json:"id" db:"id"`
	UserID              int        `json:"user_id" db:"user_id"`
	TrackingDate        time.Time  `json:"tracking_date" db:"tracking_date"`
	BaselineAmount      float64    `json:"baseline_amount" db:"baseline_amount"`
	EffectivenessRating int        `json:"effectiveness_rating" db:"effectiveness_rating"`
	ToleranceBreakStart *time.Time `json:"tolerance_break_start,omitempty" db:"tolerance_break_start"`
	ToleranceBreakEnd   *time.Time `json:"tolerance_break_end,omitempty" db:"tolerance_break_end"`
	Notes               string     `json:"notes,omitempty" db:"notes"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
}

// BudgetSettings is a singleton per user.
type BudgetSettings struct {
	ID             string    `json:"id" db:"id"`
	UserID         int       `json:"user_id" db:"user_id"`
	MonthlyBudget  float64   `json:"monthly_budget" db:"monthly_budget"`
	WeeklyBudget   *float64  `json:"weekly_budget,omitempty" db:"weekly_budget"`
	AlertThreshold float64   `json:"alert_threshold" db:"alert_threshold"`
	EmailAlerts    bool      `json:"email_alerts" db:"email_alerts"`
	PushAlerts     bool      `json:"push_alerts" db:"push_alerts"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

const (
	AlertTypeBudgetExceeded   = "budget_exceeded"
	AlertTypeMonthlyThreshold = "monthly_threshold"
	AlertTypeWeeklyThreshold  = "weekly_threshold"
)

type BudgetAlert struct {
	ID              string     `json:"id" db:"id"`
	UserID          int        `json:"user_id" db:"user_id"`
	AlertType       string     `json:"alert_type" db:"alert_type"`
	CurrentSpending float64    `json:"current_spending" db:"current_spending"`
	BudgetLimit     float64    `json:"budget_limit" db:"budget_limit"`
	PercentageUsed  float64    `json:"percentage_used" db:"percentage_used"`
	AlertDate       time.Time  `json:"alert_date" db:"alert_date"`
	Acknowledged    bool       `json:"acknowledged" db:"acknowledged"`
	AcknowledgedAt  *time.Time `json:"acknowledged_at,omitempty" db:"acknowledged_at"`
}

// MoodScores holds the six 1-10 mood scales captured before and after a
// session.
type MoodScores struct {
	Energy    int `json:"energy"`
	Happiness int `json:"happiness"`
	Stress    int `json:"stress"`
	Focus     int `json:"focus"`
	Anxiety   int `json:"anxiety"`
	Pain      int `json:"pain"`
}

// MoodTracking is created with Pre populated and Post nil ("pending"), then
// completed once via a single post-session update. It never reverts.
type MoodTracking struct {
	ID                     string      `json:"id" db:"id"`
	UserID                 int         `json:"user_id" db:"user_id"`
	ConsumptionEntryID     string      `json:"consumption_entry_id" db:"consumption_entry_id"`
	Pre                    MoodScores  `json:"pre_mood"`
	Post                   *MoodScores `json:"post_mood,omitempty"`
	EffectsOnsetMinutes    *int        `json:"effects_onset_minutes,omitempty"`
	EffectsDurationMinutes *int        `json:"effects_duration_minutes,omitempty"`
	EffectsIntensity       *int        `json:"effects_intensity,omitempty"`
	ExperienceRating       *int        `json:"experience_rating,omitempty"`
	SideEffects            []string    `json:"side_effects,omitempty"`
	Environment            string      `json:"environment,omitempty"`
	Activity               string      `json:"activity,omitempty"`
	MoodNotes              string      `json:"mood_notes,omitempty"`
	CreatedAt              time.Time   `json:"created_at"`
	UpdatedAt              time.Time   `json:"updated_at"`
}

// Complete reports whether the post-session half of the record is filled.
func (m *MoodTracking) Complete() bool {
	return m.Post != nil
}

// MoodCorrelation is a derived aggregate regenerated from complete
// MoodTracking records grouped by (strain, method). Positive deltas always
// mean improvement.
type MoodCorrelation struct {
	StrainName         string    `json:"strain_name"`
	ConsumptionMethod  string    `json:"consumption_method"`
	AvgEnergyChange    float64   `json:"avg_energy_change"`
	AvgHappinessChange float64   `json:"avg_happiness_change"`
	AvgStressChange    float64   `json:"avg_stress_change"`
	AvgFocusChange     float64   `json:"avg_focus_change"`
	AvgAnxietyChange   float64   `json:"avg_anxiety_change"`
	AvgPainChange      float64   `json:"avg_pain_change"`
	SessionsCount      int       `json:"sessions_count"`
	LastUpdated        time.Time `json:"last_updated"`
}

type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CSRFToken struct {
	Token     string    `json:"token" db:"token"`
	UserID    int       `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
