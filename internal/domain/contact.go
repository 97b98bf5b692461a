package domain

import (
	"context"
	"math"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_contact_repository.go -package mocks github.com/ansolutions0125/nexmailer/internal/domain ContactRepository

// Contact is a recipient known to a customer. Engagement counters are
// lifetime totals; rates and the score are derived from them after every
// delivery event.
type Contact struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name,omitempty"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`

	Engagement Engagement `json:"engagement"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Engagement holds the per-contact delivery counters and the rates
// derived from them.
type Engagement struct {
	EmailsSent      int64 `json:"emails_sent"`
	EmailsDelivered int64 `json:"emails_delivered"`
	EmailsOpened    int64 `json:"emails_opened"`
	EmailsClicked   int64 `json:"emails_clicked"`
	EmailsFailed    int64 `json:"emails_failed"`

	OpenRate     float64 `json:"open_rate"`
	ClickRate    float64 `json:"click_rate"`
	DeliveryRate float64 `json:"delivery_rate"`
	Score        float64 `json:"score"`
}

// EngagementDelta is one delivery event applied to a contact's counters.
// Flags rather than counts: a single email is sent once, delivered once,
// opened at most once for counter purposes.
type EngagementDelta struct {
	Sent      bool
	Delivered bool
	Opened    bool
	Clicked   bool
	Failed    bool
}

// IsZero reports whether the delta carries no event at all.
func (d EngagementDelta) IsZero() bool {
	return !d.Sent && !d.Delivered && !d.Opened && !d.Clicked && !d.Failed
}

// ComputeRates recomputes the derived rates and the engagement score from
// the current counters. Each rate guards its denominator: with no emails
// sent every rate is zero. Rates are percentages rounded to two decimals,
// the score is clamped to [0, 100].
func (e *Engagement) ComputeRates() {
	e.OpenRate = ratePercent(e.EmailsOpened, e.EmailsDelivered)
	e.ClickRate = ratePercent(e.EmailsClicked, e.EmailsOpened)
	e.DeliveryRate = ratePercent(e.EmailsDelivered, e.EmailsSent)

	score := 0.4*e.OpenRate + 0.4*e.ClickRate + 0.2*e.DeliveryRate
	e.Score = math.Min(100, math.Max(0, score))
}

func ratePercent(num, den int64) float64 {
	if den <= 0 {
		return 0
	}
	return math.Round(float64(num)/float64(den)*100*100) / 100
}

// Validate checks that the contact can be persisted.
func (c *Contact) Validate() error {
	if c.CustomerID == "" {
		return NewValidationError("customer id is required")
	}
	if c.Email == "" {
		return NewValidationError("email is required")
	}
	if !govalidator.IsEmail(c.Email) {
		return NewValidationError("invalid email format")
	}
	return nil
}

type ContactRepository interface {
	// GetByEmail returns the contact for a customer, excluding
	// soft-deleted contacts. Returns *ErrNotFound when missing.
	GetByEmail(ctx context.Context, customerID, email string) (*Contact, error)

	// Upsert inserts the contact or updates its profile fields in place.
	Upsert(ctx context.Context, contact *Contact) error

	// SoftDelete marks the contact deleted without losing its history.
	SoftDelete(ctx context.Context, customerID, email string) error

	// ApplyEngagement atomically increments the contact's counters and
	// returns the resulting totals.
	ApplyEngagement(ctx context.Context, customerID, email string, delta EngagementDelta) (*Engagement, error)

	// UpdateEngagementRates persists the derived rates and score.
	UpdateEngagementRates(ctx context.Context, customerID, email string, engagement *Engagement) error
}
