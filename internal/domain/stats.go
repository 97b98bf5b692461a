package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_stats_repository.go -package mocks github.com/ansolutions0125/nexmailer/internal/domain StatsRepository

// GlobalStats is the system-wide counter singleton, maintained by
// incremental updates only.
type GlobalStats struct {
	EmailsSent          int64      `json:"emails_sent"`
	EmailsFailed        int64      `json:"emails_failed"`
	EmailsOpened        int64      `json:"emails_opened"`
	WebhooksSent        int64      `json:"webhooks_sent"`
	SubscribersMoved    int64      `json:"subscribers_moved"`
	SubscribersRemoved  int64      `json:"subscribers_removed"`
	SubscribersDeleted  int64      `json:"subscribers_deleted"`
	AutomationsAdvanced int64      `json:"automations_advanced"`
	AutomationsFinished int64      `json:"automations_finished"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// GlobalStatsDelta is one batch's contribution to the global counters.
type GlobalStatsDelta struct {
	EmailsSent          int64
	EmailsFailed        int64
	EmailsOpened        int64
	WebhooksSent        int64
	SubscribersMoved    int64
	SubscribersRemoved  int64
	SubscribersDeleted  int64
	AutomationsAdvanced int64
	AutomationsFinished int64
}

func (d GlobalStatsDelta) IsZero() bool {
	return d == GlobalStatsDelta{}
}

// Add merges another delta into this one.
func (d *GlobalStatsDelta) Add(other GlobalStatsDelta) {
	d.EmailsSent += other.EmailsSent
	d.EmailsFailed += other.EmailsFailed
	d.EmailsOpened += other.EmailsOpened
	d.WebhooksSent += other.WebhooksSent
	d.SubscribersMoved += other.SubscribersMoved
	d.SubscribersRemoved += other.SubscribersRemoved
	d.SubscribersDeleted += other.SubscribersDeleted
	d.AutomationsAdvanced += other.AutomationsAdvanced
	d.AutomationsFinished += other.AutomationsFinished
}

type StatsRepository interface {
	// IncrementGlobal applies the delta to the singleton row atomically.
	IncrementGlobal(ctx context.Context, delta GlobalStatsDelta) error

	// GetGlobal returns the current totals.
	GetGlobal(ctx context.Context) (*GlobalStats, error)
}
