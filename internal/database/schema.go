package database

import (
	"database/sql"
	"fmt"
)

// InitializeSchema creates the tables and indexes if they do not exist.
func InitializeSchema(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS contacts (
			id VARCHAR(36) NOT NULL,
			customer_id VARCHAR(36) NOT NULL,
			email VARCHAR(255) NOT NULL,
			full_name VARCHAR(255),
			emails_sent BIGINT NOT NULL DEFAULT 0,
			emails_delivered BIGINT NOT NULL DEFAULT 0,
			emails_opened BIGINT NOT NULL DEFAULT 0,
			emails_clicked BIGINT NOT NULL DEFAULT 0,
			emails_failed BIGINT NOT NULL DEFAULT 0,
			open_rate DECIMAL NOT NULL DEFAULT 0,
			click_rate DECIMAL NOT NULL DEFAULT 0,
			delivery_rate DECIMAL NOT NULL DEFAULT 0,
			engagement_score DECIMAL NOT NULL DEFAULT 0,
			deleted_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (customer_id, email)
		)`,
		`CREATE TABLE IF NOT EXISTS lists (
			id VARCHAR(32) NOT NULL,
			customer_id VARCHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (customer_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS contact_lists (
			customer_id VARCHAR(36) NOT NULL,
			email VARCHAR(255) NOT NULL,
			list_id VARCHAR(32) NOT NULL,
			status VARCHAR(20) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted_at TIMESTAMP,
			PRIMARY KEY (customer_id, email, list_id)
		)`,
		`CREATE TABLE IF NOT EXISTS templates (
			id VARCHAR(36) NOT NULL,
			customer_id VARCHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			subject VARCHAR(255) NOT NULL DEFAULT '',
			html_body TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (customer_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS servers (
			id VARCHAR(36) NOT NULL,
			customer_id VARCHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			preset VARCHAR(20) NOT NULL,
			from_email VARCHAR(255) NOT NULL,
			from_name VARCHAR(255),
			settings JSONB NOT NULL DEFAULT '{}',
			emails_sent BIGINT NOT NULL DEFAULT 0,
			emails_failed BIGINT NOT NULL DEFAULT 0,
			emails_opened BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (customer_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS websites (
			id VARCHAR(36) NOT NULL,
			customer_id VARCHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			url VARCHAR(512),
			server_id VARCHAR(36) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (customer_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS flows (
			id VARCHAR(36) NOT NULL,
			customer_id VARCHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			list_id VARCHAR(32),
			website_id VARCHAR(36) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			steps JSONB NOT NULL DEFAULT '[]',
			emails_sent BIGINT NOT NULL DEFAULT 0,
			webhooks_sent BIGINT NOT NULL DEFAULT 0,
			users_processed BIGINT NOT NULL DEFAULT 0,
			last_processed_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (customer_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS flow_associations (
			id VARCHAR(36) PRIMARY KEY,
			customer_id VARCHAR(36) NOT NULL,
			contact_email VARCHAR(255) NOT NULL,
			flow_id VARCHAR(36) NOT NULL,
			list_id VARCHAR(32),
			current_step INTEGER NOT NULL DEFAULT 1,
			next_step_at TIMESTAMP NOT NULL,
			started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (customer_id, contact_email, flow_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_flow_associations_due
			ON flow_associations (next_step_at)`,
		`CREATE TABLE IF NOT EXISTS flow_history (
			id VARCHAR(36) PRIMARY KEY,
			customer_id VARCHAR(36) NOT NULL,
			contact_email VARCHAR(255) NOT NULL,
			flow_id VARCHAR(36) NOT NULL,
			list_id VARCHAR(32),
			status VARCHAR(20) NOT NULL,
			steps_completed INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			started_at TIMESTAMP NOT NULL,
			completed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_flow_history_contact
			ON flow_history (customer_id, contact_email)`,
		`CREATE TABLE IF NOT EXISTS email_queue (
			id VARCHAR(36) PRIMARY KEY,
			customer_id VARCHAR(36) NOT NULL,
			contact_email VARCHAR(255) NOT NULL,
			flow_id VARCHAR(36) NOT NULL,
			list_id VARCHAR(32),
			step_count INTEGER NOT NULL DEFAULT 0,
			template_id VARCHAR(36) NOT NULL,
			subject VARCHAR(255) NOT NULL DEFAULT '',
			variables JSONB NOT NULL DEFAULT '{}',
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			attempts INTEGER NOT NULL DEFAULT 0,
			max_attempts INTEGER NOT NULL DEFAULT 3,
			next_attempt TIMESTAMP,
			last_attempt TIMESTAMP,
			last_error TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_email_queue_due
			ON email_queue (status, next_attempt, created_at)`,
		`CREATE TABLE IF NOT EXISTS email_logs (
			id VARCHAR(36) PRIMARY KEY,
			customer_id VARCHAR(36) NOT NULL,
			queue_id VARCHAR(36),
			contact_email VARCHAR(255) NOT NULL,
			flow_id VARCHAR(36),
			template_id VARCHAR(36),
			server_id VARCHAR(36),
			subject VARCHAR(255) NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'processing',
			provider_message_id VARCHAR(255),
			error TEXT,
			open_count INTEGER NOT NULL DEFAULT 0,
			max_opens INTEGER NOT NULL DEFAULT 5,
			first_opened_at TIMESTAMP,
			last_opened_at TIMESTAMP,
			click_count INTEGER NOT NULL DEFAULT 0,
			first_clicked_at TIMESTAMP,
			sent_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_email_logs_contact
			ON email_logs (customer_id, contact_email)`,
		`CREATE TABLE IF NOT EXISTS global_stats (
			id INTEGER PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			emails_sent BIGINT NOT NULL DEFAULT 0,
			emails_failed BIGINT NOT NULL DEFAULT 0,
			emails_opened BIGINT NOT NULL DEFAULT 0,
			webhooks_sent BIGINT NOT NULL DEFAULT 0,
			subscribers_moved BIGINT NOT NULL DEFAULT 0,
			subscribers_removed BIGINT NOT NULL DEFAULT 0,
			subscribers_deleted BIGINT NOT NULL DEFAULT 0,
			automations_advanced BIGINT NOT NULL DEFAULT 0,
			automations_finished BIGINT NOT NULL DEFAULT 0,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`INSERT INTO global_stats (id) VALUES (1) ON CONFLICT (id) DO NOTHING`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return nil
}
