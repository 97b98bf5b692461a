package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ansolutions0125/nexmailer/pkg/crypto"
)

//go:generate mockgen -destination mocks/mock_server_repository.go -package mocks github.com/ansolutions0125/nexmailer/internal/domain ServerRepository

// ServerPreset selects the delivery transport strategy.
type ServerPreset string

const (
	ServerPresetSMTP ServerPreset = "smtp"
	ServerPresetSES  ServerPreset = "ses"
	ServerPresetAPI  ServerPreset = "api"
)

// SMTPSettings configures an SMTP relay. The password is stored
// encrypted and only decrypted in memory right before a send.
type SMTPSettings struct {
	Host              string `json:"host"`
	Port              int    `json:"port"`
	Username          string `json:"username"`
	EncryptedPassword string `json:"encrypted_password,omitempty"`
	Password          string `json:"-"`
	UseTLS            bool   `json:"use_tls"`
}

func (s *SMTPSettings) EncryptPassword(passphrase string) error {
	encrypted, err := crypto.EncryptString(s.Password, passphrase)
	if err != nil {
		return fmt.Errorf("failed to encrypt password: %w", err)
	}
	s.EncryptedPassword = encrypted
	s.Password = ""
	return nil
}

func (s *SMTPSettings) DecryptPassword(passphrase string) error {
	if s.EncryptedPassword == "" {
		return nil
	}
	password, err := crypto.DecryptString(s.EncryptedPassword, passphrase)
	if err != nil {
		return fmt.Errorf("failed to decrypt password: %w", err)
	}
	s.Password = password
	return nil
}

func (s *SMTPSettings) Validate() error {
	if s.Host == "" {
		return NewValidationError("smtp host is required")
	}
	if s.Port < 1 || s.Port > 65535 {
		return NewValidationError("smtp port must be between 1 and 65535")
	}
	return nil
}

// SESSettings configures Amazon SES.
type SESSettings struct {
	Region             string `json:"region"`
	AccessKey          string `json:"access_key"`
	EncryptedSecretKey string `json:"encrypted_secret_key,omitempty"`
	SecretKey          string `json:"-"`
}

func (s *SESSettings) EncryptSecretKey(passphrase string) error {
	encrypted, err := crypto.EncryptString(s.SecretKey, passphrase)
	if err != nil {
		return fmt.Errorf("failed to encrypt secret key: %w", err)
	}
	s.EncryptedSecretKey = encrypted
	s.SecretKey = ""
	return nil
}

func (s *SESSettings) DecryptSecretKey(passphrase string) error {
	if s.EncryptedSecretKey == "" {
		return nil
	}
	secretKey, err := crypto.DecryptString(s.EncryptedSecretKey, passphrase)
	if err != nil {
		return fmt.Errorf("failed to decrypt secret key: %w", err)
	}
	s.SecretKey = secretKey
	return nil
}

func (s *SESSettings) Validate() error {
	if s.Region == "" {
		return NewValidationError("ses region is required")
	}
	if s.AccessKey == "" {
		return NewValidationError("ses access key is required")
	}
	return nil
}

// APISettings configures a generic REST email provider. MessageIDPath
// is the JSON path of the provider message id in the response body.
type APISettings struct {
	Endpoint        string `json:"endpoint"`
	EncryptedAPIKey string `json:"encrypted_api_key,omitempty"`
	APIKey          string `json:"-"`
	MessageIDPath   string `json:"message_id_path,omitempty"`
}

func (s *APISettings) EncryptAPIKey(passphrase string) error {
	encrypted, err := crypto.EncryptString(s.APIKey, passphrase)
	if err != nil {
		return fmt.Errorf("failed to encrypt api key: %w", err)
	}
	s.EncryptedAPIKey = encrypted
	s.APIKey = ""
	return nil
}

func (s *APISettings) DecryptAPIKey(passphrase string) error {
	if s.EncryptedAPIKey == "" {
		return nil
	}
	apiKey, err := crypto.DecryptString(s.EncryptedAPIKey, passphrase)
	if err != nil {
		return fmt.Errorf("failed to decrypt api key: %w", err)
	}
	s.APIKey = apiKey
	return nil
}

func (s *APISettings) Validate() error {
	if s.Endpoint == "" {
		return NewValidationError("api endpoint is required")
	}
	return nil
}

// ServerSettings is the preset-specific transport configuration,
// stored as a JSONB column.
type ServerSettings struct {
	SMTP *SMTPSettings `json:"smtp,omitempty"`
	SES  *SESSettings  `json:"ses,omitempty"`
	API  *APISettings  `json:"api,omitempty"`
}

func (s ServerSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *ServerSettings) Scan(value interface{}) error {
	if value == nil {
		*s = ServerSettings{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type for ServerSettings: %T", value)
	}
	return json.Unmarshal(b, s)
}

// ServerStats are the per-server delivery counters.
type ServerStats struct {
	EmailsSent   int64 `json:"emails_sent"`
	EmailsFailed int64 `json:"emails_failed"`
	EmailsOpened int64 `json:"emails_opened"`
}

// ServerStatsDelta is one worker batch's contribution to a server's
// counters.
type ServerStatsDelta struct {
	EmailsSent   int64
	EmailsFailed int64
	EmailsOpened int64
}

func (d ServerStatsDelta) IsZero() bool {
	return d.EmailsSent == 0 && d.EmailsFailed == 0 && d.EmailsOpened == 0
}

// Server is a sending identity plus transport configuration.
type Server struct {
	ID         string         `json:"id"`
	CustomerID string         `json:"customer_id"`
	Name       string         `json:"name"`
	Preset     ServerPreset   `json:"preset"`
	FromEmail  string         `json:"from_email"`
	FromName   string         `json:"from_name,omitempty"`
	Settings   ServerSettings `json:"settings"`
	Stats      ServerStats    `json:"stats"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Validate checks the server and the settings of its preset.
func (s *Server) Validate() error {
	if s.CustomerID == "" {
		return NewValidationError("customer id is required")
	}
	if s.FromEmail == "" {
		return NewValidationError("from email is required")
	}
	switch s.Preset {
	case ServerPresetSMTP:
		if s.Settings.SMTP == nil {
			return NewValidationError("smtp settings are required")
		}
		return s.Settings.SMTP.Validate()
	case ServerPresetSES:
		if s.Settings.SES == nil {
			return NewValidationError("ses settings are required")
		}
		return s.Settings.SES.Validate()
	case ServerPresetAPI:
		if s.Settings.API == nil {
			return NewValidationError("api settings are required")
		}
		return s.Settings.API.Validate()
	default:
		return NewValidationError(fmt.Sprintf("unknown server preset: %s", s.Preset))
	}
}

// DecryptSecrets decrypts the preset's stored credentials in place.
func (s *Server) DecryptSecrets(passphrase string) error {
	switch s.Preset {
	case ServerPresetSMTP:
		if s.Settings.SMTP != nil {
			return s.Settings.SMTP.DecryptPassword(passphrase)
		}
	case ServerPresetSES:
		if s.Settings.SES != nil {
			return s.Settings.SES.DecryptSecretKey(passphrase)
		}
	case ServerPresetAPI:
		if s.Settings.API != nil {
			return s.Settings.API.DecryptAPIKey(passphrase)
		}
	}
	return nil
}

// Website ties a flow to the server it sends through.
type Website struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	URL        string    `json:"url,omitempty"`
	ServerID   string    `json:"server_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ServerRepository interface {
	// GetWebsiteByID returns the website, or *ErrNotFound when missing.
	GetWebsiteByID(ctx context.Context, customerID, id string) (*Website, error)

	// GetServerByID returns the server with its settings still
	// encrypted, or *ErrNotFound when missing.
	GetServerByID(ctx context.Context, customerID, id string) (*Server, error)

	// IncrementStats applies the delta to the server's counters
	// atomically.
	IncrementStats(ctx context.Context, customerID, id string, delta ServerStatsDelta) error
}
