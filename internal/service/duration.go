package service

import (
	"fmt"
	"time"

	"github.com/ansolutions0125/nexmailer/internal/domain"
)

// StepDelay converts a wait step's (value, unit) pair into a duration.
// Supported units are minutes, hours, days and weeks; a day is exactly
// 24 hours regardless of DST.
func StepDelay(value int, unit string) (time.Duration, error) {
	if value <= 0 {
		return 0, domain.NewValidationError(fmt.Sprintf("wait duration must be positive, got %d", value))
	}

	switch unit {
	case "minutes":
		return time.Duration(value) * time.Minute, nil
	case "hours":
		return time.Duration(value) * time.Hour, nil
	case "days":
		return time.Duration(value) * 24 * time.Hour, nil
	case "weeks":
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	default:
		return 0, domain.NewValidationError(fmt.Sprintf("unknown wait unit: %s", unit))
	}
}
