package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ansolutions0125/nexmailer/internal/domain"
)

func TestStepDelay(t *testing.T) {
	t.Run("minutes", func(t *testing.T) {
		d, err := StepDelay(30, "minutes")
		assert.NoError(t, err)
		assert.Equal(t, 30*time.Minute, d)
	})

	t.Run("hours", func(t *testing.T) {
		d, err := StepDelay(2, "hours")
		assert.NoError(t, err)
		assert.Equal(t, 2*time.Hour, d)
	})

	t.Run("days are exactly 24 hours", func(t *testing.T) {
		d, err := StepDelay(1, "days")
		assert.NoError(t, err)
		assert.Equal(t, 24*time.Hour, d)
	})

	t.Run("weeks", func(t *testing.T) {
		d, err := StepDelay(2, "weeks")
		assert.NoError(t, err)
		assert.Equal(t, 14*24*time.Hour, d)
	})

	t.Run("zero duration", func(t *testing.T) {
		_, err := StepDelay(0, "minutes")
		assert.Error(t, err)
		assert.IsType(t, &domain.ValidationError{}, err)
	})

	t.Run("negative duration", func(t *testing.T) {
		_, err := StepDelay(-5, "hours")
		assert.Error(t, err)
	})

	t.Run("unknown unit", func(t *testing.T) {
		_, err := StepDelay(1, "fortnights")
		assert.Error(t, err)
		assert.IsType(t, &domain.ValidationError{}, err)
	})
}
