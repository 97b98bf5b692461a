package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ansolutions0125/nexmailer/internal/domain"
	"github.com/ansolutions0125/nexmailer/internal/domain/mocks"
	"github.com/ansolutions0125/nexmailer/pkg/logger"
)

func TestEngagementService_UpdateEngagement(t *testing.T) {
	ctx := context.Background()

	t.Run("applies the delta and recomputes rates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		contactRepo := mocks.NewMockContactRepository(ctrl)
		service := NewEngagementService(contactRepo, logger.NewTestLogger(t))

		delta := domain.EngagementDelta{Sent: true, Delivered: true}
		contactRepo.EXPECT().ApplyEngagement(ctx, "cust1", "jane@example.com", delta).Return(&domain.Engagement{
			EmailsSent:      10,
			EmailsDelivered: 8,
			EmailsOpened:    4,
			EmailsClicked:   1,
		}, nil)

		var persisted *domain.Engagement
		contactRepo.EXPECT().UpdateEngagementRates(ctx, "cust1", "jane@example.com", gomock.Any()).DoAndReturn(
			func(_ context.Context, _, _ string, engagement *domain.Engagement) error {
				persisted = engagement
				return nil
			})

		engagement, err := service.UpdateEngagement(ctx, "cust1", "jane@example.com", delta)
		require.NoError(t, err)
		require.NotNil(t, engagement)

		assert.Equal(t, 50.0, engagement.OpenRate)
		assert.Equal(t, 25.0, engagement.ClickRate)
		assert.Equal(t, 80.0, engagement.DeliveryRate)
		assert.Equal(t, 46.0, engagement.Score)
		assert.Same(t, engagement, persisted)
	})

	t.Run("zero delta is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		contactRepo := mocks.NewMockContactRepository(ctrl)
		service := NewEngagementService(contactRepo, logger.NewTestLogger(t))

		engagement, err := service.UpdateEngagement(ctx, "cust1", "jane@example.com", domain.EngagementDelta{})
		assert.NoError(t, err)
		assert.Nil(t, engagement)
	})

	t.Run("apply failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		contactRepo := mocks.NewMockContactRepository(ctrl)
		service := NewEngagementService(contactRepo, logger.NewTestLogger(t))

		delta := domain.EngagementDelta{Opened: true}
		contactRepo.EXPECT().ApplyEngagement(ctx, "cust1", "jane@example.com", delta).
			Return(nil, errors.New("db down"))

		_, err := service.UpdateEngagement(ctx, "cust1", "jane@example.com", delta)
		assert.Error(t, err)
	})

	t.Run("rate persistence failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		contactRepo := mocks.NewMockContactRepository(ctrl)
		service := NewEngagementService(contactRepo, logger.NewTestLogger(t))

		delta := domain.EngagementDelta{Clicked: true}
		contactRepo.EXPECT().ApplyEngagement(ctx, "cust1", "jane@example.com", delta).
			Return(&domain.Engagement{EmailsSent: 1, EmailsDelivered: 1, EmailsClicked: 1}, nil)
		contactRepo.EXPECT().UpdateEngagementRates(ctx, "cust1", "jane@example.com", gomock.Any()).
			Return(errors.New("db down"))

		_, err := service.UpdateEngagement(ctx, "cust1", "jane@example.com", delta)
		assert.Error(t, err)
	})
}
