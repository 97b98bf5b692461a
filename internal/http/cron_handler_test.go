package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ansolutions0125/nexmailer/internal/domain"
	"github.com/ansolutions0125/nexmailer/internal/domain/mocks"
	"github.com/ansolutions0125/nexmailer/internal/service"
	"github.com/ansolutions0125/nexmailer/pkg/logger"
)

type cronFixture struct {
	assocRepo *mocks.MockAssociationRepository
	queueRepo *mocks.MockEmailQueueRepository
	mux       *http.ServeMux
}

func newCronFixture(t *testing.T, ctrl *gomock.Controller) *cronFixture {
	f := &cronFixture{
		assocRepo: mocks.NewMockAssociationRepository(ctrl),
		queueRepo: mocks.NewMockEmailQueueRepository(ctrl),
		mux:       http.NewServeMux(),
	}
	log := logger.NewTestLogger(t)

	flowRepo := mocks.NewMockFlowRepository(ctrl)
	contactRepo := mocks.NewMockContactRepository(ctrl)
	statsRepo := mocks.NewMockStatsRepository(ctrl)
	logRepo := mocks.NewMockEmailLogRepository(ctrl)
	templateRepo := mocks.NewMockTemplateRepository(ctrl)
	serverRepo := mocks.NewMockServerRepository(ctrl)

	scheduler := service.NewFlowScheduler(f.assocRepo, flowRepo, contactRepo, statsRepo, nil, log)
	engagement := service.NewEngagementService(contactRepo, log)
	worker := service.NewDeliveryWorker(f.queueRepo, logRepo, templateRepo, flowRepo, serverRepo, statsRepo, engagement, nil, service.DeliveryConfig{}, log)

	handler := NewCronHandler(scheduler, worker, 100, 50, log)
	handler.RegisterRoutes(f.mux)
	return f
}

func TestCronHandler_ProcessingCron(t *testing.T) {
	t.Run("get runs a sweep and reports it", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newCronFixture(t, ctrl)
		f.assocRepo.EXPECT().GetDueContacts(gomock.Any(), gomock.Any(), 100).Return([]domain.ContactRef{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/crons/processingCron", nil)
		rec := httptest.NewRecorder()
		f.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(0), body["processed"])
		assert.NotEmpty(t, body["timestamp"])
		require.Contains(t, body, "stats")
		stats := body["stats"].(map[string]interface{})
		assert.Contains(t, stats, "advanced")
		assert.Contains(t, stats, "completed")
	})

	t.Run("post is accepted as an alias", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newCronFixture(t, ctrl)
		f.assocRepo.EXPECT().GetDueContacts(gomock.Any(), gomock.Any(), 100).Return([]domain.ContactRef{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/crons/processingCron", nil)
		rec := httptest.NewRecorder()
		f.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other methods are rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newCronFixture(t, ctrl)

		req := httptest.NewRequest(http.MethodDelete, "/crons/processingCron", nil)
		rec := httptest.NewRecorder()
		f.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("infrastructure failure surfaces as 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newCronFixture(t, ctrl)
		f.assocRepo.EXPECT().GetDueContacts(gomock.Any(), gomock.Any(), 100).Return(nil, errors.New("db down"))

		req := httptest.NewRequest(http.MethodGet, "/crons/processingCron", nil)
		rec := httptest.NewRecorder()
		f.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Automation sweep failed", body["error"])
	})
}

func TestCronHandler_EmailProcessor(t *testing.T) {
	t.Run("get runs a delivery batch and reports it", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newCronFixture(t, ctrl)
		f.queueRepo.EXPECT().FetchDue(gomock.Any(), gomock.Any(), gomock.Any(), 50).Return([]*domain.EmailQueueEntry{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/crons/emailProcessor", nil)
		rec := httptest.NewRecorder()
		f.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(0), body["processed"])
		require.Contains(t, body, "stats")
		stats := body["stats"].(map[string]interface{})
		assert.Contains(t, stats, "sent")
		assert.Contains(t, stats, "failed")
	})

	t.Run("post is accepted as an alias", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newCronFixture(t, ctrl)
		f.queueRepo.EXPECT().FetchDue(gomock.Any(), gomock.Any(), gomock.Any(), 50).Return([]*domain.EmailQueueEntry{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/crons/emailProcessor", nil)
		rec := httptest.NewRecorder()
		f.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("infrastructure failure surfaces as 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newCronFixture(t, ctrl)
		f.queueRepo.EXPECT().FetchDue(gomock.Any(), gomock.Any(), gomock.Any(), 50).Return(nil, errors.New("db down"))

		req := httptest.NewRequest(http.MethodGet, "/crons/emailProcessor", nil)
		rec := httptest.NewRecorder()
		f.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
