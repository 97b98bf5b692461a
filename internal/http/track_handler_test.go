package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/ansolutions0125/nexmailer/internal/domain"
	"github.com/ansolutions0125/nexmailer/internal/domain/mocks"
	"github.com/ansolutions0125/nexmailer/internal/service"
	"github.com/ansolutions0125/nexmailer/pkg/logger"
	"github.com/ansolutions0125/nexmailer/pkg/tracking"
)

type trackFixture struct {
	logRepo   *mocks.MockEmailLogRepository
	queueRepo *mocks.MockEmailQueueRepository
	mux       *http.ServeMux
}

func newTrackFixture(t *testing.T, ctrl *gomock.Controller) *trackFixture {
	f := &trackFixture{
		logRepo:   mocks.NewMockEmailLogRepository(ctrl),
		queueRepo: mocks.NewMockEmailQueueRepository(ctrl),
		mux:       http.NewServeMux(),
	}
	log := logger.NewTestLogger(t)

	contactRepo := mocks.NewMockContactRepository(ctrl)
	serverRepo := mocks.NewMockServerRepository(ctrl)
	statsRepo := mocks.NewMockStatsRepository(ctrl)
	engagement := service.NewEngagementService(contactRepo, log)
	tracker := service.NewTrackingService(f.logRepo, f.queueRepo, serverRepo, statsRepo, engagement, log)

	handler := NewTrackHandler(tracker, log)
	handler.RegisterRoutes(f.mux)
	return f
}

func TestTrackHandler_TrackOpen(t *testing.T) {
	t.Run("counted open serves the pixel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTrackFixture(t, ctrl)
		f.logRepo.EXPECT().RecordOpen(gomock.Any(), "log1", gomock.Any()).Return(&domain.OpenResult{
			Counted: true,
			Log:     &domain.EmailLog{ID: "log1", OpenCount: 2, MaxOpens: 5},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/track/open/log1", nil)
		rec := httptest.NewRecorder()
		f.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))
		assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
		assert.True(t, bytes.Equal(tracking.PixelGIF, rec.Body.Bytes()))
	})

	t.Run("capped open still serves the pixel with 410", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTrackFixture(t, ctrl)
		f.logRepo.EXPECT().RecordOpen(gomock.Any(), "log1", gomock.Any()).Return(&domain.OpenResult{
			Counted: false,
			Log:     &domain.EmailLog{ID: "log1", OpenCount: 5, MaxOpens: 5},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/track/open/log1", nil)
		rec := httptest.NewRecorder()
		f.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusGone, rec.Code)
		assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))
		assert.True(t, bytes.Equal(tracking.PixelGIF, rec.Body.Bytes()))
	})

	t.Run("unknown id still serves the pixel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTrackFixture(t, ctrl)
		f.logRepo.EXPECT().RecordOpen(gomock.Any(), "mystery", gomock.Any()).
			Return(nil, &domain.ErrNotFound{Entity: "email log", ID: "mystery"})
		f.queueRepo.EXPECT().GetByID(gomock.Any(), "mystery").
			Return(nil, &domain.ErrNotFound{Entity: "email queue entry", ID: "mystery"})

		req := httptest.NewRequest(http.MethodGet, "/track/open/mystery", nil)
		rec := httptest.NewRecorder()
		f.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, bytes.Equal(tracking.PixelGIF, rec.Body.Bytes()))
	})

	t.Run("empty id serves the pixel without counting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTrackFixture(t, ctrl)

		req := httptest.NewRequest(http.MethodGet, "/track/open/", nil)
		rec := httptest.NewRecorder()
		f.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, bytes.Equal(tracking.PixelGIF, rec.Body.Bytes()))
	})
}

func TestTrackHandler_TrackClick(t *testing.T) {
	t.Run("counts the click and redirects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTrackFixture(t, ctrl)
		f.logRepo.EXPECT().RecordClick(gomock.Any(), "log1", gomock.Any()).Return(&domain.ClickResult{
			FirstClick: false,
			Log:        &domain.EmailLog{ID: "log1", ClickCount: 2},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/track/click/log1?url=https%3A%2F%2Facme.example%2Fpricing", nil)
		rec := httptest.NewRecorder()
		f.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://acme.example/pricing", rec.Header().Get("Location"))
	})

	t.Run("missing target is a bad request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTrackFixture(t, ctrl)
		f.logRepo.EXPECT().RecordClick(gomock.Any(), "log1", gomock.Any()).Return(&domain.ClickResult{
			Log: &domain.EmailLog{ID: "log1", ClickCount: 1},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/track/click/log1", nil)
		rec := httptest.NewRecorder()
		f.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-http target is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTrackFixture(t, ctrl)
		f.logRepo.EXPECT().RecordClick(gomock.Any(), "log1", gomock.Any()).Return(&domain.ClickResult{
			Log: &domain.EmailLog{ID: "log1", ClickCount: 1},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/track/click/log1?url=javascript%3Aalert(1)", nil)
		rec := httptest.NewRecorder()
		f.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
