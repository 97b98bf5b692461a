package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	svix "github.com/standard-webhooks/standard-webhooks/libraries/go"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ansolutions0125/nexmailer/internal/domain"
	"github.com/ansolutions0125/nexmailer/internal/domain/mocks"
	"github.com/ansolutions0125/nexmailer/pkg/logger"
)

func executionParams(step *domain.Step) StepExecutionParams {
	return StepExecutionParams{
		Association: &domain.FlowAssociation{
			ID:           "assoc1",
			CustomerID:   "cust1",
			ContactEmail: "jane@example.com",
			FlowID:       "flow1",
			ListID:       "list1",
			CurrentStep:  step.StepCount,
		},
		Flow: &domain.Flow{
			ID:         "flow1",
			CustomerID: "cust1",
			Name:       "Welcome Series",
			ListID:     "list1",
			IsActive:   true,
			Steps:      domain.Steps{step},
		},
		Step: step,
		Contact: &domain.Contact{
			CustomerID: "cust1",
			Email:      "jane@example.com",
			FullName:   "Jane Doe",
		},
	}
}

func TestWaitStepExecutor_Execute(t *testing.T) {
	executor := NewWaitStepExecutor()
	assert.Equal(t, domain.StepTypeWaitSubscriber, executor.StepType())

	t.Run("schedules next run after the delay", func(t *testing.T) {
		step := &domain.Step{
			StepCount: 1,
			Type:      domain.StepTypeWaitSubscriber,
			Config:    map[string]interface{}{"waitDuration": 2, "waitUnit": "hours"},
		}

		before := time.Now().UTC()
		result, err := executor.Execute(context.Background(), executionParams(step))
		require.NoError(t, err)
		require.NotNil(t, result.NextRunAt)

		assert.False(t, result.Terminal)
		assert.WithinDuration(t, before.Add(2*time.Hour), *result.NextRunAt, 5*time.Second)
	})

	t.Run("rejects invalid wait unit", func(t *testing.T) {
		step := &domain.Step{
			StepCount: 1,
			Type:      domain.StepTypeWaitSubscriber,
			Config:    map[string]interface{}{"waitDuration": 1, "waitUnit": "eons"},
		}

		_, err := executor.Execute(context.Background(), executionParams(step))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		step := &domain.Step{
			StepCount: 1,
			Type:      domain.StepTypeWaitSubscriber,
			Config:    map[string]interface{}{"waitDuration": 0, "waitUnit": "days"},
		}

		_, err := executor.Execute(context.Background(), executionParams(step))
		assert.Error(t, err)
	})
}

func TestWebhookStepExecutor_Execute(t *testing.T) {
	executor := NewWebhookStepExecutor(5*time.Second, logger.NewTestLogger(t))
	assert.Equal(t, domain.StepTypeSendWebhook, executor.StepType())

	t.Run("posts contact and flow context", func(t *testing.T) {
		var received map[string]interface{}
		var gotMethod, gotContentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotContentType = r.Header.Get("Content-Type")
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &received)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		step := &domain.Step{
			StepCount: 2,
			Type:      domain.StepTypeSendWebhook,
			Config: map[string]interface{}{
				"webhookUrl": server.URL,
				"bodyParams": map[string]interface{}{"greeting": "Hi {{fullName}}"},
			},
		}

		result, err := executor.Execute(context.Background(), executionParams(step))
		require.NoError(t, err)

		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, "jane@example.com", received["email"])
		assert.Equal(t, "Jane Doe", received["fullName"])
		assert.Equal(t, "flow1", received["flowId"])
		assert.Equal(t, "Welcome Series", received["flowName"])
		assert.Equal(t, float64(2), received["stepCount"])
		assert.Equal(t, "Hi Jane Doe", received["greeting"])

		assert.False(t, result.Terminal)
		assert.Equal(t, int64(1), result.FlowStats.WebhooksSent)
		assert.Equal(t, int64(1), result.GlobalStats.WebhooksSent)
	})

	t.Run("merges query params into the url", func(t *testing.T) {
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("contact")
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		step := &domain.Step{
			StepCount: 1,
			Type:      domain.StepTypeSendWebhook,
			Config: map[string]interface{}{
				"webhookUrl":  server.URL,
				"queryParams": map[string]interface{}{"contact": "{{email}}"},
			},
		}

		_, err := executor.Execute(context.Background(), executionParams(step))
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", gotQuery)
	})

	t.Run("signs the payload when a secret is configured", func(t *testing.T) {
		secret := "flow-step-secret-0123456789abcdef"

		var gotHeaders http.Header
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotHeaders = r.Header.Clone()
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		step := &domain.Step{
			StepCount: 1,
			Type:      domain.StepTypeSendWebhook,
			Config: map[string]interface{}{
				"webhookUrl": server.URL,
				"secret":     secret,
			},
		}

		_, err := executor.Execute(context.Background(), executionParams(step))
		require.NoError(t, err)

		require.NotEmpty(t, gotHeaders.Get("webhook-id"))
		require.NotEmpty(t, gotHeaders.Get("webhook-timestamp"))
		require.NotEmpty(t, gotHeaders.Get("webhook-signature"))

		verifier, err := svix.NewWebhook(base64.StdEncoding.EncodeToString([]byte(secret)))
		require.NoError(t, err)
		assert.NoError(t, verifier.Verify(gotBody, gotHeaders))
	})

	t.Run("get requests carry no body", func(t *testing.T) {
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		step := &domain.Step{
			StepCount: 1,
			Type:      domain.StepTypeSendWebhook,
			Config: map[string]interface{}{
				"webhookUrl": server.URL,
				"method":     "GET",
			},
		}

		_, err := executor.Execute(context.Background(), executionParams(step))
		require.NoError(t, err)
		assert.Empty(t, gotBody)
	})

	t.Run("signed get requests verify over the empty body", func(t *testing.T) {
		secret := "flow-step-secret-0123456789abcdef"

		var gotHeaders http.Header
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotHeaders = r.Header.Clone()
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		step := &domain.Step{
			StepCount: 1,
			Type:      domain.StepTypeSendWebhook,
			Config: map[string]interface{}{
				"webhookUrl": server.URL,
				"method":     "GET",
				"secret":     secret,
			},
		}

		_, err := executor.Execute(context.Background(), executionParams(step))
		require.NoError(t, err)
		require.Empty(t, gotBody)

		// The receiver can only verify what was transmitted, which for
		// GET is an empty payload.
		verifier, err := svix.NewWebhook(base64.StdEncoding.EncodeToString([]byte(secret)))
		require.NoError(t, err)
		assert.NoError(t, verifier.Verify(gotBody, gotHeaders))
	})

	t.Run("non-2xx response is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		step := &domain.Step{
			StepCount: 1,
			Type:      domain.StepTypeSendWebhook,
			Config:    map[string]interface{}{"webhookUrl": server.URL},
		}

		_, err := executor.Execute(context.Background(), executionParams(step))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("missing url is a validation error", func(t *testing.T) {
		step := &domain.Step{
			StepCount: 1,
			Type:      domain.StepTypeSendWebhook,
			Config:    map[string]interface{}{},
		}

		_, err := executor.Execute(context.Background(), executionParams(step))
		assert.Error(t, err)
	})
}

func TestMailStepExecutor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("enqueues an email from the template", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		templateRepo := mocks.NewMockTemplateRepository(ctrl)
		queueRepo := mocks.NewMockEmailQueueRepository(ctrl)
		executor := NewMailStepExecutor(templateRepo, queueRepo, 3)
		assert.Equal(t, domain.StepTypeSendMail, executor.StepType())

		templateRepo.EXPECT().GetByID(ctx, "cust1", "tpl1").Return(&domain.Template{
			ID:      "tpl1",
			Subject: "Welcome {{fullName}}",
		}, nil)

		var enqueued *domain.EmailQueueEntry
		queueRepo.EXPECT().Enqueue(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, entry *domain.EmailQueueEntry) error {
			enqueued = entry
			return nil
		})

		step := &domain.Step{
			StepCount: 2,
			Type:      domain.StepTypeSendMail,
			Config:    map[string]interface{}{"templateId": "tpl1"},
		}

		result, err := executor.Execute(ctx, executionParams(step))
		require.NoError(t, err)
		require.NotNil(t, enqueued)

		assert.Equal(t, "cust1", enqueued.CustomerID)
		assert.Equal(t, "jane@example.com", enqueued.ContactEmail)
		assert.Equal(t, "tpl1", enqueued.TemplateID)
		assert.Equal(t, "Welcome Jane Doe", enqueued.Subject)
		assert.Equal(t, domain.EmailQueueStatusPending, enqueued.Status)
		assert.Equal(t, 3, enqueued.MaxAttempts)

		assert.False(t, result.Terminal)
		assert.Equal(t, int64(1), result.FlowStats.EmailsSent)
	})

	t.Run("step subject overrides the template subject", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		templateRepo := mocks.NewMockTemplateRepository(ctrl)
		queueRepo := mocks.NewMockEmailQueueRepository(ctrl)
		executor := NewMailStepExecutor(templateRepo, queueRepo, 3)

		templateRepo.EXPECT().GetByID(ctx, "cust1", "tpl1").Return(&domain.Template{
			ID:      "tpl1",
			Subject: "Template subject",
		}, nil)

		var enqueued *domain.EmailQueueEntry
		queueRepo.EXPECT().Enqueue(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, entry *domain.EmailQueueEntry) error {
			enqueued = entry
			return nil
		})

		step := &domain.Step{
			StepCount: 1,
			Type:      domain.StepTypeSendMail,
			Config:    map[string]interface{}{"templateId": "tpl1", "subject": "Hello {{email}}"},
		}

		_, err := executor.Execute(ctx, executionParams(step))
		require.NoError(t, err)
		assert.Equal(t, "Hello jane@example.com", enqueued.Subject)
	})

	t.Run("missing template is an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		templateRepo := mocks.NewMockTemplateRepository(ctrl)
		queueRepo := mocks.NewMockEmailQueueRepository(ctrl)
		executor := NewMailStepExecutor(templateRepo, queueRepo, 3)

		templateRepo.EXPECT().GetByID(ctx, "cust1", "gone").
			Return(nil, &domain.ErrNotFound{Entity: "template", ID: "gone"})

		step := &domain.Step{
			StepCount: 1,
			Type:      domain.StepTypeSendMail,
			Config:    map[string]interface{}{"templateId": "gone"},
		}

		_, err := executor.Execute(ctx, executionParams(step))
		assert.Error(t, err)
	})
}

func TestMoveStepExecutor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the contact between lists and completes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		listRepo := mocks.NewMockListRepository(ctrl)
		contactListRepo := mocks.NewMockContactListRepository(ctrl)
		executor := NewMoveStepExecutor(listRepo, contactListRepo)
		assert.Equal(t, domain.StepTypeMoveSubscriber, executor.StepType())

		listRepo.EXPECT().GetByID(ctx, "cust1", "list2").Return(&domain.List{ID: "list2"}, nil)
		contactListRepo.EXPECT().RemoveContactFromList(ctx, "cust1", "jane@example.com", "list1").Return(nil)
		contactListRepo.EXPECT().AddContactToList(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, m *domain.ContactList) error {
			assert.Equal(t, "list2", m.ListID)
			assert.Equal(t, domain.ContactListStatusAdded, m.Status)
			return nil
		})

		step := &domain.Step{
			StepCount: 3,
			Type:      domain.StepTypeMoveSubscriber,
			Config:    map[string]interface{}{"targetListId": "list2"},
		}

		result, err := executor.Execute(ctx, executionParams(step))
		require.NoError(t, err)

		assert.True(t, result.Terminal)
		assert.Equal(t, domain.AssociationStatusCompleted, result.Status)
		assert.Equal(t, int64(1), result.GlobalStats.SubscribersMoved)
	})

	t.Run("missing target list is an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		listRepo := mocks.NewMockListRepository(ctrl)
		contactListRepo := mocks.NewMockContactListRepository(ctrl)
		executor := NewMoveStepExecutor(listRepo, contactListRepo)

		listRepo.EXPECT().GetByID(ctx, "cust1", "gone").
			Return(nil, &domain.ErrNotFound{Entity: "list", ID: "gone"})

		step := &domain.Step{
			StepCount: 1,
			Type:      domain.StepTypeMoveSubscriber,
			Config:    map[string]interface{}{"targetListId": "gone"},
		}

		_, err := executor.Execute(ctx, executionParams(step))
		assert.Error(t, err)
	})
}

func TestRemoveStepExecutor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the membership and completes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		contactListRepo := mocks.NewMockContactListRepository(ctrl)
		executor := NewRemoveStepExecutor(contactListRepo)
		assert.Equal(t, domain.StepTypeRemoveSubscriber, executor.StepType())

		contactListRepo.EXPECT().RemoveContactFromList(ctx, "cust1", "jane@example.com", "list1").Return(nil)

		step := &domain.Step{
			StepCount: 1,
			Type:      domain.StepTypeRemoveSubscriber,
			Config:    map[string]interface{}{"listToRemoveFrom": "list1"},
		}

		result, err := executor.Execute(ctx, executionParams(step))
		require.NoError(t, err)

		assert.True(t, result.Terminal)
		assert.Equal(t, domain.AssociationStatusCompleted, result.Status)
		assert.Equal(t, int64(1), result.GlobalStats.SubscribersRemoved)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		contactListRepo := mocks.NewMockContactListRepository(ctrl)
		executor := NewRemoveStepExecutor(contactListRepo)

		contactListRepo.EXPECT().RemoveContactFromList(ctx, "cust1", "jane@example.com", "list1").
			Return(errors.New("db down"))

		step := &domain.Step{
			StepCount: 1,
			Type:      domain.StepTypeRemoveSubscriber,
			Config:    map[string]interface{}{"listToRemoveFrom": "list1"},
		}

		_, err := executor.Execute(ctx, executionParams(step))
		assert.Error(t, err)
	})
}

func TestDeleteStepExecutor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("soft deletes the contact and clears memberships", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		contactRepo := mocks.NewMockContactRepository(ctrl)
		contactListRepo := mocks.NewMockContactListRepository(ctrl)
		executor := NewDeleteStepExecutor(contactRepo, contactListRepo)
		assert.Equal(t, domain.StepTypeDeleteSubscriber, executor.StepType())

		contactRepo.EXPECT().SoftDelete(ctx, "cust1", "jane@example.com").Return(nil)
		contactListRepo.EXPECT().RemoveContactFromAllLists(ctx, "cust1", "jane@example.com").Return(nil)

		step := &domain.Step{StepCount: 1, Type: domain.StepTypeDeleteSubscriber}

		result, err := executor.Execute(ctx, executionParams(step))
		require.NoError(t, err)

		assert.True(t, result.Terminal)
		assert.Equal(t, domain.AssociationStatusCompleted, result.Status)
		assert.Equal(t, int64(1), result.GlobalStats.SubscribersDeleted)
	})

	t.Run("delete failure propagates before memberships are touched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		contactRepo := mocks.NewMockContactRepository(ctrl)
		contactListRepo := mocks.NewMockContactListRepository(ctrl)
		executor := NewDeleteStepExecutor(contactRepo, contactListRepo)

		contactRepo.EXPECT().SoftDelete(ctx, "cust1", "jane@example.com").Return(errors.New("db down"))

		step := &domain.Step{StepCount: 1, Type: domain.StepTypeDeleteSubscriber}

		_, err := executor.Execute(ctx, executionParams(step))
		assert.Error(t, err)
	})
}
