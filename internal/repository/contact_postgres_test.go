package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ansolutions0125/nexmailer/internal/domain"
	"github.com/ansolutions0125/nexmailer/internal/repository"
)

func setupContactRepositoryTest(t *testing.T) (sqlmock.Sqlmock, domain.ContactRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, repository.NewContactRepository(db)
}

func contactRows() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "customer_id", "email", "full_name",
		"emails_sent", "emails_delivered", "emails_opened", "emails_clicked", "emails_failed",
		"open_rate", "click_rate", "delivery_rate", "engagement_score",
		"deleted_at", "created_at", "updated_at",
	}).AddRow(
		"contact1", "cust1", "jane@example.com", "Jane Doe",
		10, 8, 4, 1, 2,
		50.0, 25.0, 80.0, 46.0,
		nil, now, now,
	)
}

func TestContactRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the contact with its engagement counters", func(t *testing.T) {
		mock, repo := setupContactRepositoryTest(t)

		mock.ExpectQuery("SELECT (.+) FROM contacts").
			WithArgs("cust1", "jane@example.com").
			WillReturnRows(contactRows())

		contact, err := repo.GetByEmail(ctx, "cust1", "Jane@Example.com")
		require.NoError(t, err)

		assert.Equal(t, "contact1", contact.ID)
		assert.Equal(t, "Jane Doe", contact.FullName)
		assert.Equal(t, int64(10), contact.Engagement.EmailsSent)
		assert.Equal(t, 46.0, contact.Engagement.Score)
	})

	t.Run("missing contact yields ErrNotFound", func(t *testing.T) {
		mock, repo := setupContactRepositoryTest(t)

		mock.ExpectQuery("SELECT (.+) FROM contacts").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByEmail(ctx, "cust1", "gone@example.com")
		assert.ErrorAs(t, err, new(*domain.ErrNotFound))
	})
}

func TestContactRepository_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts with a generated id and lowercased email", func(t *testing.T) {
		mock, repo := setupContactRepositoryTest(t)

		mock.ExpectExec("INSERT INTO contacts").
			WillReturnResult(sqlmock.NewResult(0, 1))

		contact := &domain.Contact{
			CustomerID: "cust1",
			Email:      "Jane@Example.com",
			FullName:   "Jane Doe",
		}
		require.NoError(t, repo.Upsert(ctx, contact))

		assert.NotEmpty(t, contact.ID)
		assert.Equal(t, "jane@example.com", contact.Email)
	})

	t.Run("invalid contact is rejected before the insert", func(t *testing.T) {
		_, repo := setupContactRepositoryTest(t)

		err := repo.Upsert(ctx, &domain.Contact{CustomerID: "cust1", Email: "not-an-email"})
		assert.Error(t, err)
	})
}

func TestContactRepository_SoftDelete(t *testing.T) {
	ctx := context.Background()

	mock, repo := setupContactRepositoryTest(t)

	mock.ExpectExec("UPDATE contacts").
		WithArgs("cust1", "jane@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(ctx, "cust1", "Jane@Example.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_ApplyEngagement(t *testing.T) {
	ctx := context.Background()

	t.Run("increments only the flagged counters and returns the new totals", func(t *testing.T) {
		mock, repo := setupContactRepositoryTest(t)

		mock.ExpectQuery(`UPDATE contacts SET updated_at = NOW\(\), emails_sent = emails_sent \+ 1, emails_delivered = emails_delivered \+ 1`).
			WithArgs("cust1", "jane@example.com").
			WillReturnRows(sqlmock.NewRows([]string{
				"emails_sent", "emails_delivered", "emails_opened", "emails_clicked", "emails_failed",
			}).AddRow(11, 9, 4, 1, 2))

		engagement, err := repo.ApplyEngagement(ctx, "cust1", "jane@example.com", domain.EngagementDelta{Sent: true, Delivered: true})
		require.NoError(t, err)

		assert.Equal(t, int64(11), engagement.EmailsSent)
		assert.Equal(t, int64(9), engagement.EmailsDelivered)
		assert.Equal(t, int64(4), engagement.EmailsOpened)
	})

	t.Run("opened delta touches only the opened counter", func(t *testing.T) {
		mock, repo := setupContactRepositoryTest(t)

		mock.ExpectQuery(`UPDATE contacts SET updated_at = NOW\(\), emails_opened = emails_opened \+ 1 WHERE`).
			WithArgs("cust1", "jane@example.com").
			WillReturnRows(sqlmock.NewRows([]string{
				"emails_sent", "emails_delivered", "emails_opened", "emails_clicked", "emails_failed",
			}).AddRow(10, 8, 5, 1, 2))

		engagement, err := repo.ApplyEngagement(ctx, "cust1", "jane@example.com", domain.EngagementDelta{Opened: true})
		require.NoError(t, err)
		assert.Equal(t, int64(5), engagement.EmailsOpened)
	})

	t.Run("missing contact yields ErrNotFound", func(t *testing.T) {
		mock, repo := setupContactRepositoryTest(t)

		mock.ExpectQuery("UPDATE contacts").
			WillReturnRows(sqlmock.NewRows([]string{"emails_sent"}))

		_, err := repo.ApplyEngagement(ctx, "cust1", "gone@example.com", domain.EngagementDelta{Opened: true})
		assert.ErrorAs(t, err, new(*domain.ErrNotFound))
	})
}

func TestContactRepository_UpdateEngagementRates(t *testing.T) {
	ctx := context.Background()

	mock, repo := setupContactRepositoryTest(t)

	mock.ExpectExec("UPDATE contacts").
		WithArgs("cust1", "jane@example.com", 50.0, 25.0, 80.0, 46.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	engagement := &domain.Engagement{OpenRate: 50, ClickRate: 25, DeliveryRate: 80, Score: 46}
	require.NoError(t, repo.UpdateEngagementRates(ctx, "cust1", "jane@example.com", engagement))
	assert.NoError(t, mock.ExpectationsWereMet())
}
