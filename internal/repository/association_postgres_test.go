package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ansolutions0125/nexmailer/internal/domain"
	"github.com/ansolutions0125/nexmailer/internal/repository"
)

func setupAssociationRepositoryTest(t *testing.T) (sqlmock.Sqlmock, domain.AssociationRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, repository.NewAssociationRepository(db)
}

func TestAssociationRepository_Enroll(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts a new association", func(t *testing.T) {
		mock, repo := setupAssociationRepositoryTest(t)

		mock.ExpectExec("INSERT INTO flow_associations").
			WithArgs(sqlmock.AnyArg(), "cust1", "jane@example.com", "flow1", sqlmock.AnyArg(), 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		enrolled, err := repo.Enroll(ctx, &domain.FlowAssociation{
			CustomerID:   "cust1",
			ContactEmail: "Jane@Example.com",
			FlowID:       "flow1",
			ListID:       "list1",
			CurrentStep:  1,
		})
		require.NoError(t, err)
		assert.True(t, enrolled)
	})

	t.Run("existing live association is left alone", func(t *testing.T) {
		mock, repo := setupAssociationRepositoryTest(t)

		mock.ExpectExec("INSERT INTO flow_associations").
			WillReturnResult(sqlmock.NewResult(0, 0))

		enrolled, err := repo.Enroll(ctx, &domain.FlowAssociation{
			CustomerID:   "cust1",
			ContactEmail: "jane@example.com",
			FlowID:       "flow1",
			CurrentStep:  1,
		})
		require.NoError(t, err)
		assert.False(t, enrolled)
	})

	t.Run("invalid association is rejected before the insert", func(t *testing.T) {
		_, repo := setupAssociationRepositoryTest(t)

		_, err := repo.Enroll(ctx, &domain.FlowAssociation{CustomerID: "cust1"})
		assert.Error(t, err)
	})
}

func TestAssociationRepository_GetDueContacts(t *testing.T) {
	ctx := context.Background()

	t.Run("returns distinct contacts oldest first", func(t *testing.T) {
		mock, repo := setupAssociationRepositoryTest(t)

		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"customer_id", "contact_email"}).
			AddRow("cust1", "jane@example.com").
			AddRow("cust2", "john@example.com")
		mock.ExpectQuery("SELECT customer_id, contact_email").
			WithArgs(now, 100).
			WillReturnRows(rows)

		contacts, err := repo.GetDueContacts(ctx, now, 100)
		require.NoError(t, err)
		require.Len(t, contacts, 2)
		assert.Equal(t, domain.ContactRef{CustomerID: "cust1", Email: "jane@example.com"}, contacts[0])
	})

	t.Run("query failure propagates", func(t *testing.T) {
		mock, repo := setupAssociationRepositoryTest(t)

		mock.ExpectQuery("SELECT customer_id, contact_email").
			WillReturnError(errors.New("db down"))

		_, err := repo.GetDueContacts(ctx, time.Now().UTC(), 100)
		assert.Error(t, err)
	})
}

func TestAssociationRepository_Advance(t *testing.T) {
	ctx := context.Background()

	assoc := &domain.FlowAssociation{
		ID:          "assoc1",
		FlowID:      "flow1",
		CurrentStep: 2,
	}

	t.Run("advance wins when the step is unchanged", func(t *testing.T) {
		mock, repo := setupAssociationRepositoryTest(t)

		nextStepAt := time.Now().UTC().Add(time.Hour)
		mock.ExpectExec("UPDATE flow_associations").
			WithArgs("assoc1", "flow1", 2, nextStepAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		advanced, err := repo.Advance(ctx, assoc, nextStepAt)
		require.NoError(t, err)
		assert.True(t, advanced)
	})

	t.Run("advance loses when another sweep moved the step", func(t *testing.T) {
		mock, repo := setupAssociationRepositoryTest(t)

		mock.ExpectExec("UPDATE flow_associations").
			WillReturnResult(sqlmock.NewResult(0, 0))

		advanced, err := repo.Advance(ctx, assoc, time.Now().UTC())
		require.NoError(t, err)
		assert.False(t, advanced)
	})
}

func TestAssociationRepository_Terminate(t *testing.T) {
	ctx := context.Background()

	assoc := &domain.FlowAssociation{
		ID:          "assoc1",
		FlowID:      "flow1",
		CurrentStep: 3,
	}

	t.Run("deletes the association and writes history", func(t *testing.T) {
		mock, repo := setupAssociationRepositoryTest(t)

		startedAt := time.Now().UTC().Add(-48 * time.Hour)
		mock.ExpectBegin()
		mock.ExpectQuery("DELETE FROM flow_associations").
			WithArgs("assoc1", "flow1", 3).
			WillReturnRows(sqlmock.NewRows([]string{"customer_id", "contact_email", "list_id", "current_step", "started_at"}).
				AddRow("cust1", "jane@example.com", "list1", 3, startedAt))
		mock.ExpectExec("INSERT INTO flow_history").
			WithArgs(sqlmock.AnyArg(), "cust1", "jane@example.com", "flow1", sqlmock.AnyArg(), "completed", 3, nil, startedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		terminated, err := repo.Terminate(ctx, assoc, domain.AssociationStatusCompleted, nil)
		require.NoError(t, err)
		assert.True(t, terminated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-completed status archives one step less", func(t *testing.T) {
		mock, repo := setupAssociationRepositoryTest(t)

		startedAt := time.Now().UTC().Add(-time.Hour)
		errMsg := "webhook returned status 500"
		mock.ExpectBegin()
		mock.ExpectQuery("DELETE FROM flow_associations").
			WithArgs("assoc1", "flow1", 3).
			WillReturnRows(sqlmock.NewRows([]string{"customer_id", "contact_email", "list_id", "current_step", "started_at"}).
				AddRow("cust1", "jane@example.com", nil, 3, startedAt))
		mock.ExpectExec("INSERT INTO flow_history").
			WithArgs(sqlmock.AnyArg(), "cust1", "jane@example.com", "flow1", sqlmock.AnyArg(), "failed", 2, &errMsg, startedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		terminated, err := repo.Terminate(ctx, assoc, domain.AssociationStatusFailed, &errMsg)
		require.NoError(t, err)
		assert.True(t, terminated)
	})

	t.Run("already terminated association writes nothing", func(t *testing.T) {
		mock, repo := setupAssociationRepositoryTest(t)

		mock.ExpectBegin()
		mock.ExpectQuery("DELETE FROM flow_associations").
			WithArgs("assoc1", "flow1", 3).
			WillReturnRows(sqlmock.NewRows([]string{"customer_id", "contact_email", "list_id", "current_step", "started_at"}))
		mock.ExpectRollback()

		terminated, err := repo.Terminate(ctx, assoc, domain.AssociationStatusCompleted, nil)
		require.NoError(t, err)
		assert.False(t, terminated)
	})
}

func TestAssociationRepository_CancelForContact(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels every live association in one statement", func(t *testing.T) {
		mock, repo := setupAssociationRepositoryTest(t)

		mock.ExpectBegin()
		mock.ExpectExec("WITH cancelled AS").
			WithArgs("cust1", "jane@example.com").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		cancelled, err := repo.CancelForContact(ctx, "cust1", "Jane@Example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(2), cancelled)
	})
}
