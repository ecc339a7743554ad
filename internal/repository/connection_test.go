package repository

import (
	"context"
	"testing"

	"twosides/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConnectionRepository_CreateRequest(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	req := &models.ConnectionRequest{FromUID: "uid-a", ToUID: "uid-b", Comment: "debate rematch?"}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "connection_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.CreateRequest(ctx, req)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionRepository_CreateRequest_Duplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	req := &models.ConnectionRequest{FromUID: "uid-a", ToUID: "uid-b"}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "connection_requests"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.CreateRequest(ctx, req)
	assert.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeDuplicateRequest))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionRepository_AcceptRequest(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	req := &models.ConnectionRequest{ID: 4, FromUID: "uid-b", ToUID: "uid-a"}

	mock.ExpectBegin()
	// Edge lands with endpoints in normalized order regardless of direction.
	mock.ExpectQuery(`INSERT INTO "connections" .+ ON CONFLICT .+ DO NOTHING`).
		WithArgs("uid-a", "uid-b", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectExec(`DELETE FROM "connection_requests" WHERE "connection_requests"."id" = \$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.AcceptRequest(ctx, req)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionRepository_AcceptRequest_AlreadyResolved(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	req := &models.ConnectionRequest{ID: 4, FromUID: "uid-b", ToUID: "uid-a"}

	// Request row vanished under us; each attempt rolls back and is retried
	// before the conflict is reported.
	for i := 0; i < maxStoreAttempts; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "connections" .+ ON CONFLICT .+ DO NOTHING`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
		mock.ExpectExec(`DELETE FROM "connection_requests" WHERE "connection_requests"."id" = \$1`).
			WithArgs(4).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()
	}

	err := repo.AcceptRequest(ctx, req)
	assert.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeConcurrentConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionRepository_ConnectionExists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	// Lookup order never matters; the pair is normalized first.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "connections" WHERE user1_uid = \$1 AND user2_uid = \$2`).
		WithArgs("uid-a", "uid-b").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ConnectionExists(ctx, "uid-b", "uid-a")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionRepository_PendingRequestExists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "connection_requests" WHERE from_uid = \$1 AND to_uid = \$2`).
		WithArgs("uid-a", "uid-b").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.PendingRequestExists(ctx, "uid-a", "uid-b")
	assert.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
