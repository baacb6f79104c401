package database

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	t.Cleanup(mock.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(mock, logger), mock
}

func userColumns() []string {
	return []string{"email", "first_name", "id", "last_name", "password_hash"}
}

func TestInsertOne(t *testing.T) {
	t.Run("generates id when absent", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(regexp.QuoteMeta(
			`INSERT INTO users (email, first_name, id, last_name, password_hash) VALUES ($1, $2, $3, $4, $5) RETURNING *`)).
			WithArgs("a@b.com", "A", pgxmock.AnyArg(), "B", "hash").
			WillReturnRows(pgxmock.NewRows(userColumns()).
				AddRow("a@b.com", "A", "generated-id", "B", "hash"))

		row, err := svc.InsertOne(context.Background(), TableUsers, map[string]any{
			"email":         "a@b.com",
			"first_name":    "A",
			"last_name":     "B",
			"password_hash": "hash",
		})
		require.NoError(t, err)
		assert.Equal(t, "generated-id", row["id"])
		assert.Equal(t, "a@b.com", row["email"])

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("keeps caller-provided id", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(regexp.QuoteMeta(
			`INSERT INTO users (email, first_name, id, last_name, password_hash) VALUES ($1, $2, $3, $4, $5) RETURNING *`)).
			WithArgs("a@b.com", "A", "fixed-id", "B", "hash").
			WillReturnRows(pgxmock.NewRows(userColumns()).
				AddRow("a@b.com", "A", "fixed-id", "B", "hash"))

		row, err := svc.InsertOne(context.Background(), TableUsers, map[string]any{
			"id":            "fixed-id",
			"email":         "a@b.com",
			"first_name":    "A",
			"last_name":     "B",
			"password_hash": "hash",
		})
		require.NoError(t, err)
		assert.Equal(t, "fixed-id", row["id"])

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates store errors", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(errors.New("duplicate key value violates unique constraint"))

		_, err := svc.InsertOne(context.Background(), TableUsers, map[string]any{
			"id": "x", "email": "a@b.com", "first_name": "A", "last_name": "B", "password_hash": "h",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate key")
	})

	t.Run("rejects missing table or data", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.InsertOne(context.Background(), "", map[string]any{"id": "x"})
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = svc.InsertOne(context.Background(), TableUsers, map[string]any{})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestFindOne(t *testing.T) {
	t.Run("returns matching row", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users WHERE email = $1 LIMIT 1`)).
			WithArgs("a@b.com").
			WillReturnRows(pgxmock.NewRows(userColumns()).
				AddRow("a@b.com", "A", "id-1", "B", "hash"))

		row, err := svc.FindOne(context.Background(), TableUsers, ColumnEmail, "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, "id-1", row["id"])
	})

	t.Run("returns nil without error when no row matches", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users WHERE email = $1 LIMIT 1`)).
			WithArgs("missing@b.com").
			WillReturnRows(pgxmock.NewRows(userColumns()))

		row, err := svc.FindOne(context.Background(), TableUsers, ColumnEmail, "missing@b.com")
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users WHERE email = $1 LIMIT 1`)).
			WithArgs("a@b.com").
			WillReturnError(errors.New("connection refused"))

		_, err := svc.FindOne(context.Background(), TableUsers, ColumnEmail, "a@b.com")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("rejects missing arguments", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.FindOne(context.Background(), TableUsers, ColumnEmail, "")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestDeleteOne(t *testing.T) {
	t.Run("returns deleted row", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM users WHERE email = $1 RETURNING *`)).
			WithArgs("a@b.com").
			WillReturnRows(pgxmock.NewRows(userColumns()).
				AddRow("a@b.com", "A", "id-1", "B", "hash"))

		row := svc.DeleteOne(context.Background(), TableUsers, ColumnEmail, "a@b.com")
		require.NotNil(t, row)
		assert.Equal(t, "id-1", row["id"])
	})

	t.Run("returns nil when no row matches", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM users WHERE email = $1 RETURNING *`)).
			WithArgs("missing@b.com").
			WillReturnRows(pgxmock.NewRows(userColumns()))

		assert.Nil(t, svc.DeleteOne(context.Background(), TableUsers, ColumnEmail, "missing@b.com"))
	})

	t.Run("fails closed on store errors", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM users WHERE email = $1 RETURNING *`)).
			WithArgs("a@b.com").
			WillReturnError(errors.New("connection refused"))

		assert.Nil(t, svc.DeleteOne(context.Background(), TableUsers, ColumnEmail, "a@b.com"))
	})
}

func TestExists(t *testing.T) {
	t.Run("true when a row matches", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1) AS exists`)).
			WithArgs("a@b.com").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		assert.True(t, svc.Exists(context.Background(), TableUsers, ColumnEmail, "a@b.com"))
	})

	t.Run("false when no row matches", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1) AS exists`)).
			WithArgs("missing@b.com").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		assert.False(t, svc.Exists(context.Background(), TableUsers, ColumnEmail, "missing@b.com"))
	})

	t.Run("fails closed when the store is unreachable", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1) AS exists`)).
			WithArgs("a@b.com").
			WillReturnError(errors.New("connection refused"))

		assert.False(t, svc.Exists(context.Background(), TableUsers, ColumnEmail, "a@b.com"))
	})

	t.Run("fails closed on missing arguments", func(t *testing.T) {
		svc, _ := newTestService(t)

		assert.False(t, svc.Exists(context.Background(), TableUsers, "", "a@b.com"))
	})
}

func TestQuery(t *testing.T) {
	t.Run("returns all rows", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users`)).
			WillReturnRows(pgxmock.NewRows(userColumns()).
				AddRow("a@b.com", "A", "id-1", "B", "hash").
				AddRow("c@d.com", "C", "id-2", "D", "hash2"))

		rows := svc.Query(context.Background(), "SELECT * FROM users")
		require.Len(t, rows, 2)
		assert.Equal(t, "id-2", rows[1]["id"])
	})

	t.Run("fails closed when the store is unreachable", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users`)).
			WillReturnError(errors.New("connection refused"))

		rows := svc.Query(context.Background(), "SELECT * FROM users")
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}
