package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taskhive/taskhive-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{
			"no rows becomes not found",
			fmt.Errorf("query failed: %w", sql.ErrNoRows),
			store.ErrNotFound,
		},
		{
			"unique violation becomes duplicate",
			&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			store.ErrDuplicate,
		},
		{
			"foreign key violation becomes invalid entity",
			&pgconn.PgError{Code: "23503", ConstraintName: "tasks_task_list_id_fkey"},
			store.ErrInvalidEntity,
		},
		{
			"check violation becomes invalid entity",
			&pgconn.PgError{Code: "23514", ConstraintName: "tasks_status_check"},
			store.ErrInvalidEntity,
		},
		{
			"not null violation becomes invalid entity",
			&pgconn.PgError{Code: "23502", ColumnName: "title"},
			store.ErrInvalidEntity,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}

	t.Run("unmapped error passes through", func(t *testing.T) {
		t.Parallel()
		orig := errors.New("connection reset")
		assert.Equal(t, orig, MapError(orig))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	emailErr := fmt.Errorf("insert: %w", &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "users_email_key",
	})

	assert.True(t, IsUniqueViolation(emailErr, ""))
	assert.True(t, IsUniqueViolation(emailErr, "users_email_key"))
	assert.False(t, IsUniqueViolation(emailErr, "users_username_key"))
	assert.False(t, IsUniqueViolation(errors.New("plain"), ""))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
}
