package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*MySQLStore, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return NewMySQLStore(sqlx.NewDb(mockDB, "mysql")), mock
}

func TestMySQLStore_Load(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      string
		wantOK    bool
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT entry_value FROM kv_entries WHERE entry_key = ?").
					WithArgs("default_japanese_db").
					WillReturnRows(sqlmock.NewRows([]string{"entry_value"}).AddRow(`[{"id":"1"}]`))
			},
			want:   `[{"id":"1"}]`,
			wantOK: true,
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT entry_value FROM kv_entries WHERE entry_key = ?").
					WithArgs("default_japanese_db").
					WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name: "query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT entry_value FROM kv_entries WHERE entry_key = ?").
					WithArgs("default_japanese_db").
					WillReturnError(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tt.setupMock(mock)

			got, ok, err := store.Load(context.Background(), "default_japanese_db")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				assert.Equal(t, tt.wantOK, ok)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMySQLStore_Save(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO kv_entries").
		WithArgs("default_travel_db", "[]").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Save(context.Background(), "default_travel_db", "[]"))
	assert.ErrorIs(t, store.Save(context.Background(), "", "[]"), ErrInvalidKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStore_Delete(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM kv_entries WHERE entry_key = ?").
		WithArgs("default_travel_db").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), "default_travel_db"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStore_Keys(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT entry_key FROM kv_entries WHERE entry_key LIKE").
		WithArgs(`my\_profile\_%`).
		WillReturnRows(sqlmock.NewRows([]string{"entry_key"}).
			AddRow("my_profile_diary_db").
			AddRow("my_profile_music_db"))

	got, err := store.Keys(context.Background(), "my_profile_")
	require.NoError(t, err)
	assert.Equal(t, []string{"my_profile_diary_db", "my_profile_music_db"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStore_Migrate(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_entries").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
