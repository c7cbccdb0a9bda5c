package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/zkauth/internal/common"
	"github.com/dmitrijs2005/zkauth/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQuery = `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*email,\s*salt,\s*verifier,\s*wrapped_master_key,\s*is_active,\s*is_locked\)\s*VALUES\s*\(\$1,.*\$7\)\s*RETURNING\s+id,\s*created_at\s*$`

func newUser() *models.User {
	return &models.User{
		UserName:         "alice",
		Email:            "alice@example.com",
		Salt:             []byte("salt"),
		Verifier:         []byte("verifier"),
		WrappedMasterKey: "envelope",
		IsActive:         true,
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("42", created)
	mock.ExpectQuery(insertQuery).
		WithArgs("alice", "alice@example.com", []byte("salt"), []byte("verifier"), "envelope", true, false).
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), newUser())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "42" || got.UserName != "alice" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	tests := []struct {
		constraint string
		want       error
	}{
		{"users_username_key", ErrUsernameTaken},
		{"users_email_key", ErrEmailTaken},
		{"", ErrUsernameTaken},
	}
	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			mock.ExpectQuery(insertQuery).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tt.constraint})

			_, err := repo.Create(context.Background(), newUser())
			if !errors.Is(err, common.ErrorAlreadyExists) {
				t.Fatalf("expected ErrorAlreadyExists, got %v", err)
			}
			if err != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), newUser())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

const selectQuery = `(?s)^SELECT\s+id,\s*username,\s*email,\s*salt,\s*verifier,\s*wrapped_master_key,\s*is_active,\s*is_locked,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`

func TestGetUserByLogin_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "salt", "verifier", "wrapped_master_key", "is_active", "is_locked", "created_at"}).
		AddRow("u-1", "alice", "alice@example.com", []byte("salt"), []byte("ver"), "env", true, false, time.Now())
	mock.ExpectQuery(selectQuery).WithArgs("alice").WillReturnRows(rows)

	got, err := repo.GetUserByLogin(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetUserByLogin error: %v", err)
	}
	if got.ID != "u-1" || got.WrappedMasterKey != "env" || !got.CanLogin() {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetUserByLogin_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).WithArgs("bob").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByLogin(context.Background(), "bob")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestGetUserByLogin_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).WithArgs("alice").WillReturnError(errors.New("boom"))

	_, err := repo.GetUserByLogin(context.Background(), "alice")
	if err == nil || errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected generic db error, got %v", err)
	}
}

const updateQuery = `(?s)^UPDATE\s+users\s+SET\s+salt\s*=\s*\$2,\s*verifier\s*=\s*\$3,\s*wrapped_master_key\s*=\s*\$4\s+WHERE\s+id\s*=\s*\$1\s+AND\s+verifier\s*=\s*\$5\s*$`

func TestReplaceCredentials_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQuery).
		WithArgs("u-1", []byte("s2"), []byte("v2"), "e2", []byte("v1")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ReplaceCredentials(context.Background(), "u-1", []byte("v1"),
		models.Credentials{Salt: []byte("s2"), Verifier: []byte("v2"), WrappedMasterKey: "e2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReplaceCredentials_StaleVerifier(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQuery).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ReplaceCredentials(context.Background(), "u-1", []byte("old"), models.Credentials{})
	if !errors.Is(err, common.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestReplaceCredentials_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQuery).WillReturnError(errors.New("db down"))

	err := repo.ReplaceCredentials(context.Background(), "u-1", []byte("old"), models.Credentials{})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
