// auth_repo_test.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"ecommerce_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return db, mock, cleanup
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name           string
		email          string
		passwordHash   string
		mockExpect     func(sqlmock.Sqlmock)
		wantErr        bool
		wantErrIs      error
		errContainsStr string
	}{
		{
			name:         "success",
			email:        "alice@x.com",
			passwordHash: "h123",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs(sqlmock.AnyArg(), "alice@x.com", "h123").
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name:         "duplicate email",
			email:        "bob@x.com",
			passwordHash: "h456",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs(sqlmock.AnyArg(), "bob@x.com", "h456").
					WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"))
			},
			wantErr:   true,
			wantErrIs: ErrDuplicateEmail,
		},
		{
			name:         "exec error",
			email:        "carol@x.com",
			passwordHash: "h789",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs(sqlmock.AnyArg(), "carol@x.com", "h789").
					WillReturnError(errors.New("db exec failed"))
			},
			wantErr:        true,
			errContainsStr: "insert user",
		},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()
			repo := NewUserRepository(db)

			tt.mockExpect(mock)

			id, err := repo.Create(context.Background(), tt.email, tt.passwordHash)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.wantErrIs != nil && !errors.Is(err, tt.wantErrIs) {
					t.Fatalf("expected %v, got %v", tt.wantErrIs, err)
				}
				if tt.errContainsStr != "" && !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				if id != "" {
					t.Fatalf("expected empty id on error, got %q", id)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id == "" {
				t.Fatalf("expected generated id")
			}
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	tests := []struct {
		name           string
		email          string
		mockExpect     func(sqlmock.Sqlmock)
		wantUser       *models.User
		wantErr        bool
		errContainsStr string
	}{
		{
			name:  "found",
			email: "alice@x.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "email", "password_hash"}).
					AddRow("u-7", "alice@x.com", "h123")
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("alice@x.com").
					WillReturnRows(rows)
			},
			wantUser: &models.User{ID: "u-7", Email: "alice@x.com", PasswordHash: "h123"},
		},
		{
			name:  "not found (ErrNoRows)",
			email: "missing@x.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("missing@x.com").
					WillReturnError(sql.ErrNoRows)
			},
			wantUser: nil,
		},
		{
			name:  "query error",
			email: "bob@x.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("bob@x.com").
					WillReturnError(errors.New("db query failed"))
			},
			wantErr:        true,
			errContainsStr: "select user",
		},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()
			repo := NewUserRepository(db)

			tt.mockExpect(mock)

			u, err := repo.GetByEmail(context.Background(), tt.email)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				if u != nil {
					t.Fatalf("expected user=nil on error, got %+v", u)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantUser == nil {
				if u != nil {
					t.Fatalf("expected nil user, got %+v", u)
				}
				return
			}
			if u == nil || *u != *tt.wantUser {
				t.Fatalf("unexpected user: want %+v, got %+v", tt.wantUser, u)
			}
		})
	}
}
