package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"finlite/internal/domain"
	"finlite/internal/repository"
)

// Failure paths are simulated with sqlmock; the happy paths run against a
// real in-memory database in repository_test.go.

func TestUserRepositoryCreateUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.email"))

	repo := &UserRepository{db: db}
	_, err = repo.Create(context.Background(), &domain.User{
		Name:         "Bob",
		Email:        "bob@x.com",
		PasswordHash: "hash",
	})
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepositoryCreateStoreFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("disk I/O error"))

	repo := &UserRepository{db: db}
	_, err = repo.Create(context.Background(), &domain.User{
		Name:         "Bob",
		Email:        "bob@x.com",
		PasswordHash: "hash",
	})
	if err == nil || errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected a wrapped store error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepositoryGetByEmailStoreFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, email, password_hash, role, created_at, updated_at").
		WithArgs("bob@x.com").
		WillReturnError(errors.New("database is locked"))

	repo := &UserRepository{db: db}
	_, err = repo.GetByEmail(context.Background(), "bob@x.com")
	if err == nil || errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected a wrapped store error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
