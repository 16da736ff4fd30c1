package services

import (
	"testing"
	"time"

	"carrental/internal/domain"
	"carrental/internal/domain/models"
	"carrental/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterNormalizesAndHashes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE email`).WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(5, 1))

	svc := UserService{Users: repositories.UserRepository{DB: db}}

	user, err := svc.Register(RegisterInput{
		Name:     "  Bob  ",
		Email:    "  BOB@Example.com ",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if user.Email != "bob@example.com" {
		t.Fatalf("email = %q, want normalized lowercase", user.Email)
	}
	if user.Name != "Bob" {
		t.Fatalf("name = %q, want trimmed", user.Name)
	}
	if user.Role != models.RoleUser {
		t.Fatalf("role = %q, want %q", user.Role, models.RoleUser)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := UserService{}
	cases := []RegisterInput{
		{Name: "", Email: "a@b.com", Password: "secret1"},
		{Name: "Bob", Email: "not-an-email", Password: "secret1"},
		{Name: "Bob", Email: "a@b.com", Password: "short"},
	}
	for _, in := range cases {
		if _, err := svc.Register(in); !domain.IsValidation(err) {
			t.Errorf("Register(%+v): expected validation error, got %v", in, err)
		}
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE email`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	svc := UserService{Users: repositories.UserRepository{DB: db}}

	_, err = svc.Register(RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "secret1"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuthenticateUniformFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)

	// unknown email
	mock.ExpectQuery("FROM users WHERE email").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}))
	// wrong password
	mock.ExpectQuery("FROM users WHERE email").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}).
			AddRow(1, "Bob", "bob@example.com", string(hash), models.RoleUser, time.Now()))

	svc := UserService{Users: repositories.UserRepository{DB: db}}

	_, errUnknown := svc.Authenticate("ghost@example.com", "secret1")
	_, errWrongPw := svc.Authenticate("bob@example.com", "nope")

	for _, err := range []error{errUnknown, errWrongPw} {
		if !domain.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if err.Error() != errUnknown.Error() {
			t.Fatalf("failure messages differ: %q vs %q", err.Error(), errUnknown.Error())
		}
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	mock.ExpectQuery("FROM users WHERE email").WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}).
			AddRow(1, "Bob", "bob@example.com", string(hash), models.RoleUser, time.Now()))

	svc := UserService{Users: repositories.UserRepository{DB: db}}

	user, err := svc.Authenticate(" Bob@Example.com ", "secret1")
	if err != nil {
		t.Fatalf("authenticate error: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("user id = %d, want 1", user.ID)
	}
}
