package services

import (
	"strings"

	"carrental/internal/domain"
	"carrental/internal/domain/models"
	"carrental/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService is the user directory: registration, credential checks, and
// lookups the booking engine depends on.
type UserService struct {
	Users repositories.UserRepository
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s UserService) Register(in RegisterInput) (models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" {
		return models.User{}, domain.ValidationError{Field: "name", Msg: "name is required"}
	}
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "a valid email is required"}
	}
	if len(in.Password) < 6 {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "password must be at least 6 characters"}
	}

	exists, err := s.Users.ExistsByEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email is already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	user.ID, err = s.Users.Create(user)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the user. A missing user and
// a wrong password produce the same error so login cannot probe for emails.
func (s UserService) Authenticate(email, password string) (models.User, error) {
	user, err := s.Users.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if domain.IsNotFound(err) {
			return models.User{}, domain.ValidationError{Msg: "invalid email or password"}
		}
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, domain.ValidationError{Msg: "invalid email or password"}
	}
	return user, nil
}

func (s UserService) GetByID(id int64) (models.User, error) {
	return s.Users.GetByID(id)
}

func (s UserService) GetByEmail(email string) (models.User, error) {
	return s.Users.GetByEmail(email)
}

func (s UserService) GetAll() ([]models.User, error) {
	return s.Users.List()
}
