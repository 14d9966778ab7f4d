package services

import (
	"errors"
	"log"
	"strings"

	"tablebook/internal/authz"
	"tablebook/internal/models"
	"tablebook/internal/repositories"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserBlocked        = errors.New("user is blocked")
	ErrUserNotFound       = errors.New("user not found")
	ErrProtectedAdmin     = errors.New("cannot modify admin user")
)

type UserService interface {
	Register(req models.RegisterRequest) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	GetByID(id int64) (*models.User, error)
	ListByRole(role string) ([]*models.User, error)
	ListAll() ([]*models.User, error)
	SetBlocked(id int64, blocked bool) (*models.User, error)
	Delete(id int64) error
	CreateManager(req models.RegisterRequest) (*models.User, error)
}

type userService struct {
	repo repositories.UserRepository
	auth AuthService
}

func NewUserService(repo repositories.UserRepository, auth AuthService) UserService {
	return &userService{repo: repo, auth: auth}
}

func (s *userService) Register(req models.RegisterRequest) (*models.User, error) {
	return s.create(req, authz.RoleUser)
}

func (s *userService) CreateManager(req models.RegisterRequest) (*models.User, error) {
	return s.create(req, authz.RoleManager)
}

func (s *userService) create(req models.RegisterRequest, role string) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	log.Printf("[users][create] id=%d role=%s", user.ID, user.Role)
	return user, nil
}

func (s *userService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !s.auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if user.IsBlocked {
		return nil, ErrUserBlocked
	}
	return user, nil
}

func (s *userService) GetByID(id int64) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) ListByRole(role string) ([]*models.User, error) {
	return s.repo.ListByRole(role)
}

func (s *userService) ListAll() ([]*models.User, error) {
	return s.repo.ListAll()
}

func (s *userService) SetBlocked(id int64, blocked bool) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if blocked && authz.IsAdmin(user.Role) {
		return nil, ErrProtectedAdmin
	}
	if err := s.repo.SetBlocked(id, blocked); err != nil {
		return nil, err
	}
	user.IsBlocked = blocked
	return user, nil
}

func (s *userService) Delete(id int64) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if authz.IsAdmin(user.Role) {
		return ErrProtectedAdmin
	}
	return s.repo.Delete(id)
}
