package services

import (
	"errors"

	"tablebook/internal/models"
	"tablebook/internal/repositories"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrTableNotFound      = errors.New("table not found")
	ErrTableNumberTaken   = errors.New("table number already exists in this restaurant")
)

type RestaurantService interface {
	Create(rest *models.Restaurant) error
	GetByID(id int64) (*models.Restaurant, error)
	List() ([]*models.Restaurant, error)
	Update(rest *models.Restaurant) error
	Delete(id int64) error
}

type restaurantService struct {
	repo repositories.RestaurantRepository
}

func NewRestaurantService(repo repositories.RestaurantRepository) RestaurantService {
	return &restaurantService{repo: repo}
}

func (s *restaurantService) Create(rest *models.Restaurant) error {
	return s.repo.Create(rest)
}

func (s *restaurantService) GetByID(id int64) (*models.Restaurant, error) {
	rest, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rest == nil {
		return nil, ErrRestaurantNotFound
	}
	return rest, nil
}

func (s *restaurantService) List() ([]*models.Restaurant, error) {
	return s.repo.List()
}

func (s *restaurantService) Update(rest *models.Restaurant) error {
	existing, err := s.repo.GetByID(rest.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRestaurantNotFound
	}
	return s.repo.Update(rest)
}

func (s *restaurantService) Delete(id int64) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRestaurantNotFound
	}
	return s.repo.Delete(id)
}
