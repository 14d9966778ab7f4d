package services

import (
	"errors"

	"tablebook/internal/models"
	"tablebook/internal/repositories"
)

var ErrFoodNotFound = errors.New("food not found")

type FoodService interface {
	Create(food *models.Food) error
	GetByID(id int64) (*models.Food, error)
	List() ([]*models.Food, error)
	Update(food *models.Food) error
	Delete(id int64) error
}

type foodService struct {
	repo repositories.FoodRepository
}

func NewFoodService(repo repositories.FoodRepository) FoodService {
	return &foodService{repo: repo}
}

func (s *foodService) Create(food *models.Food) error {
	return s.repo.Create(food)
}

func (s *foodService) GetByID(id int64) (*models.Food, error) {
	f, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFoodNotFound
	}
	return f, nil
}

func (s *foodService) List() ([]*models.Food, error) {
	return s.repo.List()
}

func (s *foodService) Update(food *models.Food) error {
	existing, err := s.repo.GetByID(food.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrFoodNotFound
	}
	return s.repo.Update(food)
}

func (s *foodService) Delete(id int64) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrFoodNotFound
	}
	return s.repo.Delete(id)
}
