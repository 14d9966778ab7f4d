package services

import (
	"tablebook/internal/models"
	"tablebook/internal/repositories"
)

type TableService interface {
	Create(table *models.Table) error
	GetByID(id int64) (*models.Table, error)
	ListByRestaurant(restaurantID int64) ([]*models.Table, error)
	Update(id int64, number, seats *int) (*models.Table, error)
	Delete(id int64) error
}

type tableService struct {
	tables      repositories.TableRepository
	restaurants repositories.RestaurantRepository
}

func NewTableService(tables repositories.TableRepository, restaurants repositories.RestaurantRepository) TableService {
	return &tableService{tables: tables, restaurants: restaurants}
}

func (s *tableService) Create(table *models.Table) error {
	rest, err := s.restaurants.GetByID(table.RestaurantID)
	if err != nil {
		return err
	}
	if rest == nil {
		return ErrRestaurantNotFound
	}
	taken, err := s.tables.NumberTaken(table.RestaurantID, table.Number, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrTableNumberTaken
	}
	return s.tables.Create(table)
}

func (s *tableService) GetByID(id int64) (*models.Table, error) {
	t, err := s.tables.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTableNotFound
	}
	return t, nil
}

func (s *tableService) ListByRestaurant(restaurantID int64) ([]*models.Table, error) {
	return s.tables.ListByRestaurant(restaurantID)
}

// Update — частичное обновление: nil-поля не трогаем.
func (s *tableService) Update(id int64, number, seats *int) (*models.Table, error) {
	table, err := s.tables.GetByID(id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, ErrTableNotFound
	}
	if number != nil && *number != table.Number {
		taken, err := s.tables.NumberTaken(table.RestaurantID, *number, table.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrTableNumberTaken
		}
		table.Number = *number
	}
	if seats != nil {
		table.Seats = *seats
	}
	if err := s.tables.Update(table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *tableService) Delete(id int64) error {
	table, err := s.tables.GetByID(id)
	if err != nil {
		return err
	}
	if table == nil {
		return ErrTableNotFound
	}
	return s.tables.Delete(id)
}
