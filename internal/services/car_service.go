package services

import (
	"strings"

	"carrental/internal/domain"
	"carrental/internal/domain/models"
	"carrental/internal/repositories"
)

// CarService is the inventory directory: admin CRUD plus search. The
// availability flag is only written here through direct admin edits; during
// booking flows the engines own it.
type CarService struct {
	Cars repositories.CarRepository
}

type CarInput struct {
	Make             string
	Model            string
	Year             int
	PricePerDayCents int64
	Available        bool
	ImageURL         string
	LicensePlate     string
	Color            string
	Transmission     string
	Seats            int
	FuelType         string
}

func (in CarInput) validate() error {
	if strings.TrimSpace(in.Make) == "" {
		return domain.ValidationError{Field: "make", Msg: "make is required"}
	}
	if strings.TrimSpace(in.Model) == "" {
		return domain.ValidationError{Field: "model", Msg: "model is required"}
	}
	if in.Year <= 0 {
		return domain.ValidationError{Field: "year", Msg: "year is required"}
	}
	if in.PricePerDayCents <= 0 {
		return domain.ValidationError{Field: "price_per_day", Msg: "price per day must be positive"}
	}
	return nil
}

func (in CarInput) toModel(id int64) models.Car {
	return models.Car{
		ID:               id,
		Make:             strings.TrimSpace(in.Make),
		Model:            strings.TrimSpace(in.Model),
		Year:             in.Year,
		PricePerDayCents: in.PricePerDayCents,
		Available:        in.Available,
		ImageURL:         strings.TrimSpace(in.ImageURL),
		LicensePlate:     strings.TrimSpace(in.LicensePlate),
		Color:            strings.TrimSpace(in.Color),
		Transmission:     strings.TrimSpace(in.Transmission),
		Seats:            in.Seats,
		FuelType:         strings.TrimSpace(in.FuelType),
	}
}

func (s CarService) GetAll() ([]models.Car, error) {
	return s.Cars.List()
}

func (s CarService) GetAvailable() ([]models.Car, error) {
	return s.Cars.ListAvailable()
}

func (s CarService) GetByID(id int64) (models.Car, error) {
	return s.Cars.GetByID(id)
}

func (s CarService) Search(f models.CarFilter) ([]models.Car, error) {
	return s.Cars.Search(f)
}

func (s CarService) Create(in CarInput) (models.Car, error) {
	if err := in.validate(); err != nil {
		return models.Car{}, err
	}
	car := in.toModel(0)
	id, err := s.Cars.Create(car)
	if err != nil {
		return models.Car{}, err
	}
	car.ID = id
	return car, nil
}

func (s CarService) Update(id int64, in CarInput) (models.Car, error) {
	if err := in.validate(); err != nil {
		return models.Car{}, err
	}
	if _, err := s.Cars.GetByID(id); err != nil {
		return models.Car{}, err
	}
	car := in.toModel(id)
	if err := s.Cars.Update(car); err != nil {
		if domain.IsNotFound(err) {
			// No rows affected can also mean an identical update; re-read.
			return s.Cars.GetByID(id)
		}
		return models.Car{}, err
	}
	return car, nil
}

func (s CarService) Delete(id int64) error {
	return s.Cars.Delete(id)
}
