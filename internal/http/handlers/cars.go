package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"carrental/internal/domain/models"
	"carrental/internal/services"
	"carrental/internal/utils"

	"github.com/gin-gonic/gin"
)

type carPayload struct {
	Make         string  `json:"make" binding:"required"`
	Model        string  `json:"model" binding:"required"`
	Year         int     `json:"year" binding:"required"`
	PricePerDay  float64 `json:"pricePerDay" binding:"required"`
	Available    *bool   `json:"available"`
	ImageURL     string  `json:"imageUrl"`
	LicensePlate string  `json:"licensePlate"`
	Color        string  `json:"color"`
	Transmission string  `json:"transmission"`
	Seats        int     `json:"seats"`
	FuelType     string  `json:"fuelType"`
}

func (p carPayload) toInput() services.CarInput {
	available := true
	if p.Available != nil {
		available = *p.Available
	}
	return services.CarInput{
		Make:             p.Make,
		Model:            p.Model,
		Year:             p.Year,
		PricePerDayCents: utils.ToCents(p.PricePerDay),
		Available:        available,
		ImageURL:         p.ImageURL,
		LicensePlate:     p.LicensePlate,
		Color:            p.Color,
		Transmission:     p.Transmission,
		Seats:            p.Seats,
		FuelType:         p.FuelType,
	}
}

// GET /api/cars
func GetCars(c *gin.Context) {
	svc := services.CarService{}
	cars, err := svc.GetAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCarResponses(cars))
}

// GET /api/cars/available
func GetAvailableCars(c *gin.Context) {
	svc := services.CarService{}
	cars, err := svc.GetAvailable()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCarResponses(cars))
}

// GET /api/cars/search?make=&model=&minPrice=&maxPrice=&available=
func SearchCars(c *gin.Context) {
	filter := models.CarFilter{
		Make:  strings.TrimSpace(c.Query("make")),
		Model: strings.TrimSpace(c.Query("model")),
	}
	if s := strings.TrimSpace(c.Query("minPrice")); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "minPrice must be a number", nil)
			return
		}
		filter.MinPriceCents = utils.ToCents(v)
	}
	if s := strings.TrimSpace(c.Query("maxPrice")); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "maxPrice must be a number", nil)
			return
		}
		filter.MaxPriceCents = utils.ToCents(v)
	}
	if s := strings.TrimSpace(c.Query("available")); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "available must be true or false", nil)
			return
		}
		filter.Available = &v
	}

	svc := services.CarService{}
	cars, err := svc.Search(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCarResponses(cars))
}

// GET /api/cars/:id
func GetCarByID(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	svc := services.CarService{}
	car, err := svc.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCarResponse(car))
}

// POST /api/cars (admin)
func CreateCar(c *gin.Context) {
	var payload carPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	svc := services.CarService{}
	car, err := svc.Create(payload.toInput())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCarResponse(car))
}

// PUT /api/cars/:id (admin)
func UpdateCar(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var payload carPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	svc := services.CarService{}
	car, err := svc.Update(id, payload.toInput())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCarResponse(car))
}

// DELETE /api/cars/:id (admin)
func DeleteCar(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	svc := services.CarService{}
	if err := svc.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
