package handlers

import (
	"net/http"
	"strings"

	"carrental/internal/domain/models"
	"carrental/internal/http/middleware"
	"carrental/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Notifier:  notif,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/bookings (admin)
func GetBookings(c *gin.Context) {
	list, err := bookingService(c).GetAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(list))
}

// GET /api/bookings/my-bookings
func GetMyBookings(c *gin.Context) {
	list, err := bookingService(c).GetByUser(middleware.GetAuthEmail(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(list))
}

// GET /api/bookings/:id (owner or admin)
func GetBookingByID(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	detail, err := bookingService(c).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !middleware.IsAdmin(c) && detail.User.Email != middleware.GetAuthEmail(c) {
		respondError(c, http.StatusForbidden, "forbidden", "not allowed to view this booking", nil)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(detail))
}

// GET /api/bookings/car/:carId (admin)
func GetBookingsByCar(c *gin.Context) {
	carID, ok := PathID(c, "carId")
	if !ok {
		return
	}
	list, err := bookingService(c).GetByCar(carID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(list))
}

type createBookingRequest struct {
	CarID     int64  `json:"carId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	detail, err := bookingService(c).Create(middleware.GetAuthEmail(c), services.CreateBookingInput{
		CarID:     req.CarID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(detail))
}

// PATCH /api/bookings/:id/status?status=CONFIRMED
// Admins may apply any legal transition; owners may only cancel their own
// bookings.
func UpdateBookingStatus(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	raw := strings.TrimSpace(c.Query("status"))
	status, err := models.ParseBookingStatus(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "status must be one of PENDING, CONFIRMED, CANCELLED", nil)
		return
	}

	svc := bookingService(c)
	if !middleware.IsAdmin(c) {
		current, err := svc.GetByID(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if current.User.Email != middleware.GetAuthEmail(c) {
			respondError(c, http.StatusForbidden, "forbidden", "not allowed to modify this booking", nil)
			return
		}
		if status != models.BookingCancelled {
			respondError(c, http.StatusForbidden, "forbidden", "only cancellation is allowed", nil)
			return
		}
	}

	detail, err := svc.UpdateStatus(id, status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(detail))
}

// DELETE /api/bookings/:id (admin)
func DeleteBooking(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := bookingService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
