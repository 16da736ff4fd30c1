package handlers

import (
	"net/http"

	"carrental/internal/http/middleware"
	"carrental/internal/services"

	"github.com/gin-gonic/gin"
)

func paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		Gateway:   gateway,
		Notifier:  notif,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/payments (admin)
func GetPayments(c *gin.Context) {
	list, err := paymentService(c).GetAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponses(list))
}

// GET /api/payments/:id (admin)
func GetPaymentByID(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	payment, err := paymentService(c).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(payment))
}

// GET /api/payments/booking/:bookingId (owner or admin)
func GetPaymentByBookingID(c *gin.Context) {
	bookingID, ok := PathID(c, "bookingId")
	if !ok {
		return
	}
	if !middleware.IsAdmin(c) {
		detail, err := bookingService(c).GetByID(bookingID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if detail.User.Email != middleware.GetAuthEmail(c) {
			respondError(c, http.StatusForbidden, "forbidden", "not allowed to view this payment", nil)
			return
		}
	}
	payment, err := paymentService(c).GetByBookingID(bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(payment))
}

type processPaymentRequest struct {
	BookingID     int64  `json:"bookingId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	CardNumber    string `json:"cardNumber"`
	CardExpiry    string `json:"cardExpiry"`
	CardCVV       string `json:"cardCvv"`
}

// POST /api/payments/process
func ProcessPayment(c *gin.Context) {
	var req processPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	payment, err := paymentService(c).Process(req.BookingID, req.PaymentMethod, services.CardDetails{
		Number: req.CardNumber,
		Expiry: req.CardExpiry,
		CVV:    req.CardCVV,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPaymentResponse(payment))
}

// POST /api/payments/:id/refund (admin)
func RefundPayment(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	payment, err := paymentService(c).Refund(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(payment))
}
