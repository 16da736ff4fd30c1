package handlers

import (
	"net/http"

	"carrental/internal/domain/models"
	"carrental/internal/http/middleware"
	"carrental/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:id/invoice (owner or admin)
func GetBookingInvoicePDF(c *gin.Context) {
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
		respondError(c, http.StatusForbidden, "forbidden", "not allowed to view this invoice", nil)
		return
	}

	svc := services.DocsService{
		RequestID: middleware.GetRequestID(c),
		Loader: func(int64) (models.BookingDetail, error) {
			return detail, nil
		},
	}
	pdfBytes, filename, err := svc.GenerateInvoice(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
