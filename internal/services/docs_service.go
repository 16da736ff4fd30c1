package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"carrental/internal/domain/models"
	"carrental/internal/repositories"
	"carrental/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable booking invoices.
type DocsService struct {
	Bookings  repositories.BookingRepository
	RequestID string
	Loader    func(int64) (models.BookingDetail, error)
}

func (s DocsService) GenerateInvoice(bookingID int64) ([]byte, string, error) {
	detail, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildInvoicePDF(detail)
}

func (s DocsService) loadBooking(bookingID int64) (models.BookingDetail, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	return s.Bookings.GetDetailByID(bookingID)
}

func buildInvoicePDF(d models.BookingDetail) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RENTAL INVOICE")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-%d", d.Booking.ID)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice no : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name  : %s", safe(d.User.Name, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Email : %s", safe(d.User.Email, "-")))
	pdf.Ln(10)

	days := utils.InclusiveDays(d.Booking.StartDate, d.Booking.EndDate)
	desc := fmt.Sprintf("%s %s (%d), %s to %s (%d days)",
		safe(d.Car.Make, "-"), safe(d.Car.Model, "-"), d.Car.Year,
		utils.FormatDate(d.Booking.StartDate), utils.FormatDate(d.Booking.EndDate), days,
	)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Rate per day: "+utils.FormatAmount(d.Car.PricePerDayCents))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatAmount(d.Booking.TotalPriceCents))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Booking #%d, status %s. Keep this invoice for pickup.", d.Booking.ID, d.Booking.Status), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%d_%s.pdf", d.Booking.ID, safeFilenamePart(d.User.Name))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
