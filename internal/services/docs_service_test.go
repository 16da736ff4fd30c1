package services

import (
	"strings"
	"testing"
	"time"

	"carrental/internal/domain/models"
)

func TestDocsServiceGenerateInvoice(t *testing.T) {
	start, _ := time.Parse("2006-01-02", "2025-07-01")
	loader := func(id int64) (models.BookingDetail, error) {
		return models.BookingDetail{
			Booking: models.Booking{
				ID:              id,
				StartDate:       start,
				EndDate:         start.AddDate(0, 0, 2),
				TotalPriceCents: 15000,
				Status:          models.BookingConfirmed,
			},
			User: models.User{ID: 1, Name: "Alice Tester", Email: "alice@example.com"},
			Car:  models.Car{ID: 2, Make: "Toyota", Model: "Corolla", Year: 2022, PricePerDayCents: 5000},
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateInvoice(10)
	if err != nil {
		t.Fatalf("GenerateInvoice returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("GenerateInvoice returned empty data")
	}
	if !strings.HasPrefix(string(pdf[:5]), "%PDF-") {
		t.Fatalf("output is not a PDF, starts with %q", pdf[:5])
	}
	if filename != "INVOICE_10_Alice_Tester.pdf" {
		t.Fatalf("filename = %q", filename)
	}
}
