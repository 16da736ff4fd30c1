package handlers

import (
	"carrental/internal/domain/models"
	"carrental/internal/utils"
)

// Read-side projections. Bookings reference users and cars in storage; the
// API flattens them here and never exposes the raw cross-references.

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type carResponse struct {
	ID           int64   `json:"id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	PricePerDay  float64 `json:"pricePerDay"`
	Available    bool    `json:"available"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	LicensePlate string  `json:"licensePlate,omitempty"`
	Color        string  `json:"color,omitempty"`
	Transmission string  `json:"transmission,omitempty"`
	Seats        int     `json:"seats,omitempty"`
	FuelType     string  `json:"fuelType,omitempty"`
}

type bookingResponse struct {
	ID         int64        `json:"id"`
	User       userResponse `json:"user"`
	Car        carResponse  `json:"car"`
	StartDate  string       `json:"startDate"`
	EndDate    string       `json:"endDate"`
	TotalPrice float64      `json:"totalPrice"`
	Status     string       `json:"status"`
	CreatedAt  string       `json:"createdAt"`
}

type paymentResponse struct {
	ID            int64   `json:"id"`
	BookingID     int64   `json:"bookingId"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transactionId"`
	PaymentDate   string  `json:"paymentDate"`
	PaymentMethod string  `json:"paymentMethod"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func toCarResponse(c models.Car) carResponse {
	return carResponse{
		ID:           c.ID,
		Make:         c.Make,
		Model:        c.Model,
		Year:         c.Year,
		PricePerDay:  utils.FromCents(c.PricePerDayCents),
		Available:    c.Available,
		ImageURL:     c.ImageURL,
		LicensePlate: c.LicensePlate,
		Color:        c.Color,
		Transmission: c.Transmission,
		Seats:        c.Seats,
		FuelType:     c.FuelType,
	}
}

func toBookingResponse(d models.BookingDetail) bookingResponse {
	return bookingResponse{
		ID:         d.Booking.ID,
		User:       toUserResponse(d.User),
		Car:        toCarResponse(d.Car),
		StartDate:  utils.FormatDate(d.Booking.StartDate),
		EndDate:    utils.FormatDate(d.Booking.EndDate),
		TotalPrice: utils.FromCents(d.Booking.TotalPriceCents),
		Status:     string(d.Booking.Status),
		CreatedAt:  d.Booking.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func toBookingResponses(list []models.BookingDetail) []bookingResponse {
	out := make([]bookingResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toBookingResponse(d))
	}
	return out
}

func toCarResponses(list []models.Car) []carResponse {
	out := make([]carResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCarResponse(c))
	}
	return out
}

func toPaymentResponse(p models.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		Amount:        utils.FromCents(p.AmountCents),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		PaymentDate:   p.PaymentDate.UTC().Format("2006-01-02T15:04:05Z"),
		PaymentMethod: p.PaymentMethod,
	}
}

func toPaymentResponses(list []models.Payment) []paymentResponse {
	out := make([]paymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p))
	}
	return out
}
