package models

import (
	"fmt"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// bookingTransitions is the allowed-transition table. CANCELLED is terminal.
var bookingTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingPending:   {BookingConfirmed: true, BookingCancelled: true},
	BookingConfirmed: {BookingCancelled: true},
	BookingCancelled: {},
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	allowed, ok := bookingTransitions[s]
	if !ok {
		return false
	}
	return allowed[next]
}

func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown booking status %q", raw)
	}
	return s, nil
}

type Booking struct {
	ID              int64
	UserID          int64
	CarID           int64
	StartDate       time.Time
	EndDate         time.Time
	TotalPriceCents int64
	Status          BookingStatus
	CreatedAt       time.Time
}

// BookingDetail is the read-side projection: booking with its user and car
// flattened, so handlers never expose storage-level cross-references.
type BookingDetail struct {
	Booking
	User User
	Car  Car
}

// Overlaps reports whether [StartDate,EndDate] intersects [start,end],
// inclusive on both ends; touching ranges count as overlapping.
func (b Booking) Overlaps(start, end time.Time) bool {
	return !b.StartDate.After(end) && !b.EndDate.Before(start)
}
