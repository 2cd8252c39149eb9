package service

import (
	"context"

	"github.com/ghaggin/tourpal/internal/api"
)

type BookingStatus string

const (
	BookingUpcoming  BookingStatus = "Upcoming"
	BookingCompleted BookingStatus = "Completed"
	BookingCancelled BookingStatus = "Cancelled"
)

type Booking struct {
	ID       string        `json:"id"`
	CarName  string        `json:"carName"`
	Provider string        `json:"provider"`
	Date     string        `json:"date"`
	Status   BookingStatus `json:"status"`
}

type BookingRequest struct {
	CarID        string `json:"carId"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	RequestNotes string `json:"requestNotes,omitempty"`
}

type Bookings struct {
	base
}

func NewBookings(client *api.Client) *Bookings {
	return &Bookings{base{client}}
}

func (s *Bookings) UserBookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := s.client.Get(ctx, "/api/Bookings", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *Bookings) Request(ctx context.Context, req BookingRequest) (*Result, error) {
	var res Result
	if err := s.client.Post(ctx, "/api/Bookings/request", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
