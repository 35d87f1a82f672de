package ports

import (
	"context"
	"time"

	"github.com/careslot/booking-api/internal/core/domain"
)

// Actor identifies the authenticated caller of a booking operation.
type Actor struct {
	ID   string
	Role domain.Role
}

// ListBookingsInput carries the parameters for the list endpoint.
type ListBookingsInput struct {
	Actor Actor
	// Complete filters on completion state; nil means any.
	Complete *bool
	// IncludeAll widens the result to every user's bookings. Only honored
	// for admins; other actors are always scoped to their own bookings.
	IncludeAll bool
}

// ProviderSummary is the provider sub-view embedded in list items
// (name, tel, address, cover image).
type ProviderSummary struct {
	ID      string
	Name    string
	Tel     string
	Address string
	Pic     string
}

// BookingView is a booking enriched with its provider summary.
type BookingView struct {
	ID        string
	UserID    string
	Date      time.Time
	Complete  bool
	CreatedAt time.Time
	Provider  ProviderSummary
}

// ProviderDetail is the wider provider sub-view returned on a single
// booking read (name, description, tel).
type ProviderDetail struct {
	ID          string
	Name        string
	Description string
	Tel         string
}

// BookingDetail is the single-booking view returned by Get.
type BookingDetail struct {
	ID        string
	UserID    string
	Date      time.Time
	Complete  bool
	CreatedAt time.Time
	Provider  ProviderDetail
}

// CreateBookingInput carries all data needed to create a booking.
type CreateBookingInput struct {
	Actor      Actor
	ProviderID string
	Date       time.Time
	// Complete overrides the default pending state when set by the caller.
	Complete bool
}

// UpdateBookingInput applies a partial update to a booking's mutable fields.
type UpdateBookingInput struct {
	Actor     Actor
	BookingID string
	Patch     BookingPatch
}

// BookingService is the policy gate every booking operation passes through:
// ownership, role visibility, and the pending-booking quota live here.
type BookingService interface {
	List(ctx context.Context, in ListBookingsInput) ([]BookingView, error)
	Get(ctx context.Context, bookingID string) (*BookingDetail, error)
	Create(ctx context.Context, in CreateBookingInput) (*domain.Booking, error)
	Update(ctx context.Context, in UpdateBookingInput) (*domain.Booking, error)
	Delete(ctx context.Context, actor Actor, bookingID string) error
}
