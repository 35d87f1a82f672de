package ports

import (
	"context"
	"time"

	"github.com/careslot/booking-api/internal/core/domain"
)

// BookingFilter carries the query parameters for listing bookings.
// The service layer sets UserID to scope non-admin actors to their own
// bookings; an empty UserID means no owner filter.
type BookingFilter struct {
	UserID     string // empty = all users (admin with all=true)
	ProviderID string // empty = all providers
	Complete   *bool  // nil = any completion state
}

// BookingPatch lists the mutable booking fields. Nil means "leave as is".
// UserID and ProviderID are deliberately absent: ownership and the provider
// reference never change after creation.
type BookingPatch struct {
	Date     *time.Time
	Complete *bool
}

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]*domain.Booking, error)
	// CountPending returns the number of bookings owned by userID with
	// Complete=false. Used for quota enforcement.
	CountPending(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, id string, patch BookingPatch) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	// DeleteByProvider removes every booking referencing providerID and
	// returns how many were removed. Used by the provider cascade delete.
	DeleteByProvider(ctx context.Context, providerID string) (int64, error)
}
