package domain

import (
	"errors"
	"time"
)

// MaxPendingBookings is the hard business limit: a non-admin user may hold
// at most this many bookings with Complete=false at any one time.
const MaxPendingBookings = 3

var ErrBookingNotFound = errors.New("booking not found")
var ErrProviderNotFound = errors.New("provider not found")
var ErrProviderExists = errors.New("provider already exists")
var ErrImageNotFound = errors.New("image not found")
var ErrForbidden = errors.New("access forbidden")
var ErrQuotaExceeded = errors.New("pending booking limit reached")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Booking is a reservation of a provider by a user. UserID and ProviderID
// are immutable after creation; only Date and Complete may change.
type Booking struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	UserID     string    `json:"user" bson:"user"`
	ProviderID string    `json:"provider" bson:"provider"`
	Date       time.Time `json:"date" bson:"date"`
	Complete   bool      `json:"complete" bson:"complete"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// CanModify reports whether an actor may mutate or delete this booking:
// the owner always can, admins always can.
func (b *Booking) CanModify(actorID string, role Role) bool {
	return b.UserID == actorID || role.IsAdmin()
}
