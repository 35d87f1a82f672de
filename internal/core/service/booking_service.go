package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/careslot/booking-api/internal/core/domain"
	"github.com/careslot/booking-api/internal/core/ports"
	"github.com/careslot/booking-api/internal/metrics"
)

type bookingService struct {
	bookings  ports.BookingRepository
	providers ports.ProviderRepository
	log       zerolog.Logger
}

// NewBookingService returns a BookingService implementation. Every booking
// mutation and read is mediated here: ownership, role visibility, and the
// pending quota.
func NewBookingService(
	bookings ports.BookingRepository,
	providers ports.ProviderRepository,
	log zerolog.Logger,
) ports.BookingService {
	return &bookingService{
		bookings:  bookings,
		providers: providers,
		log:       log,
	}
}

// List returns the bookings visible to the actor, each enriched with a
// provider summary. Non-admins only ever see their own bookings; admins
// see everything when IncludeAll is set.
func (s *bookingService) List(ctx context.Context, in ports.ListBookingsInput) ([]ports.BookingView, error) {
	filter := ports.BookingFilter{Complete: in.Complete}
	if !in.Actor.Role.IsAdmin() || !in.IncludeAll {
		filter.UserID = in.Actor.ID
	}

	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	// Resolve each referenced provider once.
	summaries := make(map[string]ports.ProviderSummary, len(bookings))
	views := make([]ports.BookingView, 0, len(bookings))
	for _, b := range bookings {
		summary, ok := summaries[b.ProviderID]
		if !ok {
			p, err := s.providers.FindByID(ctx, b.ProviderID)
			if err != nil {
				// A dangling reference would mean the cascade delete was
				// interrupted; skip the row rather than failing the list.
				s.log.Warn().Err(err).Str("booking_id", b.ID).Str("provider_id", b.ProviderID).Msg("provider lookup failed")
				continue
			}
			summary = ports.ProviderSummary{
				ID:      p.ID,
				Name:    p.Name,
				Tel:     p.Tel,
				Address: p.Address,
				Pic:     p.Pic,
			}
			summaries[b.ProviderID] = summary
		}
		views = append(views, ports.BookingView{
			ID:        b.ID,
			UserID:    b.UserID,
			Date:      b.Date,
			Complete:  b.Complete,
			CreatedAt: b.CreatedAt,
			Provider:  summary,
		})
	}
	return views, nil
}

// Get returns a single booking with a wider provider view. There is no
// ownership check on single-booking reads: any authenticated actor who
// knows the id may fetch it.
func (s *bookingService) Get(ctx context.Context, bookingID string) (*ports.BookingDetail, error) {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	detail := &ports.BookingDetail{
		ID:        b.ID,
		UserID:    b.UserID,
		Date:      b.Date,
		Complete:  b.Complete,
		CreatedAt: b.CreatedAt,
	}

	p, err := s.providers.FindByID(ctx, b.ProviderID)
	if err != nil {
		s.log.Warn().Err(err).Str("booking_id", b.ID).Str("provider_id", b.ProviderID).Msg("provider lookup failed")
		return detail, nil
	}
	detail.Provider = ports.ProviderDetail{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Tel:         p.Tel,
	}
	return detail, nil
}

// Create admits a new booking. The provider must exist, and non-admin
// actors may not exceed MaxPendingBookings pending bookings. The count and
// the insert are two store operations; concurrent creations by the same
// user can race past the check, which mirrors the store's non-transactional
// model.
func (s *bookingService) Create(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
	if _, err := s.providers.FindByID(ctx, in.ProviderID); err != nil {
		return nil, err
	}

	pending, err := s.bookings.CountPending(ctx, in.Actor.ID)
	if err != nil {
		return nil, fmt.Errorf("count pending bookings: %w", err)
	}
	if pending >= domain.MaxPendingBookings && !in.Actor.Role.IsAdmin() {
		metrics.BookingsQuotaRejectedTotal.Inc()
		s.log.Info().
			Str("user_id", in.Actor.ID).
			Int64("pending", pending).
			Msg("booking rejected: pending quota reached")
		return nil, domain.ErrQuotaExceeded
	}

	booking := &domain.Booking{
		UserID:     in.Actor.ID,
		ProviderID: in.ProviderID,
		Date:       in.Date,
		Complete:   in.Complete,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create booking")
		return nil, err
	}

	metrics.BookingsCreatedTotal.WithLabelValues(string(in.Actor.Role)).Inc()
	s.log.Info().
		Str("booking_id", created.ID).
		Str("user_id", in.Actor.ID).
		Str("provider_id", in.ProviderID).
		Msg("booking created")

	return created, nil
}

// Update applies a patch to the mutable booking fields after the
// ownership gate: only the owner or an admin may modify a booking.
func (s *bookingService) Update(ctx context.Context, in ports.UpdateBookingInput) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if !booking.CanModify(in.Actor.ID, in.Actor.Role) {
		s.log.Info().
			Str("booking_id", in.BookingID).
			Str("user_id", in.Actor.ID).
			Msg("booking update denied: not owner")
		return nil, domain.ErrForbidden
	}

	updated, err := s.bookings.Update(ctx, in.BookingID, in.Patch)
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return updated, nil
}

// Delete removes a booking permanently. Same ownership gate as Update;
// no cascade follows.
func (s *bookingService) Delete(ctx context.Context, actor ports.Actor, bookingID string) error {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if !booking.CanModify(actor.ID, actor.Role) {
		s.log.Info().
			Str("booking_id", bookingID).
			Str("user_id", actor.ID).
			Msg("booking delete denied: not owner")
		return domain.ErrForbidden
	}

	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	s.log.Info().Str("booking_id", bookingID).Str("user_id", actor.ID).Msg("booking deleted")
	return nil
}
