package ports

import (
	"context"

	"github.com/careslot/booking-api/internal/core/domain"
)

// ProviderPage carries pagination for the provider list. Page is 1-based.
type ProviderPage struct {
	Page  int
	Limit int
}

// ProviderRepository defines persistence operations for providers.
type ProviderRepository interface {
	// Create inserts a provider; returns domain.ErrProviderExists when the
	// unique name index rejects the document.
	Create(ctx context.Context, p *domain.Provider) (*domain.Provider, error)
	FindByID(ctx context.Context, id string) (*domain.Provider, error)
	// List returns a page of providers, newest first, plus the total count.
	List(ctx context.Context, page ProviderPage) ([]*domain.Provider, int64, error)
	Update(ctx context.Context, id string, p *domain.Provider) (*domain.Provider, error)
	// SetImages replaces the stored image key list.
	SetImages(ctx context.Context, id string, images []string) error
	Delete(ctx context.Context, id string) error
}
