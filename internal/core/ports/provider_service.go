package ports

import (
	"context"
	"io"

	"github.com/careslot/booking-api/internal/core/domain"
)

// CreateProviderInput carries the fields accepted when creating or
// replacing a provider record.
type CreateProviderInput struct {
	Name        string
	Address     string
	Description string
	Tel         string
}

// ImageUpload is one uploaded file: its original name plus content.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ListProvidersResult is returned by List.
type ListProvidersResult struct {
	Items      []*domain.Provider
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProviderService defines use-case operations for the provider directory.
type ProviderService interface {
	List(ctx context.Context, page ProviderPage) (*ListProvidersResult, error)
	Get(ctx context.Context, id string) (*domain.Provider, error)
	Create(ctx context.Context, in CreateProviderInput) (*domain.Provider, error)
	Update(ctx context.Context, id string, in CreateProviderInput) (*domain.Provider, error)
	// DeleteCascade removes the provider's bookings and stored images
	// before deleting the provider record itself.
	DeleteCascade(ctx context.Context, id string) error
	UploadImages(ctx context.Context, id string, files []ImageUpload) (*domain.Provider, error)
	DeleteImage(ctx context.Context, id, key string) error
}
