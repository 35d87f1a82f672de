package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careslot/booking-api/internal/core/domain"
	"github.com/careslot/booking-api/internal/core/ports"
	"github.com/careslot/booking-api/internal/metrics"
)

const (
	defaultProviderLimit = 25
	maxProviderLimit     = 100
)

type providerService struct {
	providers ports.ProviderRepository
	bookings  ports.BookingRepository
	storage   ports.ObjectStorage
	log       zerolog.Logger
}

// NewProviderService returns a ProviderService implementation.
func NewProviderService(
	providers ports.ProviderRepository,
	bookings ports.BookingRepository,
	storage ports.ObjectStorage,
	log zerolog.Logger,
) ports.ProviderService {
	return &providerService{
		providers: providers,
		bookings:  bookings,
		storage:   storage,
		log:       log,
	}
}

func (s *providerService) List(ctx context.Context, page ports.ProviderPage) (*ports.ListProvidersResult, error) {
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit <= 0 {
		page.Limit = defaultProviderLimit
	}
	if page.Limit > maxProviderLimit {
		page.Limit = maxProviderLimit
	}

	items, total, err := s.providers.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}

	totalPages := int((total + int64(page.Limit) - 1) / int64(page.Limit))
	return &ports.ListProvidersResult{
		Items:      items,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *providerService) Get(ctx context.Context, id string) (*domain.Provider, error) {
	return s.providers.FindByID(ctx, id)
}

func (s *providerService) Create(ctx context.Context, in ports.CreateProviderInput) (*domain.Provider, error) {
	provider := &domain.Provider{
		Name:        in.Name,
		Address:     in.Address,
		Description: in.Description,
		Tel:         in.Tel,
		Images:      []string{},
		Pic:         domain.DefaultProviderPic,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.providers.Create(ctx, provider)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("provider_id", created.ID).Str("name", created.Name).Msg("provider created")
	return created, nil
}

func (s *providerService) Update(ctx context.Context, id string, in ports.CreateProviderInput) (*domain.Provider, error) {
	existing, err := s.providers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Address = in.Address
	existing.Description = in.Description
	existing.Tel = in.Tel

	updated, err := s.providers.Update(ctx, id, existing)
	if err != nil {
		return nil, fmt.Errorf("update provider: %w", err)
	}
	return updated, nil
}

// DeleteCascade removes a provider and everything that depends on it, in a
// fixed order: bookings first, then stored image objects, then the provider
// record. The sequence is explicit so no booking is ever left referencing a
// deleted provider.
func (s *providerService) DeleteCascade(ctx context.Context, id string) error {
	provider, err := s.providers.FindByID(ctx, id)
	if err != nil {
		return err
	}

	removed, err := s.bookings.DeleteByProvider(ctx, id)
	if err != nil {
		return fmt.Errorf("cascade delete bookings: %w", err)
	}

	for _, key := range provider.Images {
		if err := s.storage.Delete(ctx, key); err != nil {
			// Orphaned objects are preferable to a half-deleted provider.
			s.log.Warn().Err(err).Str("key", key).Msg("failed to delete stored image")
		}
	}

	if err := s.providers.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete provider: %w", err)
	}

	metrics.ProvidersCascadeDeletedTotal.Inc()
	s.log.Info().
		Str("provider_id", id).
		Int64("bookings_removed", removed).
		Int("images_removed", len(provider.Images)).
		Msg("provider deleted with cascade")

	return nil
}

// UploadImages stores each file under "<providerID>/<generated-name><ext>"
// and appends the new keys to the provider's image list. Keys carry a
// generated name so re-uploading the same filename never overwrites an
// earlier object.
func (s *providerService) UploadImages(ctx context.Context, id string, files []ports.ImageUpload) (*domain.Provider, error) {
	provider, err := s.providers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(files))
	for _, f := range files {
		key := id + "/" + uuid.NewString() + path.Ext(f.Filename)
		if err := s.storage.Put(ctx, key, f.ContentType, f.Size, f.Body); err != nil {
			return nil, fmt.Errorf("upload image %q: %w", f.Filename, err)
		}
		keys = append(keys, key)
	}

	provider.Images = append(provider.Images, keys...)
	if err := s.providers.SetImages(ctx, id, provider.Images); err != nil {
		return nil, fmt.Errorf("save image keys: %w", err)
	}

	metrics.ImagesUploadedTotal.Add(float64(len(keys)))
	s.log.Info().Str("provider_id", id).Int("count", len(keys)).Msg("provider images uploaded")
	return provider, nil
}

// DeleteImage removes one image by exact key match. Fails with
// ErrImageNotFound when the key is not on the provider's list.
func (s *providerService) DeleteImage(ctx context.Context, id, key string) error {
	provider, err := s.providers.FindByID(ctx, id)
	if err != nil {
		return err
	}

	found := false
	remaining := make([]string, 0, len(provider.Images))
	for _, img := range provider.Images {
		if img == key {
			found = true
			continue
		}
		remaining = append(remaining, img)
	}
	if !found {
		return domain.ErrImageNotFound
	}

	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete stored image: %w", err)
	}
	if err := s.providers.SetImages(ctx, id, remaining); err != nil {
		return fmt.Errorf("save image keys: %w", err)
	}

	s.log.Info().Str("provider_id", id).Str("key", key).Msg("provider image deleted")
	return nil
}
