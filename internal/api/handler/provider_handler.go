package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/careslot/booking-api/internal/core/domain"
	"github.com/careslot/booking-api/internal/core/ports"
)

// maxImageSize bounds a single uploaded image file.
const maxImageSize = 10 << 20 // 10 MiB

// ProviderHandler handles HTTP requests for the provider directory.
type ProviderHandler struct {
	service      ports.ProviderService
	imageBaseURL string
}

func NewProviderHandler(service ports.ProviderService, imageBaseURL string) *ProviderHandler {
	return &ProviderHandler{service: service, imageBaseURL: imageBaseURL}
}

// List handles GET /api/v1/providers.
//
// @Summary      List providers
// @Tags         providers
// @Produce      json
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listProvidersResponse
// @Router       /api/v1/providers [get]
func (h *ProviderHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ProviderPage{Page: page, Limit: limit})
	if err != nil {
		return err
	}

	data := make([]providerResponse, len(result.Items))
	for i, p := range result.Items {
		data[i] = h.toResponse(p)
	}

	return c.JSON(http.StatusOK, listProvidersResponse{
		Count:      len(data),
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Data:       data,
	})
}

// Get handles GET /api/v1/providers/:id.
//
// @Summary      Get a provider by id
// @Tags         providers
// @Produce      json
// @Param        id   path      string  true  "Provider id"
// @Success      200  {object}  providerResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/providers/{id} [get]
func (h *ProviderHandler) Get(c echo.Context) error {
	provider, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.toResponse(provider))
}

// Create handles POST /api/v1/providers.
//
// @Summary      Create a provider
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      providerRequest  true  "Provider details"
// @Success      201   {object}  providerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/providers [post]
func (h *ProviderHandler) Create(c echo.Context) error {
	var req providerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	provider, err := h.service.Create(c.Request().Context(), ports.CreateProviderInput{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Tel:         req.Tel,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, h.toResponse(provider))
}

// Update handles PUT /api/v1/providers/:id.
//
// @Summary      Update a provider
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Provider id"
// @Param        body  body      providerRequest  true  "Provider details"
// @Success      200   {object}  providerResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/providers/{id} [put]
func (h *ProviderHandler) Update(c echo.Context) error {
	var req providerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	provider, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.CreateProviderInput{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Tel:         req.Tel,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.toResponse(provider))
}

// Delete handles DELETE /api/v1/providers/:id. Removing a provider also
// removes its bookings and stored images.
//
// @Summary      Delete a provider and its bookings and images
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Provider id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/providers/{id} [delete]
func (h *ProviderHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteCascade(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"data": map[string]any{}})
}

// UploadImages handles PUT /api/v1/providers/:id/images. The multipart form
// may carry any number of files; each must be an image no larger than 10 MiB.
//
// @Summary      Upload provider images
// @Tags         providers
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Provider id"
// @Param        images  formData  file    true  "Image files"
// @Success      200     {object}  providerResponse
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/v1/providers/{id}/images [put]
func (h *ProviderHandler) UploadImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form required")
	}

	var headers []*multipart.FileHeader
	for _, fhs := range form.File {
		headers = append(headers, fhs...)
	}
	if len(headers) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no files uploaded")
	}

	uploads := make([]ports.ImageUpload, 0, len(headers))
	for _, fh := range headers {
		contentType := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			return echo.NewHTTPError(http.StatusBadRequest, "only image files are allowed")
		}
		if fh.Size > maxImageSize {
			return echo.NewHTTPError(http.StatusBadRequest, "image exceeds the 10MB limit")
		}

		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
		}
		defer f.Close()

		uploads = append(uploads, ports.ImageUpload{
			Filename:    fh.Filename,
			ContentType: contentType,
			Size:        fh.Size,
			Body:        f,
		})
	}

	provider, err := h.service.UploadImages(c.Request().Context(), c.Param("id"), uploads)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.toResponse(provider))
}

// DeleteImage handles DELETE /api/v1/providers/:id/images.
//
// @Summary      Delete one provider image by key
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Provider id"
// @Param        body  body      deleteImageRequest  true  "Stored image key"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/providers/{id}/images [delete]
func (h *ProviderHandler) DeleteImage(c echo.Context) error {
	var req deleteImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteImage(c.Request().Context(), c.Param("id"), req.Key); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"data": map[string]any{}})
}

func (h *ProviderHandler) toResponse(p *domain.Provider) providerResponse {
	images := make([]string, len(p.Images))
	for i, key := range p.Images {
		images[i] = imageURL(h.imageBaseURL, key)
	}

	return providerResponse{
		ID:          p.ID,
		Name:        p.Name,
		Address:     p.Address,
		Description: p.Description,
		Tel:         p.Tel,
		Images:      images,
		Pic:         imageURL(h.imageBaseURL, p.Pic),
		CreatedAt:   p.CreatedAt,
	}
}
