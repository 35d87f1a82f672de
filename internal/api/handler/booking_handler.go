package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/careslot/booking-api/internal/core/ports"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service ports.BookingService
	// imageBaseURL is prepended to stored image keys in responses.
	imageBaseURL string
}

func NewBookingHandler(service ports.BookingService, imageBaseURL string) *BookingHandler {
	return &BookingHandler{service: service, imageBaseURL: imageBaseURL}
}

// List handles GET /api/v1/bookings.
//
// @Summary      List bookings visible to the caller
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        complete  query     string  false  "Filter by completion state (true|false)"
// @Param        all       query     string  false  "Admins only: include every user's bookings (true|false)"
// @Success      200       {object}  listBookingsResponse
// @Failure      401       {object}  errorResponse
// @Router       /api/v1/bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	in := ports.ListBookingsInput{Actor: actor}
	if v := c.QueryParam("complete"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			in.Complete = &b
		}
	}
	// Mirror the historical query contract: all defaults to true for
	// admins; only an explicit all=false narrows an admin to their own.
	in.IncludeAll = c.QueryParam("all") != "false"

	views, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}

	data := make([]bookingViewResponse, len(views))
	for i, v := range views {
		data[i] = bookingViewResponse{
			ID:        v.ID,
			User:      v.UserID,
			Date:      v.Date,
			Complete:  v.Complete,
			CreatedAt: v.CreatedAt,
			Provider: providerSummaryResponse{
				ID:      v.Provider.ID,
				Name:    v.Provider.Name,
				Tel:     v.Provider.Tel,
				Address: v.Provider.Address,
				Pic:     imageURL(h.imageBaseURL, v.Provider.Pic),
			},
		}
	}

	return c.JSON(http.StatusOK, listBookingsResponse{Count: len(data), Data: data})
}

// Get handles GET /api/v1/bookings/:id.
//
// @Summary      Get a single booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  bookingDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bookingDetailResponse{
		ID:        detail.ID,
		User:      detail.UserID,
		Date:      detail.Date,
		Complete:  detail.Complete,
		CreatedAt: detail.CreatedAt,
		Provider: providerDetailResponse{
			ID:          detail.Provider.ID,
			Name:        detail.Provider.Name,
			Description: detail.Provider.Description,
			Tel:         detail.Provider.Tel,
		},
	})
}

// Create handles POST /api/v1/providers/:id/bookings.
//
// @Summary      Create a booking against a provider
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Provider id"
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  bookingResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/providers/{id}/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.Create(c.Request().Context(), ports.CreateBookingInput{
		Actor:      actor,
		ProviderID: c.Param("id"),
		Date:       req.Date,
		Complete:   req.Complete,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, bookingResponse{
		ID:        booking.ID,
		User:      booking.UserID,
		Provider:  booking.ProviderID,
		Date:      booking.Date,
		Complete:  booking.Complete,
		CreatedAt: booking.CreatedAt,
	})
}

// Update handles PUT /api/v1/bookings/:id.
//
// @Summary      Update a booking's mutable fields
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Booking id"
// @Param        body  body      updateBookingRequest  true  "Fields to change"
// @Success      200   {object}  bookingResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/bookings/{id} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	booking, err := h.service.Update(c.Request().Context(), ports.UpdateBookingInput{
		Actor:     actor,
		BookingID: c.Param("id"),
		Patch: ports.BookingPatch{
			Date:     req.Date,
			Complete: req.Complete,
		},
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bookingResponse{
		ID:        booking.ID,
		User:      booking.UserID,
		Provider:  booking.ProviderID,
		Date:      booking.Date,
		Complete:  booking.Complete,
		CreatedAt: booking.CreatedAt,
	})
}

// Delete handles DELETE /api/v1/bookings/:id.
//
// @Summary      Delete a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/bookings/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"data": map[string]any{}})
}

// imageURL prefixes a stored object key with the public storage base URL.
func imageURL(base, key string) string {
	if base == "" || key == "" {
		return key
	}
	return base + key
}
