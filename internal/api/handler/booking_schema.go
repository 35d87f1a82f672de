package handler

import "time"

// --- Request / Response types ---

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createBookingRequest struct {
	Date     time.Time `json:"date" validate:"required"`
	Complete bool      `json:"complete"`
}

type updateBookingRequest struct {
	Date     *time.Time `json:"date,omitempty"`
	Complete *bool      `json:"complete,omitempty"`
}

type bookingResponse struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Provider  string    `json:"provider"`
	Date      time.Time `json:"date"`
	Complete  bool      `json:"complete"`
	CreatedAt time.Time `json:"created_at"`
}

// providerSummaryResponse is the provider sub-view in list items; Pic is a
// fully qualified image URL.
type providerSummaryResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Tel     string `json:"tel,omitempty"`
	Address string `json:"address"`
	Pic     string `json:"pic"`
}

type bookingViewResponse struct {
	ID        string                  `json:"id"`
	User      string                  `json:"user"`
	Date      time.Time               `json:"date"`
	Complete  bool                    `json:"complete"`
	CreatedAt time.Time               `json:"created_at"`
	Provider  providerSummaryResponse `json:"provider"`
}

type listBookingsResponse struct {
	Count int                   `json:"count"`
	Data  []bookingViewResponse `json:"data"`
}

// providerDetailResponse is the wider provider sub-view on single reads.
type providerDetailResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Tel         string `json:"tel,omitempty"`
}

type bookingDetailResponse struct {
	ID        string                 `json:"id"`
	User      string                 `json:"user"`
	Date      time.Time              `json:"date"`
	Complete  bool                   `json:"complete"`
	CreatedAt time.Time              `json:"created_at"`
	Provider  providerDetailResponse `json:"provider"`
}
