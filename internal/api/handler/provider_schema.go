package handler

import "time"

type providerRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Address     string `json:"address" validate:"required"`
	Description string `json:"description"`
	Tel         string `json:"tel"`
}

type deleteImageRequest struct {
	Key string `json:"key" validate:"required"`
}

type providerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description,omitempty"`
	Tel         string    `json:"tel,omitempty"`
	Images      []string  `json:"images"`
	Pic         string    `json:"pic"`
	CreatedAt   time.Time `json:"created_at"`
}

type listProvidersResponse struct {
	Count      int                `json:"count"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
	Data       []providerResponse `json:"data"`
}
