package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateProductRequest carries the admin create form fields. Price arrives as
// the raw form string and is parsed during validation so a non-numeric value
// surfaces as a field error instead of a bind failure.
type CreateProductRequest struct {
	Name            string  `form:"name"`
	Description     string  `form:"description"`
	Price           string  `form:"price"`
	Category        string  `form:"category"`
	WhatsappNumber  string  `form:"whatsapp_number"`
	WhatsappMessage *string `form:"whatsapp_message"`
	// Nil means "field omitted": the configured default applies on create.
	IsActive *bool `form:"is_active"`
}

// UpdateProductRequest mirrors the create form; the image is optional and
// an omitted is_active leaves the stored flag unchanged.
type UpdateProductRequest struct {
	Name            string  `form:"name"`
	Description     string  `form:"description"`
	Price           string  `form:"price"`
	Category        string  `form:"category"`
	WhatsappNumber  string  `form:"whatsapp_number"`
	WhatsappMessage *string `form:"whatsapp_message"`
	IsActive        *bool   `form:"is_active"`
}

// ImageUpload is the transport-agnostic form of an uploaded image file.
// Handlers build it from the multipart part; services validate and store it.
type ImageUpload struct {
	Filename string
	Size     int64
	Data     []byte
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Page  int `form:"page,default=1"   validate:"min=1"`
	Limit int `form:"limit,default=12" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Price always carries 2 fractional digits ("15000.00").
	Price           string     `json:"price"`
	PriceFormatted  string     `json:"price_formatted"`
	ImagePath       string     `json:"image_path"`
	ImageURL        string     `json:"image_url"`
	Category        string     `json:"category"`
	WhatsappNumber  string     `json:"whatsapp_number"`
	WhatsappMessage *string    `json:"whatsapp_message"`
	WhatsappURL     string     `json:"whatsapp_url"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// AdminProductIndexResponse is the admin listing page payload: the paginated
// products plus the flash notice popped after a redirect, if any.
type AdminProductIndexResponse struct {
	Notice   *string             `json:"notice,omitempty"`
	Products ProductListResponse `json:"products"`
}

// ProductFormResponse backs the create/edit form pages.
type ProductFormResponse struct {
	Product    *ProductResponse `json:"product,omitempty"`
	Categories []string         `json:"categories"`
}

// StorefrontResponse is the public /products page payload.
type StorefrontResponse struct {
	Products   []ProductResponse `json:"products"`
	Categories []string          `json:"categories"`
}
