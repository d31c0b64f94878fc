package handler

import (
	"net/http"

	"github.com/dhank77/akayacraft/internal/apierror"
	"github.com/dhank77/akayacraft/internal/dto"
	"github.com/dhank77/akayacraft/internal/listing"
	"github.com/dhank77/akayacraft/internal/service"

	"github.com/gin-gonic/gin"
)

const adminListingPath = "/admin/products"

// AdminProductsHandler serves the JWT-protected product management surface.
// Mutations redirect back to the listing with an Indonesian flash notice;
// validation failures return the field→message map for form redisplay.
type AdminProductsHandler struct{ svc service.CatalogService }

func NewAdminProductsHandler(svc service.CatalogService) *AdminProductsHandler {
	return &AdminProductsHandler{svc: svc}
}

// Index backs GET /admin/products — one 12-row page, newest first.
func (h *AdminProductsHandler) Index(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListAdmin(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AdminProductIndexResponse{
		Notice:   popFlash(c),
		Products: *resp,
	})
}

// Create backs GET /admin/products/create — the create form props.
func (h *AdminProductsHandler) Create(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ProductFormResponse{Categories: listing.Categories})
}

// Store backs POST /admin/products (multipart, image required).
func (h *AdminProductsHandler) Store(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Form tidak valid: "+err.Error()))
		return
	}
	img, err := formImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Gagal membaca berkas gambar"))
		return
	}

	if _, err := h.svc.Create(c.Request.Context(), req, img); err != nil {
		respondServiceError(c, err)
		return
	}

	setFlash(c, "Produk berhasil ditambahkan!")
	c.Redirect(http.StatusSeeOther, adminListingPath)
}

// Edit backs GET /admin/products/:id/edit — the edit form props.
func (h *AdminProductsHandler) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductFormResponse{
		Product:    product,
		Categories: listing.Categories,
	})
}

// Update backs PUT /admin/products/:id (multipart, image optional).
func (h *AdminProductsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Form tidak valid: "+err.Error()))
		return
	}
	img, err := formImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Gagal membaca berkas gambar"))
		return
	}

	if _, err := h.svc.Update(c.Request.Context(), id, req, img); err != nil {
		respondServiceError(c, err)
		return
	}

	setFlash(c, "Produk berhasil diperbarui!")
	c.Redirect(http.StatusSeeOther, adminListingPath)
}

// Destroy backs DELETE /admin/products/:id — permanent, image included.
func (h *AdminProductsHandler) Destroy(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	setFlash(c, "Produk berhasil dihapus!")
	c.Redirect(http.StatusSeeOther, adminListingPath)
}
