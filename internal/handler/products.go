package handler

import (
	"net/http"
	"strconv"

	"github.com/dhank77/akayacraft/internal/apierror"
	"github.com/dhank77/akayacraft/internal/dto"
	"github.com/dhank77/akayacraft/internal/listing"
	"github.com/dhank77/akayacraft/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductsHandler serves the public storefront: no auth, active products only.
type ProductsHandler struct{ svc service.CatalogService }

func NewProductsHandler(svc service.CatalogService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// Page backs GET /products — the storefront page payload: the full active
// feed plus the facet list. Search, category filter, and batch reveal run
// client-side over this set.
func (h *ProductsHandler) Page(c *gin.Context) {
	products, err := h.svc.ListPublic(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StorefrontResponse{
		Products:   products,
		Categories: listing.StorefrontCategories(),
	})
}

// Feed backs GET /api/products — the active products as a flat JSON array,
// newest first. Optional q / category / batches params apply the same
// view-model the storefront uses client-side.
func (h *ProductsHandler) Feed(c *gin.Context) {
	products, err := h.svc.ListPublic(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := listing.Apply(products, listing.Filter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	})
	if raw := c.Query("batches"); raw != "" {
		batches, err := strconv.Atoi(raw)
		if err != nil || batches < 1 {
			c.JSON(http.StatusBadRequest, apierror.New("Parameter batches tidak valid"))
			return
		}
		out = listing.Head(out, batches)
	}
	c.JSON(http.StatusOK, out)
}

// Categories backs GET /api/categories — the suggested category set.
func (h *ProductsHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, listing.Categories)
}
