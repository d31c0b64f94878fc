package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dhank77/akayacraft/internal/apierror"
	"github.com/dhank77/akayacraft/internal/dto"
	"github.com/dhank77/akayacraft/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// tagMessage translates a validator tag into the Indonesian field message.
func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "wajib diisi"
	case "min":
		return "minimal " + fe.Param()
	case "max":
		return "maksimal " + fe.Param()
	default:
		return "tidak valid"
	}
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON tidak valid: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = tagMessage(fe)
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQueryAndValidate is the query-string twin of bindAndValidate.
func bindQueryAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parameter tidak valid: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = tagMessage(fe)
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondServiceError translates the service error taxonomy into HTTP.
func respondServiceError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(vErr.Fields))
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Produk tidak ditemukan"))
	default:
		log.Error().
			Str("request_id", c.GetString("request_id")).
			Err(err).
			Msg("catalog operation failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Terjadi kesalahan pada server"))
	}
}

// parseID parses the :id route param; writes a 400 response on failure.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID tidak valid"))
		return 0, false
	}
	return uint(id), true
}

// formImage reads the optional multipart "image" part into an upload DTO.
// A missing file (or a non-multipart form) yields nil, nil.
func formImage(c *gin.Context) (*dto.ImageUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &dto.ImageUpload{Filename: fh.Filename, Size: fh.Size, Data: data}, nil
}

// ── Flash notices ─────────────────────────────────────────────────────────────
// Admin mutations redirect back to the listing; the success notice rides a
// short-lived cookie that the listing pops on its next render.

const flashCookie = "flash"

func setFlash(c *gin.Context, msg string) {
	c.SetCookie(flashCookie, msg, 60, "/", "", false, true)
}

func popFlash(c *gin.Context) *string {
	msg, err := c.Cookie(flashCookie)
	if err != nil || msg == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return &msg
}
