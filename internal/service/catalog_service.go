package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	// Raster formats the admin form accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/dhank77/akayacraft/internal/dto"
	"github.com/dhank77/akayacraft/internal/listing"
	"github.com/dhank77/akayacraft/internal/model"
	"github.com/dhank77/akayacraft/internal/repository"
	"github.com/dhank77/akayacraft/internal/storage"
	"github.com/dhank77/akayacraft/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// blobNamespace prefixes every product image key in the blob store.
const blobNamespace = "products"

const listingCacheKey = "catalog:active"

// CatalogService orchestrates validated product writes across the repository
// and the blob store so that every persisted product always references a blob
// that exists: new images are stored and committed before old ones are
// deleted, never the other way around.
type CatalogService interface {
	Create(ctx context.Context, req dto.CreateProductRequest, img *dto.ImageUpload) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uint) (*dto.ProductResponse, error)
	ListAdmin(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	// ListPublic returns all active products, newest first (the storefront feed).
	ListPublic(ctx context.Context) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateProductRequest, img *dto.ImageUpload) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uint) error
}

// CatalogConfig carries the tunables the service needs from the environment.
type CatalogConfig struct {
	MaxImageBytes int64
	// DefaultActive applies when the create form omits is_active.
	DefaultActive bool
	CacheTTL      time.Duration
}

type catalogService struct {
	repo    repository.ProductRepository
	blobs   storage.BlobStore
	rdb     *redis.Client
	janitor *worker.Dispatcher
	cfg     CatalogConfig
}

func NewCatalogService(
	repo repository.ProductRepository,
	blobs storage.BlobStore,
	rdb *redis.Client,
	janitor *worker.Dispatcher,
	cfg CatalogConfig,
) CatalogService {
	return &catalogService{repo: repo, blobs: blobs, rdb: rdb, janitor: janitor, cfg: cfg}
}

// ─── Create ──────────────────────────────────────────────────────────────────

func (s *catalogService) Create(ctx context.Context, req dto.CreateProductRequest, img *dto.ImageUpload) (*dto.ProductResponse, error) {
	price, ext, vErr := s.validateForm(req.Name, req.Description, req.Price,
		req.Category, req.WhatsappNumber, img, true)
	if vErr != nil {
		return nil, vErr
	}

	key, err := s.blobs.Put(ctx, blobNamespace, ext, img.Data)
	if err != nil {
		return nil, &StorageError{Op: "simpan gambar", Err: err}
	}

	active := s.cfg.DefaultActive
	if req.IsActive != nil {
		active = *req.IsActive
	}

	p := &model.Product{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           price.Round(2),
		ImagePath:       key,
		Category:        req.Category,
		WhatsappNumber:  req.WhatsappNumber,
		WhatsappMessage: req.WhatsappMessage,
		IsActive:        active,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		// The row never landed, so the fresh blob is an orphan.
		s.discardBlob(ctx, key)
		return nil, &StorageError{Op: "simpan produk", Err: err}
	}

	s.invalidateListing(ctx)
	return s.toResponse(p), nil
}

// ─── Read ────────────────────────────────────────────────────────────────────

func (s *catalogService) Get(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(p), nil
}

func (s *catalogService) ListAdmin(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, &StorageError{Op: "muat daftar produk", Err: err}
	}

	data := make([]dto.ProductResponse, len(products))
	for i := range products {
		data[i] = *s.toResponse(&products[i])
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.ProductListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *catalogService) ListPublic(ctx context.Context) ([]dto.ProductResponse, error) {
	if cached := s.cachedListing(ctx); cached != nil {
		return cached, nil
	}

	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, &StorageError{Op: "muat produk aktif", Err: err}
	}
	data := make([]dto.ProductResponse, len(products))
	for i := range products {
		data[i] = *s.toResponse(&products[i])
	}

	s.storeListing(ctx, data)
	return data, nil
}

// ─── Update ──────────────────────────────────────────────────────────────────

func (s *catalogService) Update(ctx context.Context, id uint, req dto.UpdateProductRequest, img *dto.ImageUpload) (*dto.ProductResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	price, ext, vErr := s.validateForm(req.Name, req.Description, req.Price,
		req.Category, req.WhatsappNumber, img, false)
	if vErr != nil {
		return nil, vErr
	}

	oldKey := ""
	if img != nil {
		newKey, err := s.blobs.Put(ctx, blobNamespace, ext, img.Data)
		if err != nil {
			return nil, &StorageError{Op: "simpan gambar", Err: err}
		}
		oldKey = p.ImagePath
		p.ImagePath = newKey
	}

	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.Price = price.Round(2)
	p.Category = req.Category
	p.WhatsappNumber = req.WhatsappNumber
	p.WhatsappMessage = req.WhatsappMessage
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if oldKey != "" {
			// The row still references the old blob — discard the new one.
			s.discardBlob(ctx, p.ImagePath)
		}
		return nil, &StorageError{Op: "perbarui produk", Err: err}
	}

	// Only after the new key is durably referenced may the old blob go.
	if oldKey != "" {
		s.discardBlob(ctx, oldKey)
	}

	s.invalidateListing(ctx)
	return s.toResponse(p), nil
}

// ─── Delete ──────────────────────────────────────────────────────────────────

func (s *catalogService) Delete(ctx context.Context, id uint) error {
	p, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	// Best effort: an orphaned blob beats a phantom product row, so a failed
	// blob delete never blocks removing the record.
	s.discardBlob(ctx, p.ImagePath)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return &StorageError{Op: "hapus produk", Err: err}
	}

	s.invalidateListing(ctx)
	return nil
}

// ─── Validation ──────────────────────────────────────────────────────────────

// validateForm applies the fixed rule set shared by create and update and
// returns the parsed price and image extension. The returned field names match
// the admin form inputs.
func (s *catalogService) validateForm(name, description, price, category, whatsappNumber string, img *dto.ImageUpload, imageRequired bool) (decimal.Decimal, string, *ValidationError) {
	fields := make(map[string]string)
	var parsed decimal.Decimal

	if strings.TrimSpace(name) == "" {
		fields["name"] = "Nama produk wajib diisi"
	} else if utf8.RuneCountInString(strings.TrimSpace(name)) > 255 {
		fields["name"] = "Nama produk maksimal 255 karakter"
	}
	if strings.TrimSpace(description) == "" {
		fields["description"] = "Deskripsi wajib diisi"
	}
	if strings.TrimSpace(price) == "" {
		fields["price"] = "Harga wajib diisi"
	} else if d, err := decimal.NewFromString(strings.TrimSpace(price)); err != nil {
		fields["price"] = "Harga harus berupa angka"
	} else if d.IsNegative() {
		fields["price"] = "Harga tidak boleh negatif"
	} else {
		parsed = d
	}
	if strings.TrimSpace(category) == "" {
		fields["category"] = "Kategori wajib diisi"
	}
	if strings.TrimSpace(whatsappNumber) == "" {
		fields["whatsapp_number"] = "Nomor WhatsApp wajib diisi"
	} else if !phonePattern.MatchString(normalizePhone(whatsappNumber)) {
		fields["whatsapp_number"] = "Nomor WhatsApp tidak valid"
	}

	ext := ""
	if img == nil {
		if imageRequired {
			fields["image"] = "Gambar produk wajib diunggah"
		}
	} else if e, msg := s.checkImage(img); msg != "" {
		fields["image"] = msg
	} else {
		ext = e
	}

	if len(fields) > 0 {
		return decimal.Decimal{}, "", &ValidationError{Fields: fields}
	}
	return parsed, ext, nil
}

// phonePattern matches a normalized number: digits with an optional leading +.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

func normalizePhone(number string) string {
	return phoneSeparators.Replace(strings.TrimSpace(number))
}

// checkImage verifies size and that the bytes decode as an allowed raster
// format, returning the file extension to store the blob under.
func (s *catalogService) checkImage(img *dto.ImageUpload) (string, string) {
	size := img.Size
	if n := int64(len(img.Data)); n > size {
		size = n
	}
	if size > s.cfg.MaxImageBytes {
		return "", fmt.Sprintf("Ukuran gambar maksimal %dMB", s.cfg.MaxImageBytes>>20)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return "", "File harus berupa gambar (jpeg, png, jpg, atau gif)"
	}
	switch format {
	case "jpeg":
		return "jpg", ""
	case "png", "gif":
		return format, ""
	}
	return "", "File harus berupa gambar (jpeg, png, jpg, atau gif)"
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (s *catalogService) find(ctx context.Context, id uint) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, &StorageError{Op: "muat produk", Err: err}
	}
	return p, nil
}

// discardBlob deletes a blob that no product references anymore; failures fall
// back to the asynchronous cleanup queue.
func (s *catalogService) discardBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("blob delete failed, enqueueing cleanup")
		if qErr := s.janitor.EnqueueBlobCleanup(ctx, key); qErr != nil {
			log.Error().Str("key", key).Err(qErr).Msg("cleanup enqueue failed; orphan blob left behind")
		}
	}
}

func (s *catalogService) cachedListing(ctx context.Context) []dto.ProductResponse {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, listingCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var data []dto.ProductResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil
	}
	return data
}

func (s *catalogService) storeListing(ctx context.Context, data []dto.ProductResponse) {
	if s.rdb == nil {
		return
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, listingCacheKey, encoded, s.cfg.CacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("listing cache write failed")
	}
}

func (s *catalogService) invalidateListing(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, listingCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("listing cache invalidation failed")
	}
}

func (s *catalogService) toResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price.StringFixed(2),
		PriceFormatted:  listing.FormatIDR(p.Price),
		ImagePath:       p.ImagePath,
		ImageURL:        s.blobs.URL(p.ImagePath),
		Category:        p.Category,
		WhatsappNumber:  p.WhatsappNumber,
		WhatsappMessage: p.WhatsappMessage,
		WhatsappURL:     listing.WhatsAppURL(p.ID, p.Name, p.WhatsappNumber, p.WhatsappMessage),
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
