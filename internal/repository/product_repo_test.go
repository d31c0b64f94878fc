package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/dhank77/akayacraft/internal/dto"
	"github.com/dhank77/akayacraft/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Product{}))
	return db
}

func newProduct(name string, active bool) *model.Product {
	return &model.Product{
		Name:           name,
		Description:    "deskripsi " + name,
		Price:          decimal.NewFromInt(15000),
		ImagePath:      "products/" + name + ".jpg",
		Category:       "Souvenir",
		WhatsappNumber: "+6281234567890",
		IsActive:       active,
	}
}

func TestProductRepoCreateAndFind(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	ctx := context.Background()

	p := newProduct("kipas", true)
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID)

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "kipas", found.Name)
	assert.True(t, found.Price.Equal(decimal.NewFromInt(15000)))
}

func TestProductRepoFindMissing(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepoListActive(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newProduct("aktif-1", true)))
	require.NoError(t, repo.Create(ctx, newProduct("nonaktif", false)))
	require.NoError(t, repo.Create(ctx, newProduct("aktif-2", true)))

	products, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	// Newest first; hidden products never appear.
	assert.Equal(t, "aktif-2", products[0].Name)
	assert.Equal(t, "aktif-1", products[1].Name)
}

func TestProductRepoListPagination(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		require.NoError(t, repo.Create(ctx, newProduct(fmt.Sprintf("produk-%02d", i), i%2 == 0)))
	}

	page1, total, err := repo.List(ctx, dto.ProductFilter{Page: 1, Limit: 12})
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)
	assert.Len(t, page1, 12)
	// Admin listing includes hidden products, newest first.
	assert.Equal(t, "produk-14", page1[0].Name)

	page2, total, err := repo.List(ctx, dto.ProductFilter{Page: 2, Limit: 12})
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)
	assert.Len(t, page2, 3)
	assert.Equal(t, "produk-00", page2[2].Name)
}

func TestProductRepoUpdate(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	ctx := context.Background()

	p := newProduct("lama", true)
	require.NoError(t, repo.Create(ctx, p))

	p.Name = "baru"
	p.IsActive = false
	require.NoError(t, repo.Update(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "baru", found.Name)
	assert.False(t, found.IsActive)
}

func TestProductRepoDelete(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	ctx := context.Background()

	p := newProduct("hapus", true)
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Deleting twice is not idempotent.
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), gorm.ErrRecordNotFound)
}
