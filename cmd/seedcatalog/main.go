// Command seedcatalog populates an empty catalog with demo products so the
// storefront has something to show during development.
package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/dhank77/akayacraft/internal/config"
	"github.com/dhank77/akayacraft/internal/infra"
	"github.com/dhank77/akayacraft/internal/model"
	"github.com/dhank77/akayacraft/internal/storage"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	name        string
	description string
	price       int64
	category    string
	tint        color.RGBA
}

var seeds = []seedProduct{
	{"Undangan Pernikahan Klasik", "Undangan pernikahan dengan desain klasik elegan, kertas art paper 260gsm.", 5000, "Undangan", color.RGBA{0xc9, 0xa8, 0x7c, 0xff}},
	{"Flash Card Hewan", "Satu set flash card edukasi bergambar hewan untuk anak usia dini, 30 kartu.", 25000, "Flash Card", color.RGBA{0x7c, 0xb3, 0xc9, 0xff}},
	{"Mahkota Bunga Melati", "Mahkota bunga melati segar untuk pengantin, dirangkai sehari sebelum acara.", 150000, "Mahkota", color.RGBA{0xe8, 0xe4, 0xd8, 0xff}},
	{"Stiker Label Snack", "Stiker label kemasan snack, bahan vinyl tahan minyak, minimal order 50 pcs.", 1500, "Stiker", color.RGBA{0xd8, 0x7c, 0x9a, 0xff}},
	{"Kipas Bambu Custom", "Kipas tangan bambu dengan cetak nama dan tanggal acara, cocok untuk souvenir.", 7500, "Kipas", color.RGBA{0x9a, 0xc9, 0x7c, 0xff}},
	{"Souvenir Gantungan Kunci Akrilik", "Gantungan kunci akrilik custom dua sisi, tebal 3mm.", 6000, "Souvenir", color.RGBA{0xc9, 0x7c, 0x7c, 0xff}},
	{"Dekorasi Backdrop Lamaran", "Paket dekorasi backdrop lamaran sederhana, termasuk bunga artificial dan pemasangan.", 350000, "Dekorasi", color.RGBA{0xb0, 0x8c, 0xc9, 0xff}},
	{"Hampers Lebaran", "Paket hampers lebaran isi toples kue kering dan kartu ucapan custom.", 125000, "Lainnya", color.RGBA{0x7c, 0xc9, 0xb3, 0xff}},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	var count int64
	if err := db.Model(&model.Product{}).Count(&count).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to count products")
	}
	if count > 0 {
		log.Info().Int64("count", count).Msg("catalog already has products, nothing to seed")
		return
	}

	blobs, err := storage.NewDiskStore(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize blob storage")
	}

	ctx := context.Background()
	for _, s := range seeds {
		key, err := blobs.Put(ctx, "products", "png", placeholderPNG(s.tint))
		if err != nil {
			log.Fatal().Err(err).Str("name", s.name).Msg("failed to store placeholder image")
		}

		p := model.Product{
			Name:           s.name,
			Description:    s.description,
			Price:          decimal.NewFromInt(s.price),
			ImagePath:      key,
			Category:       s.category,
			WhatsappNumber: "+62 812-3456-7890",
			IsActive:       true,
		}
		if err := db.Create(&p).Error; err != nil {
			log.Fatal().Err(err).Str("name", s.name).Msg("failed to insert product")
		}
		log.Info().Uint("id", p.ID).Str("name", p.Name).Msg("seeded product")
	}

	log.Info().Int("count", len(seeds)).Msg("seeding complete")
}

// placeholderPNG renders a flat 640x480 tile in the given tint.
func placeholderPNG(tint color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			img.SetRGBA(x, y, tint)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Fatal().Err(err).Msg("failed to encode placeholder image")
	}
	return buf.Bytes()
}
