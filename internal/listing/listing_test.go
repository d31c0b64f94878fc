package listing

import (
	"fmt"
	"testing"

	"github.com/dhank77/akayacraft/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func products() []dto.ProductResponse {
	return []dto.ProductResponse{
		{ID: 1, Name: "Kipas Bambu Custom", Description: "Kipas tangan bambu untuk souvenir", Category: "Kipas"},
		{ID: 2, Name: "Mahkota Bunga Melati", Description: "Mahkota bunga segar pengantin", Category: "Mahkota"},
		{ID: 3, Name: "Stiker Label Snack", Description: "Stiker vinyl tahan minyak", Category: "Stiker"},
		{ID: 4, Name: "Undangan Klasik", Description: "Undangan pernikahan kertas art paper", Category: "Undangan"},
	}
}

func TestMatchesQuery(t *testing.T) {
	ps := products()

	assert.True(t, Matches(ps[0], Filter{Query: "kipas"}))
	assert.True(t, Matches(ps[0], Filter{Query: "BAMBU"}))
	// Query also searches the description.
	assert.True(t, Matches(ps[2], Filter{Query: "vinyl"}))
	assert.False(t, Matches(ps[1], Filter{Query: "kipas"}))
}

func TestMatchesCategory(t *testing.T) {
	ps := products()

	assert.True(t, Matches(ps[1], Filter{Category: "Mahkota"}))
	assert.False(t, Matches(ps[1], Filter{Category: "Kipas"}))

	// Wildcards pass everything.
	for _, cat := range []string{"", CategoryAll, "all"} {
		assert.True(t, Matches(ps[1], Filter{Category: cat}), "category %q", cat)
	}
}

func TestMatchesCombined(t *testing.T) {
	ps := products()

	assert.True(t, Matches(ps[1], Filter{Query: "bunga", Category: "Mahkota"}))
	assert.False(t, Matches(ps[1], Filter{Query: "bunga", Category: "Kipas"}))
}

func TestApplyPreservesOrder(t *testing.T) {
	got := Apply(products(), Filter{Query: "a"})
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].ID, got[i].ID)
	}
}

func TestHead(t *testing.T) {
	many := make([]dto.ProductResponse, 45)
	for i := range many {
		many[i] = dto.ProductResponse{ID: uint(i + 1)}
	}

	assert.Len(t, Head(many, 1), 20)
	assert.Len(t, Head(many, 2), 40)
	assert.Len(t, Head(many, 3), 45)
	// batches <= 0 means no cap.
	assert.Len(t, Head(many, 0), 45)
}

func TestRevealSequence(t *testing.T) {
	many := make([]dto.ProductResponse, 45)
	for i := range many {
		many[i] = dto.ProductResponse{ID: uint(i + 1)}
	}

	r := NewReveal()
	assert.Len(t, r.Window(many), 20)
	assert.True(t, r.HasMore(len(many)))

	r.More()
	assert.Len(t, r.Window(many), 40)
	assert.True(t, r.HasMore(len(many)))

	r.More()
	assert.Len(t, r.Window(many), 45)
	assert.False(t, r.HasMore(len(many)))

	// Further reveals on an exhausted list change nothing.
	r.More()
	assert.Len(t, r.Window(many), 45)

	r.Reset()
	assert.Len(t, r.Window(many), 20)
}

func TestRevealShortList(t *testing.T) {
	few := make([]dto.ProductResponse, 5)
	r := NewReveal()
	assert.Len(t, r.Window(few), 5)
	assert.False(t, r.HasMore(len(few)))
}

func TestStorefrontCategories(t *testing.T) {
	got := StorefrontCategories()
	assert.Equal(t, CategoryAll, got[0])
	assert.Len(t, got, len(Categories)+1)
}

func TestWhatsAppURLDefaultMessage(t *testing.T) {
	got := WhatsAppURL(7, "Kipas Bambu", "+62 812-3456-7890", nil)

	assert.Contains(t, got, "https://wa.me/6281234567890?text=")
	assert.Contains(t, got, "Kipas%20Bambu")
	assert.Contains(t, got, "%28ID%207%29")
	assert.NotContains(t, got, "+")
}

func TestWhatsAppURLCustomMessage(t *testing.T) {
	msg := "Halo, masih ready?"
	got := WhatsAppURL(7, "Kipas Bambu", "0812 3456 7890", &msg)

	assert.Equal(t, "https://wa.me/081234567890?text=Halo%2C%20masih%20ready%3F", got)
}

func TestFormatIDR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"15000", "Rp15.000,00"},
		{"1500", "Rp1.500,00"},
		{"150", "Rp150,00"},
		{"0", "Rp0,00"},
		{"1250000", "Rp1.250.000,00"},
		{"7500.5", "Rp7.500,50"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			d, err := decimal.NewFromString(tc.in)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, FormatIDR(d))
		})
	}
}

func ExampleFormatIDR() {
	fmt.Println(FormatIDR(decimal.NewFromInt(15000)))
	// Output: Rp15.000,00
}
