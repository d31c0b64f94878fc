// Package listing is the storefront view-model: filtering, batched reveal,
// WhatsApp deep links, and IDR price formatting for the public product feed.
package listing

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/dhank77/akayacraft/internal/dto"

	"github.com/shopspring/decimal"
)

// BatchSize is how many products each reveal step adds to the visible set.
const BatchSize = 20

// CategoryAll is the storefront facet meaning "no category filter".
const CategoryAll = "Semua"

// Categories is the suggested set offered by the admin form. The data layer
// keeps category an open string, so this list is advisory, not enforced.
var Categories = []string{
	"Undangan",
	"Flash Card",
	"Mahkota",
	"Stiker",
	"Kipas",
	"Souvenir",
	"Dekorasi",
	"Lainnya",
}

// StorefrontCategories returns the facet list shown to visitors: the wildcard
// followed by the suggested set.
func StorefrontCategories() []string {
	return append([]string{CategoryAll}, Categories...)
}

// Filter holds the client-supplied storefront facets.
type Filter struct {
	Query    string
	Category string
}

// Matches reports whether p passes the filter: a case-insensitive substring
// test against name+description, and an exact (case-sensitive) category match
// unless the wildcard is selected.
func Matches(p dto.ProductResponse, f Filter) bool {
	okCat := f.Category == "" || f.Category == CategoryAll || f.Category == "all" ||
		p.Category == f.Category
	if !okCat {
		return false
	}
	if f.Query == "" {
		return true
	}
	haystack := strings.ToLower(p.Name + " " + p.Description)
	return strings.Contains(haystack, strings.ToLower(f.Query))
}

// Apply filters products, preserving their order (newest-first as served).
func Apply(products []dto.ProductResponse, f Filter) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		if Matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

// Head returns the first batches*BatchSize products; batches <= 0 means all.
func Head(products []dto.ProductResponse, batches int) []dto.ProductResponse {
	if batches <= 0 {
		return products
	}
	n := batches * BatchSize
	if n >= len(products) {
		return products
	}
	return products[:n]
}

// Reveal models the storefront's incremental reveal: the visible window grows
// one batch at a time and snaps back to the first batch whenever the filter
// changes.
type Reveal struct {
	visible int
}

func NewReveal() *Reveal { return &Reveal{visible: BatchSize} }

// More grows the window by one batch.
func (r *Reveal) More() { r.visible += BatchSize }

// Reset snaps back to the first batch; call on every filter change.
func (r *Reveal) Reset() { r.visible = BatchSize }

// HasMore reports whether another reveal would grow the visible set.
func (r *Reveal) HasMore(total int) bool { return r.visible < total }

// Window returns the currently visible slice of the filtered products.
func (r *Reveal) Window(products []dto.ProductResponse) []dto.ProductResponse {
	if r.visible >= len(products) {
		return products
	}
	return products[:r.visible]
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// WhatsAppURL builds the wa.me deep link for a product: the configured number
// stripped to digits, with the product's template text or the default
// Indonesian inquiry message.
func WhatsAppURL(id uint, name, number string, message *string) string {
	text := ""
	if message != nil && *message != "" {
		text = *message
	} else {
		text = fmt.Sprintf("Halo Akayacraft, saya tertarik dengan produk %s (ID %d).", name, id)
	}
	// QueryEscape uses "+" for spaces; WhatsApp expects percent-encoding.
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/" + nonDigits.ReplaceAllString(number, "") + "?text=" + encoded
}

// FormatIDR renders a price the way the storefront shows it: "Rp15.000,00".
func FormatIDR(d decimal.Decimal) string {
	fixed := d.StringFixed(2) // e.g. "15000.00"
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString("Rp")
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}
