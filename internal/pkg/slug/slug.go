// Package slug derives deterministic storage object keys from free-text
// cut metadata. Keys are a pure function of the input text: uploading two
// images with identical metadata targets the same object name.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Sanitize lower-cases the value, strips Unicode diacritics (NFD
// decomposition, combining marks removed) and collapses internal
// whitespace runs to single hyphens. Punctuation and all other
// characters pass through unchanged. Empty or whitespace-only input
// sanitizes to the empty string.
func Sanitize(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(value))
	pendingHyphen := false
	for _, r := range norm.NFD.String(value) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsSpace(r) {
			pendingHyphen = true
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// KeyFields are the four metadata fields an object key is built from,
// in their fixed join order.
type KeyFields struct {
	ProductType   string
	CutType       string
	Material      string
	MaterialColor string
}

// MakeKey joins the sanitized fields with underscores in the order
// productType_cutType_material_materialColor. Fields that sanitize to
// the empty string are omitted, so no leading, trailing or doubled
// separators appear in the result.
func MakeKey(f KeyFields) string {
	parts := make([]string, 0, 4)
	for _, raw := range []string{f.ProductType, f.CutType, f.Material, f.MaterialColor} {
		if p := Sanitize(raw); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "_")
}
