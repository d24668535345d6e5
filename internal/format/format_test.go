package format

import (
	"math"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"

	"github.com/pders01/adfind/internal/ads"
)

// compact drops every kind of space so assertions do not depend on which
// grouping separator the locale data uses.
func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func TestFormatPrice_Absent(t *testing.T) {
	for _, p := range []ads.Price{{}, {Value: 100}, ads.NewPrice(math.NaN()), ads.NewPrice(math.Inf(1))} {
		assert.Equal(t, NegotiablePrice, FormatPrice(p))
	}
}

func TestFormatPrice_Grouping(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{25000, "25000сом"},
		{0, "0сом"},
		{999, "999сом"},
		{1234567, "1234567сом"},
		{1500.5, "1500,5сом"},
		{-3000, "-3000сом"},
	}
	for _, tt := range tests {
		got := FormatPrice(ads.NewPrice(tt.value))
		assert.True(t, strings.HasSuffix(got, " сом"), "got %q", got)
		assert.Equal(t, tt.want, compact(got), "value %v", tt.value)
	}
}

func TestFormatPrice_GroupsThousands(t *testing.T) {
	got := FormatPrice(ads.NewPrice(25000))
	digits := strings.TrimSuffix(got, " сом")
	assert.NotEqual(t, "25000", digits, "expected a grouping separator in %q", got)
}

func TestFormatter_LocaleAndCurrency(t *testing.T) {
	f := New("en", "KGS")
	assert.Equal(t, "25,000 KGS", f.Price(ads.NewPrice(25000)))

	f = New("not a locale", "")
	assert.True(t, strings.HasSuffix(f.Price(ads.NewPrice(1)), " "+DefaultCurrency))
}

func TestChip(t *testing.T) {
	assert.Equal(t, "score 0.912", Chip(ads.Item{Score: ads.NewScore(0.912)}))
	assert.Equal(t, "score 1.000", Chip(ads.Item{Score: ads.NewScore(1)}))
	assert.Equal(t, "score 0.123", Chip(ads.Item{Score: ads.NewScore(0.12345)}))
	assert.Equal(t, LocalSearchChip, Chip(ads.Item{}))
}

func TestFallbacks(t *testing.T) {
	empty := ads.Item{}
	assert.Equal(t, "Untitled", Title(empty))
	assert.Equal(t, "City not specified", City(empty))
	assert.Equal(t, "No description", Description(empty))
	assert.Equal(t, "#", Href(empty))
	assert.Equal(t, "id —", Meta(empty))
	assert.Equal(t, "—", QueryEcho(""))

	full := ads.Item{ID: "7", Title: "Toyota Camry", City: "Bishkek", Description: "2012", URL: "https://lalafo.kg/ads/7"}
	assert.Equal(t, "Toyota Camry", Title(full))
	assert.Equal(t, "Bishkek", City(full))
	assert.Equal(t, "2012", Description(full))
	assert.Equal(t, "https://lalafo.kg/ads/7", Href(full))
	assert.Equal(t, "id 7", Meta(full))
	assert.Equal(t, "toyota", QueryEcho("toyota"))
}

func TestCounts(t *testing.T) {
	assert.Equal(t, "Results: 0", MetaCount(0))
	assert.Equal(t, "Results: 12", MetaCount(12))
	assert.Equal(t, "3 pcs", Badge(3))
}
