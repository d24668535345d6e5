package ads

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResults_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantIDs []ItemID
	}{
		{
			name:    "bare array",
			body:    `[{"id":7,"title":"Toyota Camry","score":0.912},{"id":8}]`,
			wantIDs: []ItemID{"7", "8"},
		},
		{
			name:    "object with results",
			body:    `{"query":"iphone 13","results":[{"id":1,"title":"iPhone 13","price":25000,"city":"Bishkek"}]}`,
			wantIDs: []ItemID{"1"},
		},
		{
			name:    "object without results",
			body:    `{"query":"x","count":0}`,
			wantIDs: []ItemID{},
		},
		{
			name:    "results is not an array",
			body:    `{"results":{"id":1}}`,
			wantIDs: []ItemID{},
		},
		{
			name:    "results is null",
			body:    `{"results":null}`,
			wantIDs: []ItemID{},
		},
		{
			name:    "top-level null",
			body:    `null`,
			wantIDs: []ItemID{},
		},
		{
			name:    "top-level string",
			body:    `"nothing here"`,
			wantIDs: []ItemID{},
		},
		{
			name:    "empty array",
			body:    ` [] `,
			wantIDs: []ItemID{},
		},
		{
			name:    "string ids keep their text",
			body:    `[{"id":"abc-1"}]`,
			wantIDs: []ItemID{"abc-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := DecodeResults([]byte(tt.body))
			require.NoError(t, err)
			require.NotNil(t, items)

			ids := make([]ItemID, 0, len(items))
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestDecodeResults_Malformed(t *testing.T) {
	for _, body := range []string{"", "   ", "{", "[{\"id\":1}", "<html>502</html>"} {
		_, err := DecodeResults([]byte(body))
		assert.Error(t, err, "body %q", body)
	}
}

func TestDecodeResults_PreservesOrder(t *testing.T) {
	items, err := DecodeResults([]byte(`[{"id":3},{"id":1},{"id":2},{"id":1}]`))
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, ItemID("3"), items[0].ID)
	assert.Equal(t, ItemID("1"), items[1].ID)
	assert.Equal(t, ItemID("2"), items[2].ID)
	assert.Equal(t, ItemID("1"), items[3].ID)
}

func TestDecode_Reader(t *testing.T) {
	items, err := Decode(strings.NewReader(`{"results":[{"id":1},{"id":2}]}`))
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestItem_FieldTolerance(t *testing.T) {
	items, err := DecodeResults([]byte(`[
		{"id":1,"title":null,"price":null,"city":"Osh","description":"","url":"https://lalafo.kg/1"},
		{"id":2,"title":42,"price":"1500","score":"0.5"},
		{"id":3,"price":"договорная","score":0.25},
		{"id":4,"price":true,"title":{"nested":1}},
		5,
		"text"
	]`))
	require.NoError(t, err)
	require.Len(t, items, 6)

	assert.Equal(t, "", items[0].Title)
	assert.False(t, items[0].Price.Valid)
	assert.Equal(t, "Osh", items[0].City)
	assert.Equal(t, "https://lalafo.kg/1", items[0].URL)
	assert.False(t, items[0].Score.Valid)

	assert.Equal(t, "42", items[1].Title)
	assert.True(t, items[1].Price.Valid)
	assert.Equal(t, 1500.0, items[1].Price.Value)
	assert.False(t, items[1].Score.Valid, "string scores are not numbers")

	assert.False(t, items[2].Price.Valid)
	assert.True(t, items[2].Score.Valid)
	assert.InDelta(t, 0.25, items[2].Score.Value, 1e-9)

	assert.False(t, items[3].Price.Valid)
	assert.Equal(t, "", items[3].Title)

	assert.Equal(t, Item{}, items[4])
	assert.Equal(t, Item{}, items[5])
}

func TestNewPrice_NonFinite(t *testing.T) {
	assert.True(t, NewPrice(0).Valid)
	assert.True(t, NewPrice(-12.5).Valid)

	items, err := DecodeResults([]byte(`[{"price":"Infinity"},{"price":"NaN"},{"price":"  "}]`))
	require.NoError(t, err)
	for _, it := range items {
		assert.False(t, it.Price.Valid)
	}
}
