package ads

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Item is one classified ad as returned by the backend. Text fields are empty
// when the backend omitted them or sent null.
type Item struct {
	ID          ItemID
	Title       string
	Price       Price
	City        string
	Description string
	URL         string
	Score       Score
}

// ItemID keeps the textual form of the backend identifier, which may arrive
// as a JSON number or string.
type ItemID string

// Price is numeric-or-absent. An invalid Price renders as negotiable.
type Price struct {
	Value float64
	Valid bool
}

// NewPrice returns a valid Price for finite values.
func NewPrice(v float64) Price {
	return Price{Value: v, Valid: !math.IsNaN(v) && !math.IsInf(v, 0)}
}

// Score is the similarity reported by the semantic endpoint. Only JSON
// numbers produce a valid Score.
type Score struct {
	Value float64
	Valid bool
}

func NewScore(v float64) Score {
	return Score{Value: v, Valid: true}
}

// UnmarshalJSON decodes an item field by field so a single odd value never
// fails the whole result set. Non-object input yields an item with every
// field absent.
func (it *Item) UnmarshalJSON(data []byte) error {
	*it = Item{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	it.ID = ItemID(textValue(fields["id"]))
	it.Title = textValue(fields["title"])
	it.City = textValue(fields["city"])
	it.Description = textValue(fields["description"])
	it.URL = textValue(fields["url"])
	it.Price = priceValue(fields["price"])
	it.Score = scoreValue(fields["score"])
	return nil
}

func decodeValue(raw json.RawMessage) (any, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

// textValue reads strings as-is and keeps numbers and booleans in their
// literal form. null, objects and arrays read as absent.
func textValue(raw json.RawMessage) string {
	v, ok := decodeValue(raw)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func priceValue(raw json.RawMessage) Price {
	v, ok := decodeValue(raw)
	if !ok {
		return Price{}
	}
	var text string
	switch t := v.(type) {
	case json.Number:
		text = t.String()
	case string:
		text = strings.TrimSpace(t)
	default:
		return Price{}
	}
	if text == "" {
		return Price{}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Price{}
	}
	return NewPrice(f)
}

func scoreValue(raw json.RawMessage) Score {
	v, ok := decodeValue(raw)
	if !ok {
		return Score{}
	}
	n, ok := v.(json.Number)
	if !ok {
		return Score{}
	}
	f, err := n.Float64()
	if err != nil {
		return Score{}
	}
	return NewScore(f)
}
