package ads

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DecodeResults normalizes a search response body into an ordered item list.
//
// Accepted shapes:
//   - a JSON array of items
//   - a JSON object whose "results" field is an array of items
//
// Any other well-formed JSON value decodes to an empty list. Only a body that
// is not valid JSON is an error.
func DecodeResults(data []byte) ([]Item, error) {
	body := bytes.TrimSpace(data)
	if !json.Valid(body) {
		var v any
		err := json.Unmarshal(body, &v)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, fmt.Errorf("decoding results: %w", err)
	}

	switch body[0] {
	case '[':
		return decodeList(body)
	case '{':
		var envelope struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return []Item{}, nil
		}
		results := bytes.TrimSpace(envelope.Results)
		if len(results) == 0 || results[0] != '[' {
			return []Item{}, nil
		}
		return decodeList(results)
	default:
		return []Item{}, nil
	}
}

// Decode reads r fully and passes the body to DecodeResults.
func Decode(r io.Reader) ([]Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	return DecodeResults(data)
}

func decodeList(raw []byte) ([]Item, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}
	items := make([]Item, len(elems))
	for i, elem := range elems {
		if err := items[i].UnmarshalJSON(elem); err != nil {
			return nil, fmt.Errorf("decoding result %d: %w", i, err)
		}
	}
	return items, nil
}
