package matcher

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrMalformedResponse marks a matching-service response that does not follow
// the {"products": [{"productId": number}]} shape.
var ErrMalformedResponse = errors.New("malformed response")

// ParseResponse extracts product IDs from a matching-service response.
//
// The envelope must be an object with a "products" array; anything else is an
// error. Entries whose productId is missing or not an integral number are
// skipped. IDs are returned de-duplicated in first-seen order.
func ParseResponse(raw string) ([]int, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	productsRaw, ok := envelope["products"]
	if !ok || isNull(productsRaw) {
		return nil, fmt.Errorf("%w: missing products field", ErrMalformedResponse)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(productsRaw, &entries); err != nil {
		return nil, fmt.Errorf("%w: products must be an array", ErrMalformedResponse)
	}

	ids := make([]int, 0, len(entries))
	seen := make(map[int]struct{}, len(entries))
	for _, entry := range entries {
		id, ok := productID(entry)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids, nil
}

func productID(entry json.RawMessage) (int, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil {
		return 0, false
	}

	value := bytes.TrimSpace(fields["productId"])
	if len(value) == 0 || !(value[0] == '-' || (value[0] >= '0' && value[0] <= '9')) {
		return 0, false
	}

	var n float64
	if err := json.Unmarshal(value, &n); err != nil {
		return 0, false
	}
	if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
