package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"yaraan/internal/models"
)

// ErrCorruptState is returned when persisted bytes do not describe a valid cart or wishlist.
var ErrCorruptState = errors.New("corrupt cart state")

// EncodeLines serializes cart lines for durable storage.
func EncodeLines(lines []models.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []models.CartLine{}
	}
	return json.Marshal(lines)
}

// DecodeLines restores cart lines written by EncodeLines. Any shape the store
// could not have produced is rejected as a whole.
func DecodeLines(data []byte) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	seen := make(map[models.LineKey]struct{}, len(lines))
	for i, line := range lines {
		if line.Product.ID == "" {
			return nil, fmt.Errorf("%w: line %d has no product id", ErrCorruptState, i)
		}
		if line.Quantity < 1 || line.Quantity > MaxLineQuantity {
			return nil, fmt.Errorf("%w: line %d has quantity %d", ErrCorruptState, i, line.Quantity)
		}
		if line.Product.Price < 0 {
			return nil, fmt.Errorf("%w: line %d has negative price", ErrCorruptState, i)
		}
		if _, dup := seen[line.Key()]; dup {
			return nil, fmt.Errorf("%w: line %d duplicates an earlier line", ErrCorruptState, i)
		}
		seen[line.Key()] = struct{}{}
	}
	return lines, nil
}

// EncodeWishlist serializes wishlist product ids.
func EncodeWishlist(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(ids)
}

// DecodeWishlist restores ids written by EncodeWishlist.
func DecodeWishlist(data []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("%w: empty wishlist id", ErrCorruptState)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate wishlist id %q", ErrCorruptState, id)
		}
		seen[id] = struct{}{}
	}
	return ids, nil
}
