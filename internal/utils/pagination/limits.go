package pagination

import "fmt"

// DefaultLimit is used when a listing does not specify one.
const DefaultLimit = 100

// Normalize validates limit/offset against maxLimit. A nil limit becomes
// DefaultLimit (or maxLimit when that is smaller); an explicit limit must be
// between 1 and maxLimit.
func Normalize(limit *int, offset, maxLimit int) (int, int, error) {
	if maxLimit <= 0 {
		return 0, 0, fmt.Errorf("max limit must be positive, got %d", maxLimit)
	}
	n := min(DefaultLimit, maxLimit)
	if limit != nil {
		n = *limit
	}
	if n < 1 || n > maxLimit {
		return 0, 0, fmt.Errorf("limit must be between 1 and %d, got %d", maxLimit, n)
	}
	if offset < 0 {
		return 0, 0, fmt.Errorf("offset must not be negative, got %d", offset)
	}
	return n, offset, nil
}
