package util

// ClampLimit returns ceiling when limit is unset, negative, or above it.
func ClampLimit(limit, ceiling int) int {
	if limit <= 0 || limit > ceiling {
		return ceiling
	}
	return limit
}
