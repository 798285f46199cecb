package domain

// CoalesceStr returns the first non-empty string, or "" when all are empty.
// Layers explicit values over defaults during import conversion.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// IntFromPtrWithDefault dereferences the first non-nil pointer, falling back
// when every pointer is nil.
func IntFromPtrWithDefault(fallback int, ptrs ...*int) int {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
