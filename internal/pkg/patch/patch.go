package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Set assigns *ptr to dst when ptr is non-nil. Used by PUT-style partial
// updates where absent fields leave the current value untouched.
func Set[T any](dst *T, ptr *T) {
	if ptr != nil {
		*dst = *ptr
	}
}
