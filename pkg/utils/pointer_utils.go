package utils

// SafeDeref safely dereferences a string pointer and returns empty string if nil
func SafeDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SafeDerefFloat64 dereferences a float64 pointer, reporting whether it was set
func SafeDerefFloat64(f *float64) (float64, bool) {
	if f == nil {
		return 0, false
	}
	return *f, true
}
