package core

// EnsureLen returns buf resized to n, reusing its capacity when possible.
// Contents are unspecified; callers must overwrite every element.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}
