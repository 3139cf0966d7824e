package indicator

import "math"

// Series is a numeric column aligned with a bar sequence.
// NaN marks a row where the value is undefined (warm-up window, zero denominator).
type Series []float64

// NewSeries returns a Series of length n with every row undefined
func NewSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

// Undefined reports whether x is the undefined marker
func Undefined(x float64) bool {
	return math.IsNaN(x)
}

// Defined reports whether row i holds a value
func (s Series) Defined(i int) bool {
	return i >= 0 && i < len(s) && !math.IsNaN(s[i])
}

// At returns row i, or NaN when i is out of range
func (s Series) At(i int) float64 {
	if i < 0 || i >= len(s) {
		return math.NaN()
	}
	return s[i]
}

// Last returns the final row and whether it is defined
func (s Series) Last() (float64, bool) {
	if len(s) == 0 || math.IsNaN(s[len(s)-1]) {
		return 0, false
	}
	return s[len(s)-1], true
}

// LastOr returns the final row, or fallback when it is undefined
func (s Series) LastOr(fallback float64) float64 {
	if v, ok := s.Last(); ok {
		return v
	}
	return fallback
}

// DefinedValues returns the defined rows in order (NaN rows dropped)
func (s Series) DefinedValues() []float64 {
	out := make([]float64, 0, len(s))
	for _, v := range s {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Tail returns the last n rows (or all rows when shorter)
func (s Series) Tail(n int) Series {
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// Scale multiplies every defined row by k
func (s Series) Scale(k float64) Series {
	out := make(Series, len(s))
	for i, v := range s {
		out[i] = v * k
	}
	return out
}

func hasUndefined(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// ratio divides a by b, yielding NaN for a zero or undefined denominator
func ratio(a, b float64) float64 {
	if b == 0 || math.IsNaN(b) || math.IsNaN(a) {
		return math.NaN()
	}
	return a / b
}
