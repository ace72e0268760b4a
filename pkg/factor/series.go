package factor

// Point is a single observation of a computed factor.
type Point struct {
	Time  int64   `json:"t"`
	Value float64 `json:"v"`
}

// Series is a computed factor series, the typical payload memoized by the
// cache. It is plain data; the cache never inspects it.
type Series []Point

// Last returns the most recent point of the series.
func (s Series) Last() (Point, bool) {
	if len(s) == 0 {
		return Point{}, false
	}

	return s[len(s)-1], true
}

// Values returns the raw values of the series in order.
func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}

	return values
}
