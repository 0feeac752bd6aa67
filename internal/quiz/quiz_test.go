package quiz

// fixedSource cycles through a canned sequence of floats so shuffles and
// template picks are deterministic in tests.
func fixedSource(values ...float64) Source {
	if len(values) == 0 {
		values = []float64{0}
	}
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}
