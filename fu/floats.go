package fu

// Mean returns the arithmetic mean of a, NaN-free by construction
// since callers only pass finite metric values.
func Mean(a []float64) float64 {
	var c float64
	for _, x := range a {
		c += x
	}
	return c / float64(len(a))
}

// Mse returns the mean squared error between a and b.
func Mse(a, b []float64) float64 {
	var c float64
	for i, x := range a {
		q := x - b[i]
		c += q * q
	}
	return c / float64(len(a))
}

// Indmax returns the index of the first maximum value in a,
// and -1 if a is empty.
func Indmax(a []float64) int {
	j := -1
	for i, x := range a {
		if j < 0 || x > a[j] {
			j = i
		}
	}
	return j
}

// Flatnr flattens rows into a single slice preserving order.
func Flatnr(a [][]float64) []float64 {
	n := 0
	for _, x := range a {
		n += len(x)
	}
	r := make([]float64, n)
	i := 0
	for _, x := range a {
		copy(r[i:i+len(x)], x)
		i += len(x)
	}
	return r
}
