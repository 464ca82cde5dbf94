package features

import "math"

// fitScaler computes per-column mean and population standard deviation.
// Columns with zero variance scale by 1 so constant features pass through
// centered instead of dividing by zero.
func fitScaler(x [][]float64) (means, stds []float64) {
	cols := len(x[0])
	n := float64(len(x))
	means = make([]float64, cols)
	stds = make([]float64, cols)

	for _, row := range x {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= n
	}

	for _, row := range x {
		for j, v := range row {
			d := v - means[j]
			stds[j] += d * d
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / n)
		if stds[j] == 0 {
			stds[j] = 1
		}
	}
	return means, stds
}

// scaleInPlace applies the fitted transform to one row.
func scaleInPlace(row, means, stds []float64) {
	for j := range row {
		row[j] = (row[j] - means[j]) / stds[j]
	}
}
