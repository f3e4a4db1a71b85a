package analysis

import (
	"errors"
	"math"
	"math/cmplx"
)

var ErrLength = errors.New("analysis: fft requires power of 2 length")

func FFT(data []float64) ([]complex128, error) {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result, nil
	}

	if n&(n-1) != 0 {
		return nil, ErrLength
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven, _ := FFT(even)
	fodd, _ := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result, nil
}

// PowerSpectrum zero-pads data to a power of two after removing its mean.
// Bin k corresponds to k cycles over the padded length.
func PowerSpectrum(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	if len(data) > 0 {
		mean /= float64(len(data))
	}
	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - mean
	}

	fft, _ := FFT(padded)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantPeriod estimates the period in samples from the strongest
// non-zero frequency bin. It returns 0 for a flat series.
func DominantPeriod(data []float64) float64 {
	ps := PowerSpectrum(data)
	best, idx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, idx = ps[i], i
		}
	}
	if idx == 0 || best < 1e-9 {
		return 0
	}
	n := 1
	for n < len(data) {
		n *= 2
	}
	return float64(n) / float64(idx)
}

// Period returns the smallest p > 0 such that data[i] and data[i+p] agree
// within tol for every i, or 0 when no period fits twice in data.
func Period(data []float64, tol float64) int {
	for p := 1; p <= len(data)/2; p++ {
		ok := true
		for i := 0; i+p < len(data); i++ {
			if math.Abs(data[i]-data[i+p]) > tol {
				ok = false
				break
			}
		}
		if ok {
			return p
		}
	}
	return 0
}
