package analysis

import (
	"errors"
	"math"
	"math/cmplx"
)

var (
	ErrNotPowerOfTwo = errors.New("analysis: fft length must be a power of two")
	ErrTooShort      = errors.New("analysis: series too short")
	ErrFlat          = errors.New("analysis: series has no oscillation")
)

func FFT(data []float64) ([]complex128, error) {
	n := len(data)
	if n&(n-1) != 0 {
		return nil, ErrNotPowerOfTwo
	}
	return fft(data), nil
}

func fft(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum removes the mean, zero-pads to the next power of two and
// returns the magnitudes of the first half of the transform.
func PowerSpectrum(data []float64) []float64 {
	padded := make([]float64, nextPow2(len(data)))
	m := mean(data)
	for i, v := range data {
		padded[i] = v - m
	}

	spec := fft(padded)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// SpectralPeriod returns the period, in units of sampleInterval, of the
// strongest frequency. The peak bin is refined by parabolic interpolation.
func SpectralPeriod(data []float64, sampleInterval float64) (float64, error) {
	if len(data) < 4 {
		return 0, ErrTooShort
	}
	ps := PowerSpectrum(data)
	n := 2 * len(ps)

	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return 0, ErrFlat
	}

	k := float64(peak)
	if peak+1 < len(ps) {
		l, c, r := ps[peak-1], ps[peak], ps[peak+1]
		if den := l - 2*c + r; den != 0 {
			k += 0.5 * (l - r) / den
		}
	}
	return float64(n) / k * sampleInterval, nil
}

// DominantPeriod estimates the period from the spacing of crossings of the
// series mean, interpolated linearly between samples. At least two crossings
// (half a period) are needed.
func DominantPeriod(data []float64, sampleInterval float64) (float64, error) {
	if len(data) < 3 {
		return 0, ErrTooShort
	}
	m := mean(data)

	var crossings []float64
	for i := 1; i < len(data); i++ {
		a, b := data[i-1]-m, data[i]-m
		if (a < 0) != (b < 0) {
			crossings = append(crossings, float64(i-1)+a/(a-b))
		}
	}
	if len(crossings) < 2 {
		if len(crossings) == 0 && variance(data, m) == 0 {
			return 0, ErrFlat
		}
		return 0, ErrTooShort
	}

	span := crossings[len(crossings)-1] - crossings[0]
	halfPeriods := float64(len(crossings) - 1)
	return 2 * span / halfPeriods * sampleInterval, nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

func variance(data []float64, m float64) float64 {
	sum := 0.0
	for _, v := range data {
		sum += (v - m) * (v - m)
	}
	return sum / float64(len(data))
}
