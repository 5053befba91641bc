package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the one-sided amplitude spectrum of a series sampled
// every dt seconds, with the mean removed, and the frequency in Hz of each
// bin.
func PowerSpectrum(series []float64, dt float64) (freqs, power []float64) {
	n := len(series)
	if n < 2 || !(dt > 0) {
		return nil, nil
	}

	mean := stat.Mean(series, nil)
	centered := make([]float64, n)
	for i, v := range series {
		centered[i] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, centered)

	freqs = make([]float64, len(coeffs))
	power = make([]float64, len(coeffs))
	for i, c := range coeffs {
		freqs[i] = fft.Freq(i) / dt
		power[i] = cmplx.Abs(c)
	}
	return freqs, power
}

// DominantFrequency is the frequency in Hz of the strongest non-zero bin, or
// 0 when the series does not oscillate.
func DominantFrequency(series []float64, dt float64) float64 {
	freqs, power := PowerSpectrum(series, dt)
	best, peak := 0, 0.0
	for i := 1; i < len(power); i++ {
		if power[i] > peak {
			best, peak = i, power[i]
		}
	}
	if best == 0 {
		return 0
	}
	return freqs[best]
}
