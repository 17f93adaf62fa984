package poly

import (
	"fmt"

	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
)

// FFT evaluates values (interpreted as polynomial coefficients) at the powers
// of omega using the Cooley-Tukey radix-2 decimation-in-time algorithm.
// len(values) must be a power of two and omega a primitive len(values)-th root
// of unity.
func FFT(f *field.Field, values []*field.FieldElement, omega *field.FieldElement) ([]*field.FieldElement, error) {
	n := len(values)
	if n <= 1 {
		out := make([]*field.FieldElement, n)
		copy(out, values)
		return out, nil
	}
	if n&(n-1) != 0 {
		return nil, fmt.Errorf("poly: FFT requires power-of-two size, got %d", n)
	}

	result := make([]*field.FieldElement, n)
	copy(result, values)

	logN := 0
	for temp := n; temp > 1; temp >>= 1 {
		logN++
	}
	for i := 0; i < n; i++ {
		j := reverseBits(i, logN)
		if i < j {
			result[i], result[j] = result[j], result[i]
		}
	}

	for s := 1; s <= logN; s++ {
		m := 1 << s
		half := m >> 1
		wm := omega.ExpInt(n / m)

		for k := 0; k < n; k += m {
			w := f.One()
			for j := 0; j < half; j++ {
				t := w.Mul(result[k+j+half])
				u := result[k+j]
				result[k+j] = u.Add(t)
				result[k+j+half] = u.Sub(t)
				w = w.Mul(wm)
			}
		}
	}

	return result, nil
}

// IFFT recovers coefficients from evaluations at the powers of omega (the
// inverse of FFT).
func IFFT(f *field.Field, values []*field.FieldElement, omega *field.FieldElement) ([]*field.FieldElement, error) {
	n := len(values)
	if n == 0 {
		return nil, nil
	}
	omegaInv, err := omega.Inv()
	if err != nil {
		return nil, fmt.Errorf("poly: IFFT: %w", err)
	}
	coeffs, err := FFT(f, values, omegaInv)
	if err != nil {
		return nil, err
	}
	nInv, err := f.FromInt64(int64(n)).Inv()
	if err != nil {
		return nil, fmt.Errorf("poly: IFFT: %w", err)
	}
	for i := range coeffs {
		coeffs[i] = coeffs[i].Mul(nInv)
	}
	return coeffs, nil
}

func reverseBits(n, bitLength int) int {
	result := 0
	for i := 0; i < bitLength; i++ {
		if n&(1<<i) != 0 {
			result |= 1 << (bitLength - 1 - i)
		}
	}
	return result
}
