package field

import "math/big"

// PrimitiveRootOfUnity returns a primitive n-th root of unity in f, or nil if
// none exists (n does not divide p-1). n must be a positive power of two for
// the search to be meaningful in this package's FFT-friendly fields.
func (f *Field) PrimitiveRootOfUnity(n int) *FieldElement {
	if n <= 0 {
		return nil
	}
	pMinus1 := new(big.Int).Sub(f.modulus, big.NewInt(1))
	nBig := big.NewInt(int64(n))
	if new(big.Int).Mod(pMinus1, nBig).Sign() != 0 {
		return nil
	}

	exponent := new(big.Int).Div(pMinus1, nBig)
	for g := int64(2); g < 1000; g++ {
		candidate := f.FromInt64(g)
		omega := candidate.Exp(exponent)
		if !omega.Exp(nBig).Equal(f.One()) {
			continue
		}
		order := true
		for k := 1; k < n; k++ {
			if omega.ExpInt(k).Equal(f.One()) {
				order = false
				break
			}
		}
		if order {
			return omega
		}
	}
	return nil
}
