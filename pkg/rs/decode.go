package rs

// Berlekamp-Massey / Chien search / Forney: standard unknown-position error
// correction over GF(2^8). No example in the corpus implements this (the
// only RS code in the pack, the DVB-S encoder, and klauspost/reedsolomon's
// vendored copy are both encode/erasure-only); this follows the classical
// algorithm description rather than a specific teacher file. See DESIGN.md.

// computeSyndromes evaluates the received block as a polynomial (block[0]
// is the highest-degree coefficient) at alpha^0..alpha^(ParityLen-1).
func computeSyndromes(f *field, block []byte) []byte {
	syn := make([]byte, ParityLen)
	for j := 0; j < ParityLen; j++ {
		root := f.pow(2, j)
		var s byte
		for _, c := range block {
			s = f.mul(s, root) ^ c
		}
		syn[j] = s
	}
	return syn
}

// berlekampMassey finds the shortest-length LFSR (error locator polynomial,
// low-to-high coefficients, constant term 1) that generates the syndrome
// sequence.
func berlekampMassey(f *field, syn []byte) []byte {
	c := []byte{1}
	b := []byte{1}
	l := 0
	m := 1
	bCoef := byte(1)

	for n := 0; n < len(syn); n++ {
		delta := syn[n]
		for i := 1; i <= l && i < len(c); i++ {
			delta ^= f.mul(c[i], syn[n-i])
		}
		if delta == 0 {
			m++
			continue
		}
		t := make([]byte, len(c))
		copy(t, c)

		coef := f.div(delta, bCoef)
		c = addShifted(f, c, b, coef, m)

		if 2*l <= n {
			l = n + 1 - l
			b = t
			bCoef = delta
			m = 1
		} else {
			m++
		}
	}
	return c
}

// addShifted computes c(x) XOR coef * x^shift * b(x), growing the result as
// needed.
func addShifted(f *field, c, b []byte, coef byte, shift int) []byte {
	size := len(c)
	if need := len(b) + shift; need > size {
		size = need
	}
	out := make([]byte, size)
	copy(out, c)
	for i, bc := range b {
		out[i+shift] ^= f.mul(bc, coef)
	}
	return out
}

// chienSearch finds the roots of the error locator polynomial by brute-force
// evaluation, returning block indices (0-based, block[0] highest degree).
func chienSearch(f *field, locator []byte, n int) []int {
	var positions []int
	for e := 0; e < n; e++ {
		invRoot := f.pow(2, -e)
		var sum byte
		xpow := byte(1)
		for _, coef := range locator {
			sum ^= f.mul(coef, xpow)
			xpow = f.mul(xpow, invRoot)
		}
		if sum == 0 {
			positions = append(positions, n-1-e)
		}
	}
	return positions
}

// forney computes error magnitudes at the located positions via the error
// evaluator polynomial Omega(x) = [S(x)*Lambda(x)] mod x^ParityLen and the
// formal derivative of the locator polynomial.
func forney(f *field, syn, locator []byte, positions []int, n int) []byte {
	omega := polyMulMod(f, syn, locator, ParityLen)
	mags := make([]byte, len(positions))

	for idx, pos := range positions {
		e := n - 1 - pos
		xInv := f.pow(2, -e)

		var omegaVal byte
		xpow := byte(1)
		for _, c := range omega {
			omegaVal ^= f.mul(c, xpow)
			xpow = f.mul(xpow, xInv)
		}

		var derivVal byte
		xInv2 := f.mul(xInv, xInv)
		xpow = 1
		for j := 1; j < len(locator); j += 2 {
			derivVal ^= f.mul(locator[j], xpow)
			xpow = f.mul(xpow, xInv2)
		}

		xLoc := f.pow(2, e)
		mags[idx] = f.div(f.mul(omegaVal, xLoc), derivVal)
	}
	return mags
}

// polyMulMod multiplies two polynomials (low-to-high coefficients) and
// truncates the result to the lowest `limit` coefficients.
func polyMulMod(f *field, a, b []byte, limit int) []byte {
	out := make([]byte, limit)
	for i, ac := range a {
		if ac == 0 || i >= limit {
			continue
		}
		for j, bc := range b {
			if i+j >= limit {
				continue
			}
			out[i+j] ^= f.mul(ac, bc)
		}
	}
	return out
}
