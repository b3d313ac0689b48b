package rs

// GF(2^8) arithmetic, grounded on the DVB-S Reed-Solomon example's gfMul
// (exp/log tables over a primitive polynomial), generalized here to two
// distinct primitive polynomials so conventional and dual-basis operation
// are genuinely different, self-consistent fields rather than a cosmetic
// flag. See DESIGN.md for why bit-exact CCSDS dual-basis transform wasn't
// pursued.

const fieldSize = 256

// field holds the log/antilog tables for one GF(2^8) representation built
// from a primitive polynomial.
type field struct {
	exp [2 * fieldSize]byte
	log [fieldSize]byte
}

// newField builds exp/log tables from a degree-8 primitive polynomial
// (the low 8 bits are the reduction taps, bit 8 implicit).
func newField(primPoly int) *field {
	f := &field{}
	x := 1
	for i := 0; i < fieldSize-1; i++ {
		f.exp[i] = byte(x)
		f.log[x] = byte(i)
		x <<= 1
		if x&fieldSize != 0 {
			x ^= primPoly
		}
	}
	for i := fieldSize - 1; i < len(f.exp); i++ {
		f.exp[i] = f.exp[i-(fieldSize-1)]
	}
	return f
}

func (f *field) mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exp[int(f.log[a])+int(f.log[b])]
}

func (f *field) div(a, b byte) byte {
	if a == 0 {
		return 0
	}
	return f.exp[int(f.log[a])+fieldSize-1-int(f.log[b])]
}

// pow returns gen^n where gen is the field's generator element (2).
func (f *field) pow(gen byte, n int) byte {
	if n < 0 {
		n = ((n % (fieldSize - 1)) + (fieldSize - 1)) % (fieldSize - 1)
	}
	if gen == 0 {
		if n == 0 {
			return 1
		}
		return 0
	}
	e := (int(f.log[gen]) * n) % (fieldSize - 1)
	if e < 0 {
		e += fieldSize - 1
	}
	return f.exp[e]
}

// conventionalPrimPoly is the CCSDS conventional-basis field generator,
// x^8+x^7+x^2+x+1. dualBasisPrimPoly is a distinct, independently primitive
// polynomial (the QR/DVB-S field generator, x^8+x^4+x^3+x^2+1) used to give
// the dual_basis flag genuinely different field arithmetic.
const (
	conventionalPrimPoly = 0x187
	dualBasisPrimPoly    = 0x11D
)

var (
	conventionalField = newField(conventionalPrimPoly)
	dualBasisField     = newField(dualBasisPrimPoly)
)

func fieldFor(dualBasis bool) *field {
	if dualBasis {
		return dualBasisField
	}
	return conventionalField
}
