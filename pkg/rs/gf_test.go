package rs

import "testing"

func TestField_MulDivInverse(t *testing.T) {
	for _, f := range []*field{conventionalField, dualBasisField} {
		for a := 1; a < fieldSize; a++ {
			for _, b := range []int{1, 2, 3, 17, 255} {
				got := f.div(f.mul(byte(a), byte(b)), byte(b))
				if got != byte(a) {
					t.Fatalf("div(mul(%d,%d),%d) = %d, want %d", a, b, b, got, a)
				}
			}
		}
	}
}

func TestField_MulByZero(t *testing.T) {
	for _, f := range []*field{conventionalField, dualBasisField} {
		if f.mul(0, 200) != 0 || f.mul(200, 0) != 0 {
			t.Error("mul with a zero operand must be zero")
		}
		if f.div(0, 200) != 0 {
			t.Error("div with a zero numerator must be zero")
		}
	}
}

// The multiplicative group of GF(2^8) has order 255, so gen^255 == 1 for
// any nonzero generator.
func TestField_PowGroupOrder(t *testing.T) {
	for _, f := range []*field{conventionalField, dualBasisField} {
		if got := f.pow(2, 255); got != 1 {
			t.Errorf("pow(2,255) = %d, want 1", got)
		}
		if got := f.pow(2, 0); got != 1 {
			t.Errorf("pow(2,0) = %d, want 1", got)
		}
	}
}

func TestField_PowNegativeExponent(t *testing.T) {
	for _, f := range []*field{conventionalField, dualBasisField} {
		for e := 0; e < 10; e++ {
			fwd := f.pow(2, e)
			back := f.pow(2, -e)
			if f.mul(fwd, back) != 1 {
				t.Errorf("pow(2,%d)*pow(2,%d) = %d, want 1", e, -e, f.mul(fwd, back))
			}
		}
	}
}

func TestConventionalAndDualBasisFieldsDiffer(t *testing.T) {
	differs := false
	for x := 2; x < fieldSize; x++ {
		if conventionalField.mul(byte(x), byte(x)) != dualBasisField.mul(byte(x), byte(x)) {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("conventional and dual-basis fields should be built from distinct primitive polynomials")
	}
}
