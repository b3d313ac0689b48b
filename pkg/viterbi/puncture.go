package viterbi

import "fmt"

// Pattern is a runtime-selectable puncturing pattern: two binary vectors of
// equal length, C1 and C2, consulted modulo their length once per input bit.
type Pattern struct {
	Name string
	C1   []uint8
	C2   []uint8
}

// Rate returns the nominal code rate this pattern implements.
func (p Pattern) Rate() string { return p.Name }

// Len returns the puncturing pattern period L.
func (p Pattern) Len() int { return len(p.C1) }

// Fixed puncturing patterns from spec §6.
var (
	Rate1_2 = Pattern{Name: "1/2", C1: []uint8{1}, C2: []uint8{1}}
	Rate2_3 = Pattern{Name: "2/3", C1: []uint8{1, 0}, C2: []uint8{1, 1}}
	Rate3_4 = Pattern{Name: "3/4", C1: []uint8{1, 0, 1}, C2: []uint8{1, 1, 0}}
	Rate5_6 = Pattern{Name: "5/6", C1: []uint8{1, 0, 1, 0, 1}, C2: []uint8{1, 1, 0, 1, 0}}
	Rate7_8 = Pattern{Name: "7/8", C1: []uint8{1, 0, 0, 0, 1, 0, 1}, C2: []uint8{1, 1, 1, 1, 0, 1, 0}}
)

var patternsByName = map[string]Pattern{
	"1/2": Rate1_2,
	"2/3": Rate2_3,
	"3/4": Rate3_4,
	"5/6": Rate5_6,
	"7/8": Rate7_8,
}

// PatternByName resolves a puncturing pattern by its rate name, surfacing
// an unknown-pattern configuration error at initialization per spec §7.
func PatternByName(name string) (Pattern, error) {
	p, ok := patternsByName[name]
	if !ok {
		return Pattern{}, fmt.Errorf("viterbi: unknown puncturing pattern %q", name)
	}
	return p, nil
}

// ExpandErasures walks the puncturing pattern across nBits trellis steps,
// pulling real transmitted values from coded in order and filling positions
// that were never transmitted with the erasure sentinel 128. The result is
// 2*nBits bytes, one symbol pair per trellis step, ready for Decoder.Decode.
func ExpandErasures(p Pattern, coded []byte, nBits int) []byte {
	out := make([]byte, 2*nBits)
	ci := 0
	l := p.Len()
	for i := 0; i < nBits; i++ {
		idx := i % l
		if p.C1[idx] == 1 {
			out[2*i] = coded[ci]
			ci++
		} else {
			out[2*i] = 128
		}
		if p.C2[idx] == 1 {
			out[2*i+1] = coded[ci]
			ci++
		} else {
			out[2*i+1] = 128
		}
	}
	return out
}

// CodedBitCount returns the number of coded bits the pattern emits for
// nBits input bits, satisfying spec's puncture-consistency property: it
// equals the count of 1s in (C1 ⧺ C2 interleaved) repeated over nBits.
func (p Pattern) CodedBitCount(nBits int) int {
	l := p.Len()
	ones := 0
	for k := 0; k < l; k++ {
		ones += int(p.C1[k]) + int(p.C2[k])
	}
	full, rem := nBits/l, nBits%l
	count := full * ones
	for k := 0; k < rem; k++ {
		count += int(p.C1[k]) + int(p.C2[k])
	}
	return count
}

// validate checks the invariant that at least one of C1[k], C2[k] is set
// for every k, and that both vectors share the same length.
func (p Pattern) validate() error {
	if len(p.C1) != len(p.C2) || len(p.C1) == 0 {
		return fmt.Errorf("viterbi: puncturing pattern %q has mismatched or empty vectors", p.Name)
	}
	for k := range p.C1 {
		if p.C1[k] == 0 && p.C2[k] == 0 {
			return fmt.Errorf("viterbi: puncturing pattern %q drops both bits at index %d", p.Name, k)
		}
	}
	return nil
}
