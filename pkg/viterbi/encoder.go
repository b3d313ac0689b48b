package viterbi

// Encoder is the K=7 rate-1/2 convolutional encoder with runtime-selectable
// puncturing, built around the same shift-register-loop structure as a
// lower-rate K=5 convolutional encoder, generalized to 6 state bits and two
// generator polynomials.
type Encoder struct {
	state   uint8 // 6-bit encoder state
	pattern Pattern
	k       int // puncture pattern index, advances once per input bit
}

// NewEncoder creates an encoder using the given puncturing pattern. The
// encoder state starts at zero, matching a freshly flushed trellis.
func NewEncoder(pattern Pattern) (*Encoder, error) {
	if err := pattern.validate(); err != nil {
		return nil, err
	}
	return &Encoder{pattern: pattern}, nil
}

// Reset clears the encoder shift register and puncture phase.
func (e *Encoder) Reset() {
	e.state = 0
	e.k = 0
}

// Encode serializes in MSB-first and returns the punctured coded-bit stream
// as 0/1 bytes. len(out) is the number of coded bits emitted.
func (e *Encoder) Encode(in []byte) []byte {
	out := make([]byte, 0, len(in)*16)
	for _, c := range in {
		for bitPos := 7; bitPos >= 0; bitPos-- {
			b := (c >> uint(bitPos)) & 1
			sp := ((e.state << 1) | b) & 0x7F

			c1 := parity(sp & polyG1)
			c2 := parity(sp&polyG2) ^ 1 // inverted, per the code's convention

			idx := e.k % e.pattern.Len()
			if e.pattern.C1[idx] == 1 {
				out = append(out, c1)
			}
			if e.pattern.C2[idx] == 1 {
				out = append(out, c2)
			}
			e.k++

			e.state = sp & 0x3F
		}
	}
	return out
}
