// Package pipeline wires the transmit and receive stages of spec.md §2
// into two entry points, Encode and Decode, configured by a Config that
// mirrors spec.md §6's configuration table.
package pipeline

import (
	"fmt"

	"github.com/dbehnke/ccsds-fec/pkg/viterbi"
)

// Mode selects which of the two inner codes are present, per spec §9's
// hard/soft-decision asymmetry note.
type Mode int

const (
	OnlyRS Mode = iota
	OnlyCC
	RSAndCC
)

func (m Mode) String() string {
	switch m {
	case OnlyRS:
		return "ONLY_RS"
	case OnlyCC:
		return "ONLY_CC"
	case RSAndCC:
		return "RS_AND_CC"
	default:
		return "UNKNOWN"
	}
}

// Config mirrors spec.md §6's configuration table plus the Viterbi tunable
// constants of §6/§9.
type Config struct {
	RSEncode      bool
	RSDecode      bool
	Interleave    bool
	Scramble      bool
	Descramble    bool
	NInterleave   int // I ∈ {1..8}
	DualBasis     bool
	PuncturingType string // one of "1/2","2/3","3/4","5/6","7/8"
	Mode          Mode
	Threshold     int // ASM Hamming-distance tolerance

	Viterbi viterbi.Params

	// LeadingZeroPad / TrailingZeroPad implement spec §9's open question:
	// the reference source prepends 5 and appends 3 zero bytes before
	// convolutional encoding to flush the trellis cleanly. Exposed here as
	// a configurable, documented local convention rather than a hidden
	// constant.
	LeadingZeroPad  int
	TrailingZeroPad int
}

// DefaultConfig returns suggested tunables with rate-1/2 puncturing, RS+CC
// enabled, no interleave/scramble, and the harness's 5/3 zero-byte pad
// convention.
func DefaultConfig() Config {
	return Config{
		RSEncode:        true,
		RSDecode:        true,
		Interleave:      false,
		Scramble:        false,
		Descramble:      false,
		NInterleave:     1,
		DualBasis:       false,
		PuncturingType:  "1/2",
		Mode:            RSAndCC,
		Threshold:       3,
		Viterbi:         viterbi.DefaultParams(),
		LeadingZeroPad:  5,
		TrailingZeroPad: 3,
	}
}

// Validate surfaces spec §7's Configuration error taxonomy: unknown
// puncturing pattern, I out of range, T not a multiple of 8, M+T >= P.
func (c Config) Validate() error {
	if c.NInterleave < 1 || c.NInterleave > 8 {
		return fmt.Errorf("pipeline: n_interleave %d out of range [1,8]", c.NInterleave)
	}
	if _, err := viterbi.PatternByName(c.PuncturingType); err != nil {
		return err
	}
	if err := c.Viterbi.Validate(); err != nil {
		return err
	}
	return nil
}
