package pipeline

import (
	"fmt"

	"github.com/dbehnke/ccsds-fec/pkg/asmsync"
	"github.com/dbehnke/ccsds-fec/pkg/frame"
	"github.com/dbehnke/ccsds-fec/pkg/rs"
	"github.com/dbehnke/ccsds-fec/pkg/scrambler"
	"github.com/dbehnke/ccsds-fec/pkg/viterbi"
)

// Pipeline wires the five transmit stages and five receive stages of
// spec.md §2 around a configured RS framer and puncturing pattern.
type Pipeline struct {
	cfg     Config
	framer  *rs.Framer
	pattern viterbi.Pattern
}

// New validates cfg and builds a Pipeline.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fr, err := rs.NewFramer(cfg.NInterleave, cfg.Interleave, cfg.DualBasis, cfg.RSEncode, cfg.RSDecode)
	if err != nil {
		return nil, err
	}
	pattern, err := viterbi.PatternByName(cfg.PuncturingType)
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, framer: fr, pattern: pattern}, nil
}

// PayloadLen is the expected Encode input length, N*223 bytes.
func (p *Pipeline) PayloadLen() int { return p.framer.PayloadLen() }

// EncodeResult is the output of the transmit chain: a stream of 0/1 coded
// bits ready for a channel.Channel, plus the trellis step count needed to
// reinsert puncture erasures on the receive side.
type EncodeResult struct {
	Bits       []byte
	TrellisLen int // 0 when Mode == OnlyRS (no convolutional code present)
}

// Encode runs RS framer encode -> scramble -> frame assembly -> (for CC
// modes) zero-pad -> convolutional encode. ONLY_RS mode has no inner code:
// the assembled frame's bits are emitted directly (spec §9's hard/soft
// asymmetry note).
func (p *Pipeline) Encode(payload []byte) (EncodeResult, error) {
	codeword, err := p.framer.Encode(payload)
	if err != nil {
		return EncodeResult{}, err
	}
	if p.cfg.Scramble {
		scrambler.Scramble(codeword)
	}
	assembled := frame.Assemble(codeword)

	if p.cfg.Mode == OnlyRS {
		return EncodeResult{Bits: frame.BytesToBits(assembled)}, nil
	}

	padded := make([]byte, 0, p.cfg.LeadingZeroPad+len(assembled)+p.cfg.TrailingZeroPad)
	padded = append(padded, make([]byte, p.cfg.LeadingZeroPad)...)
	padded = append(padded, assembled...)
	padded = append(padded, make([]byte, p.cfg.TrailingZeroPad)...)

	enc, err := viterbi.NewEncoder(p.pattern)
	if err != nil {
		return EncodeResult{}, err
	}
	coded := enc.Encode(padded)
	return EncodeResult{Bits: coded, TrellisLen: len(padded) * 8}, nil
}

// DecodeResult is the receive chain's output: the recovered frame (if the
// ASM correlator locked within the supplied stream) and its RS decode
// outcome.
type DecodeResult struct {
	Locked bool
	Amb    asmsync.Ambiguity
	Frame  *rs.FrameResult
}

// Decode runs (for CC modes) Viterbi decode -> ASM correlation ->
// descramble -> RS framer decode. ONLY_RS mode skips Viterbi and feeds
// hard bits straight to the correlator.
//
// soft is the channel's soft-sample stream for CC modes (already expanded
// to full trellis-pair rate via viterbi.ExpandErasures), or hard 0/1 bits
// for ONLY_RS mode.
func (p *Pipeline) Decode(soft []byte) (DecodeResult, error) {
	var hardBits []byte

	switch p.cfg.Mode {
	case OnlyRS:
		hardBits = soft
	default:
		dec, err := viterbi.NewDecoder(p.cfg.Viterbi)
		if err != nil {
			return DecodeResult{}, err
		}
		decodedBytes := dec.Decode(soft)
		// Flush the decoder's output delay (at most M-6+T steps) with M+T erasure-valued
		// trellis steps: their own decoded bits are discarded padding, but
		// advancing the trellis drains the real decisions still sitting in
		// path memory.
		flushLen := p.cfg.Viterbi.MergeDist + p.cfg.Viterbi.TraceChunk
		flush := make([]byte, 2*flushLen)
		for i := range flush {
			flush[i] = 128
		}
		decodedBytes = append(decodedBytes, dec.Decode(flush)...)
		hardBits = frame.BytesToBits(decodedBytes)
	}

	// The correlator consumes the ASM itself and buffers only the bytes
	// after it, so the frame it delivers is exactly the codeword region.
	frameLen := p.framer.CodewordLen()
	corr := asmsync.NewCorrelator(frame.ASM, 0xFFFFFFFF, p.cfg.Threshold, frameLen)

	var result DecodeResult
	for _, bit := range hardBits {
		corr.Process(bit, func(frameBytes []byte, amb asmsync.Ambiguity) {
			if result.Locked {
				return // first locked frame only
			}
			codeword := frameBytes
			if p.cfg.Descramble {
				scrambler.Descramble(codeword)
			}
			fr, err := p.framer.Decode(codeword)
			if err != nil {
				return
			}
			result = DecodeResult{Locked: true, Amb: amb, Frame: fr}
		})
	}
	if !result.Locked {
		return result, fmt.Errorf("pipeline: ASM did not lock within supplied stream")
	}
	return result, nil
}

// DecodeAlignedBytes is the `decode_aligned_bytes` alternate entry point
// (spec §4.6): given L = 255*N contiguous, already frame-aligned bytes
// (byte alignment inherited from the encoder's first bit, post-Viterbi),
// bypass ASM search entirely and descramble + RS-decode directly.
func (p *Pipeline) DecodeAlignedBytes(codeword []byte) (*rs.FrameResult, error) {
	buf := make([]byte, len(codeword))
	copy(buf, codeword)
	if p.cfg.Descramble {
		scrambler.Descramble(buf)
	}
	return p.framer.Decode(buf)
}
