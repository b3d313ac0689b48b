package rs

import "fmt"

// Framer wires RS encode/decode across N interleaved (or contiguous) blocks,
// grounded on original_source/ccsds_rs_encoder.cc and ccsds_rs_decoder.cc's
// gather-encode-scatter / deinterleave-decode-accumulate structure.
type Framer struct {
	N          int  // n_interleave, depth I, 1..8
	Interleave bool // apply depth-N interleave/deinterleave stride
	DualBasis  bool
	RSEncode   bool // if false, parity bytes are zeroed on encode
	RSDecode   bool // if false, blocks pass through undecoded
}

// NewFramer validates N and returns a Framer.
func NewFramer(n int, interleave, dualBasis, rsEncode, rsDecode bool) (*Framer, error) {
	if n < 1 || n > 8 {
		return nil, fmt.Errorf("rs: n_interleave %d out of range [1,8]", n)
	}
	return &Framer{
		N:          n,
		Interleave: interleave,
		DualBasis:  dualBasis,
		RSEncode:   rsEncode,
		RSDecode:   rsDecode,
	}, nil
}

// CodewordLen is the total size of the N-block codeword region.
func (fr *Framer) CodewordLen() int { return BlockLen * fr.N }

// PayloadLen is the total payload size, N*223 bytes.
func (fr *Framer) PayloadLen() int { return DataLen * fr.N }

// Encode gathers N*223 payload bytes into N RS blocks (strided by N if
// interleaving is enabled, contiguous otherwise), RS-encodes each, and
// scatters them back into an N*255 codeword region with the same stride
// convention.
func (fr *Framer) Encode(payload []byte) ([]byte, error) {
	if len(payload) != fr.PayloadLen() {
		return nil, fmt.Errorf("rs: payload must be %d bytes, got %d", fr.PayloadLen(), len(payload))
	}
	codeword := make([]byte, fr.CodewordLen())

	for i := 0; i < fr.N; i++ {
		data := make([]byte, DataLen)
		for j := 0; j < DataLen; j++ {
			data[j] = payload[fr.gatherIndex(i, j, DataLen)]
		}

		var block []byte
		if fr.RSEncode {
			var err error
			block, err = EncodeBlock(data, fr.DualBasis)
			if err != nil {
				return nil, err
			}
		} else {
			block = make([]byte, BlockLen)
			copy(block, data)
		}

		for j := 0; j < BlockLen; j++ {
			codeword[fr.gatherIndex(i, j, BlockLen)] = block[j]
		}
	}
	return codeword, nil
}

// BlockResult reports one RS block's decode outcome.
type BlockResult struct {
	Errors int
	OK     bool
}

// FrameResult summarizes a decoded frame's per-block outcomes.
type FrameResult struct {
	Blocks  []BlockResult
	Payload []byte
	Success bool // false if any block reported FAILURE
}

// Decode deinterleaves the codeword region into N blocks, RS-decodes each
// (or passes through if RSDecode is false), and reassembles the payload.
// A block FAILURE marks Success false but does not stop other subblocks
// from being processed.
func (fr *Framer) Decode(codeword []byte) (*FrameResult, error) {
	if len(codeword) != fr.CodewordLen() {
		return nil, fmt.Errorf("rs: codeword must be %d bytes, got %d", fr.CodewordLen(), len(codeword))
	}
	result := &FrameResult{
		Blocks:  make([]BlockResult, fr.N),
		Payload: make([]byte, fr.PayloadLen()),
		Success: true,
	}

	for i := 0; i < fr.N; i++ {
		block := make([]byte, BlockLen)
		for j := 0; j < BlockLen; j++ {
			block[j] = codeword[fr.gatherIndex(i, j, BlockLen)]
		}

		if fr.RSDecode {
			errs, ok := DecodeBlock(block, fr.DualBasis)
			result.Blocks[i] = BlockResult{Errors: errs, OK: ok}
			if !ok {
				result.Success = false
			}
		} else {
			result.Blocks[i] = BlockResult{Errors: 0, OK: true}
		}

		for j := 0; j < DataLen; j++ {
			result.Payload[fr.gatherIndex(i, j, DataLen)] = block[j]
		}
	}
	return result, nil
}

// gatherIndex maps (subblock i, within-block offset j) to a flat index in a
// region holding N blocks of the given per-block width: strided by N when
// Interleave is enabled (payload[i + N*j]), contiguous per-block otherwise
// (payload[i*width + j]).
func (fr *Framer) gatherIndex(i, j, width int) int {
	if !fr.Interleave {
		return i*width + j
	}
	return i + fr.N*j
}
