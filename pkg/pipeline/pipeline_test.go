package pipeline

import (
	"testing"

	"github.com/dbehnke/ccsds-fec/pkg/viterbi"
)

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NInterleave = 9
	if _, err := New(cfg); err == nil {
		t.Error("expected error for out-of-range n_interleave")
	}
}

func TestPipeline_OnlyRS_NoiselessRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = OnlyRS

	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	payload := make([]byte, p.PayloadLen())
	for i := range payload {
		payload[i] = byte(i*41 + 3)
	}

	enc, err := p.Encode(payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if enc.TrellisLen != 0 {
		t.Errorf("TrellisLen = %d, want 0 in OnlyRS mode", enc.TrellisLen)
	}

	dr, err := p.Decode(enc.Bits)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !dr.Locked {
		t.Fatal("expected ASM lock on a noiseless stream")
	}
	if !dr.Frame.Success {
		t.Fatal("expected RS decode success on an unmodified stream")
	}
	for i, b := range dr.Frame.Payload {
		if b != payload[i] {
			t.Fatalf("payload byte %d = %#x, want %#x", i, b, payload[i])
		}
	}
}

func TestPipeline_RSAndCC_NoiselessRoundTrip(t *testing.T) {
	cfg := DefaultConfig()

	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pattern, err := viterbi.PatternByName(cfg.PuncturingType)
	if err != nil {
		t.Fatalf("PatternByName: %v", err)
	}

	payload := make([]byte, p.PayloadLen())
	for i := range payload {
		payload[i] = byte(i*17 + 9)
	}

	enc, err := p.Encode(payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if enc.TrellisLen == 0 {
		t.Fatal("expected nonzero TrellisLen in RSAndCC mode")
	}

	noiselessSoft := make([]byte, len(enc.Bits))
	for i, b := range enc.Bits {
		if b == 1 {
			noiselessSoft[i] = 255
		} else {
			noiselessSoft[i] = 0
		}
	}
	full := viterbi.ExpandErasures(pattern, noiselessSoft, enc.TrellisLen)

	dr, err := p.Decode(full)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !dr.Locked {
		t.Fatal("expected ASM lock after Viterbi decode")
	}
	if !dr.Frame.Success {
		t.Fatal("expected RS decode success on a noiseless channel")
	}
	for i, b := range dr.Frame.Payload {
		if b != payload[i] {
			t.Fatalf("payload byte %d = %#x, want %#x", i, b, payload[i])
		}
	}
}

func TestPipeline_Decode_FailsWithoutASMLock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = OnlyRS
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	garbage := make([]byte, 40)
	for i := range garbage {
		garbage[i] = byte(i % 2)
	}
	if _, err := p.Decode(garbage); err == nil {
		t.Error("expected error when the ASM never locks within the supplied stream")
	}
}

func TestPipeline_DecodeAlignedBytes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = OnlyRS
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	payload := make([]byte, p.PayloadLen())
	for i := range payload {
		payload[i] = byte(i * 3)
	}

	enc, err := p.Encode(payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	assembled := frameBytesFromBits(enc.Bits)
	codeword := assembled[4:]

	fr, err := p.DecodeAlignedBytes(codeword)
	if err != nil {
		t.Fatalf("DecodeAlignedBytes: %v", err)
	}
	if !fr.Success {
		t.Fatal("expected RS decode success")
	}
	for i, b := range fr.Payload {
		if b != payload[i] {
			t.Fatalf("payload byte %d = %#x, want %#x", i, b, payload[i])
		}
	}
}

func frameBytesFromBits(bits []byte) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			b = (b << 1) | (bits[i*8+j] & 1)
		}
		out[i] = b
	}
	return out
}
