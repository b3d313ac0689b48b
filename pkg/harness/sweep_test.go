package harness

import (
	"math"
	"testing"

	"github.com/dbehnke/ccsds-fec/pkg/pipeline"
)

func TestSweep_ProducesOnePointPerEbN0(t *testing.T) {
	cfg := SweepConfig{
		Pipeline:    pipeline.DefaultConfig(),
		EbN0dB:      []float64{0, 3, 6},
		FramesPerPt: 2,
		Seed:        1,
	}
	points, err := Sweep(cfg)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(points) != len(cfg.EbN0dB) {
		t.Fatalf("len(points) = %d, want %d", len(points), len(cfg.EbN0dB))
	}
	for i, pt := range points {
		if pt.EbN0dB != cfg.EbN0dB[i] {
			t.Errorf("point %d EbN0dB = %f, want %f", i, pt.EbN0dB, cfg.EbN0dB[i])
		}
		if pt.FramesReceived != cfg.FramesPerPt {
			t.Errorf("point %d FramesReceived = %d, want %d", i, pt.FramesReceived, cfg.FramesPerPt)
		}
	}
}

// At a very high Eb/N0 the channel is effectively noiseless; the sweep
// should decode every frame with zero bit errors.
func TestSweep_HighEbN0_NoErrors(t *testing.T) {
	cfg := SweepConfig{
		Pipeline:    pipeline.DefaultConfig(),
		EbN0dB:      []float64{20},
		FramesPerPt: 3,
		Seed:        7,
	}
	points, err := Sweep(cfg)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	pt := points[0]
	if pt.FramesDecoded != cfg.FramesPerPt {
		t.Errorf("FramesDecoded = %d, want %d at high Eb/N0", pt.FramesDecoded, cfg.FramesPerPt)
	}
	if pt.BitErrors != 0 {
		t.Errorf("BitErrors = %d, want 0 at high Eb/N0", pt.BitErrors)
	}
	if pt.BER != 0 {
		t.Errorf("BER = %f, want 0 at high Eb/N0", pt.BER)
	}
	if pt.SubframesDecoded != pt.SubframesTotal {
		t.Errorf("SubframesDecoded = %d, want %d", pt.SubframesDecoded, pt.SubframesTotal)
	}
}

func TestSweep_DeterministicWithSeed(t *testing.T) {
	cfg := SweepConfig{
		Pipeline:    pipeline.DefaultConfig(),
		EbN0dB:      []float64{1.5},
		FramesPerPt: 2,
		Seed:        99,
	}
	p1, err := Sweep(cfg)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	p2, err := Sweep(cfg)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if p1[0].BitErrors != p2[0].BitErrors || p1[0].BitsCompared != p2[0].BitsCompared {
		t.Error("identical seed should reproduce identical sweep results")
	}
}

func TestCountBitErrors(t *testing.T) {
	a := []byte{0xFF, 0x00}
	b := []byte{0x0F, 0x0F}
	if got := countBitErrors(a, b); got != 8 {
		t.Errorf("countBitErrors = %d, want 8", got)
	}
	if got := countBitErrors(a, a); got != 0 {
		t.Errorf("countBitErrors(a,a) = %d, want 0", got)
	}
}

func TestRateOf(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	cfg.Mode = pipeline.OnlyRS
	if got := rateOf(cfg); got != 1.0 {
		t.Errorf("rateOf(OnlyRS) = %f, want 1.0", got)
	}

	cfg.Mode = pipeline.RSAndCC
	cases := map[string]float64{
		"1/2": 0.5,
		"2/3": 2.0 / 3.0,
		"3/4": 0.75,
		"5/6": 5.0 / 6.0,
		"7/8": 7.0 / 8.0,
	}
	for name, want := range cases {
		cfg.PuncturingType = name
		if got := rateOf(cfg); math.Abs(got-want) > 1e-9 {
			t.Errorf("rateOf(%s) = %f, want %f", name, got, want)
		}
	}
}
