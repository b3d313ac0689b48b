// Package harness implements the BER-vs-Eb/N0 sweep described in spec.md
// §2 and exercised by testable scenarios S3/S4: it drives the full
// encode -> channel -> decode chain over a list of Eb/N0 values and reports
// bit-error-rate, RS per-block error counts, and frame accounting.
package harness

import (
	"math/bits"
	"math/rand"

	"github.com/dbehnke/ccsds-fec/pkg/channel"
	"github.com/dbehnke/ccsds-fec/pkg/pipeline"
	"github.com/dbehnke/ccsds-fec/pkg/viterbi"
)

// SweepConfig parameterizes a BER sweep.
type SweepConfig struct {
	Pipeline    pipeline.Config
	EbN0dB      []float64
	FramesPerPt int
	Seed        int64
}

// Point is one Eb/N0 sample's aggregate result.
type Point struct {
	EbN0dB           float64
	BitErrors        uint64
	BitsCompared     uint64
	BER              float64
	FramesReceived   int
	FramesDecoded    int
	SubframesDecoded int
	SubframesTotal   int
}

// Sweep runs cfg.FramesPerPt random-payload frames through the configured
// pipeline at each Eb/N0 point and reports BER plus frame/subframe
// accounting (spec §4.4, §7). File I/O for BER results is out of scope;
// Sweep returns structured values to its caller.
func Sweep(cfg SweepConfig) ([]Point, error) {
	p, err := pipeline.New(cfg.Pipeline)
	if err != nil {
		return nil, err
	}
	pattern, err := viterbi.PatternByName(cfg.Pipeline.PuncturingType)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	rate := rateOf(cfg.Pipeline)

	points := make([]Point, 0, len(cfg.EbN0dB))
	for _, ebn0 := range cfg.EbN0dB {
		pt := Point{EbN0dB: ebn0, SubframesTotal: cfg.Pipeline.NInterleave * cfg.FramesPerPt}
		ch := channel.NewAWGNChannel(ebn0, rate, rng.Int63())

		for f := 0; f < cfg.FramesPerPt; f++ {
			payload := make([]byte, p.PayloadLen())
			rng.Read(payload)

			enc, err := p.Encode(payload)
			if err != nil {
				return nil, err
			}

			pt.FramesReceived++

			var dr pipeline.DecodeResult
			if cfg.Pipeline.Mode == pipeline.OnlyRS {
				hard := ch.TransmitHard(enc.Bits)
				dr, err = p.Decode(hard)
			} else {
				noisy := ch.TransmitSoft(enc.Bits)
				full := viterbi.ExpandErasures(pattern, noisy, enc.TrellisLen)
				dr, err = p.Decode(full)
			}
			if err != nil || !dr.Locked {
				continue
			}
			pt.FramesDecoded++

			for _, b := range dr.Frame.Blocks {
				if b.OK {
					pt.SubframesDecoded++
				}
			}

			pt.BitErrors += countBitErrors(payload, dr.Frame.Payload)
			pt.BitsCompared += uint64(len(payload)) * 8
		}

		if pt.BitsCompared > 0 {
			pt.BER = float64(pt.BitErrors) / float64(pt.BitsCompared)
		}
		points = append(points, pt)
	}
	return points, nil
}

func countBitErrors(a, b []byte) uint64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var errs uint64
	for i := 0; i < n; i++ {
		errs += uint64(bits.OnesCount8(a[i] ^ b[i]))
	}
	return errs
}

func rateOf(cfg pipeline.Config) float64 {
	if cfg.Mode == pipeline.OnlyRS {
		return 1.0
	}
	switch cfg.PuncturingType {
	case "1/2":
		return 0.5
	case "2/3":
		return 2.0 / 3.0
	case "3/4":
		return 0.75
	case "5/6":
		return 5.0 / 6.0
	case "7/8":
		return 7.0 / 8.0
	default:
		return 0.5
	}
}
