package config

import "fmt"

var validPuncturingTypes = map[string]bool{
	"1/2": true, "2/3": true, "3/4": true, "5/6": true, "7/8": true,
}

var validModes = map[string]bool{
	"ONLY_RS": true, "ONLY_CC": true, "RS_AND_CC": true,
}

// validate validates the configuration, surfacing spec.md §7's
// Configuration error taxonomy at initialization: unknown puncturing
// pattern, I out of range, T not a multiple of 8, M+T >= P.
func validate(cfg *Config) error {
	p := cfg.Pipeline
	if p.NInterleave < 1 || p.NInterleave > 8 {
		return fmt.Errorf("pipeline.n_interleave must be in [1,8], got %d", p.NInterleave)
	}
	if !validPuncturingTypes[p.PuncturingType] {
		return fmt.Errorf("pipeline.puncturing_type %q is not one of 1/2, 2/3, 3/4, 5/6, 7/8", p.PuncturingType)
	}
	if !validModes[p.Mode] {
		return fmt.Errorf("pipeline.mode %q is not one of ONLY_RS, ONLY_CC, RS_AND_CC", p.Mode)
	}
	if p.Threshold < 0 || p.Threshold > 32 {
		return fmt.Errorf("pipeline.threshold must be in [0,32], got %d", p.Threshold)
	}

	v := cfg.Viterbi
	if v.TraceChunk%8 != 0 {
		return fmt.Errorf("viterbi.trace_chunk %d must be a multiple of 8", v.TraceChunk)
	}
	if v.MergeDist+v.TraceChunk >= v.PathMem {
		return fmt.Errorf("viterbi.merge_dist+trace_chunk (%d) must be less than path_mem (%d)", v.MergeDist+v.TraceChunk, v.PathMem)
	}
	if v.PathMem&(v.PathMem-1) != 0 {
		return fmt.Errorf("viterbi.path_mem %d must be a power of two", v.PathMem)
	}

	h := cfg.Harness
	if h.FramesPerPt <= 0 {
		return fmt.Errorf("harness.frames_per_point must be positive")
	}
	if h.EbN0StepDB <= 0 && h.EbN0StopDB != h.EbN0StartDB {
		return fmt.Errorf("harness.ebn0_step_db must be positive")
	}

	if cfg.Web.Enabled {
		if cfg.Web.Port <= 0 || cfg.Web.Port > 65535 {
			return fmt.Errorf("web.port must be between 1 and 65535")
		}
	}

	if cfg.MQTT.Enabled {
		if cfg.MQTT.Broker == "" {
			return fmt.Errorf("mqtt.broker is required when mqtt is enabled")
		}
	}

	return nil
}
