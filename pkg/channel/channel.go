// Package channel supplies the external collaborator spec.md names as
// out of scope for the core chain: BPSK modulation plus an AWGN channel,
// grounded on original_source/main.cc's gaussian_noise and soft_decision
// functions. Treated as a pluggable interface rather than hard-wired into
// the harness so the test suite can swap in a noiseless or bit-flipping
// stand-in.
package channel

// Channel turns hard coded bits (0/1 bytes, MSB-first per the wire
// convention) into either soft samples (for the Viterbi path) or
// hard-demodulated bits (for the ONLY_RS path, spec §9's hard/soft
// asymmetry note).
type Channel interface {
	// TransmitSoft returns one offset-binary soft sample (0-255) per input
	// bit.
	TransmitSoft(bits []byte) []byte
	// TransmitHard returns one hard 0/1 bit per input bit.
	TransmitHard(bits []byte) []byte
}
