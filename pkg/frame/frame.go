// Package frame assembles and disassembles the wire-level frame layout:
// a 4-byte ASM followed by the scrambled codeword region (spec §4, §6).
package frame

// ASM is the CCSDS attached sync marker, transmitted MSB-first and never
// scrambled.
const ASM uint32 = 0x1ACFFC1D

// ASMBytes returns the ASM as its 4 big-endian (MSB-first) wire bytes.
func ASMBytes() [4]byte {
	return [4]byte{
		byte(ASM >> 24),
		byte(ASM >> 16 & 0xFF),
		byte(ASM >> 8 & 0xFF),
		byte(ASM & 0xFF),
	}
}

// Assemble prepends the ASM to an already-scrambled codeword region.
func Assemble(codeword []byte) []byte {
	asm := ASMBytes()
	out := make([]byte, 4+len(codeword))
	copy(out, asm[:])
	copy(out[4:], codeword)
	return out
}

// Len returns the total frame length for a codeword region of n bytes
// (4 + n).
func Len(codewordLen int) int { return 4 + codewordLen }

// BytesToBits unpacks bytes into MSB-first 0/1 bytes, the wire convention
// used everywhere in this chain (encoder input scan, ASM bit shift, RS
// byte input).
func BytesToBits(data []byte) []byte {
	bits := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>uint(i))&1)
		}
	}
	return bits
}

// BitsToBytes packs MSB-first 0/1 bytes back into bytes. Trailing bits that
// don't fill a full byte are dropped.
func BitsToBytes(bits []byte) []byte {
	n := len(bits) / 8
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		var b byte
		for j := 0; j < 8; j++ {
			b = (b << 1) | (bits[i*8+j] & 1)
		}
		out[i] = b
	}
	return out
}
