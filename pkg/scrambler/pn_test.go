package scrambler

import "testing"

func TestApply_SelfInverse(t *testing.T) {
	original := make([]byte, 600)
	for i := range original {
		original[i] = byte(i*13 + 7)
	}

	scrambled := Scramble(append([]byte(nil), original...))
	descrambled := Descramble(append([]byte(nil), scrambled...))

	for i := range original {
		if descrambled[i] != original[i] {
			t.Fatalf("byte %d = %#x after scramble/descramble round trip, want %#x", i, descrambled[i], original[i])
		}
	}
}

func TestScramble_ChangesData(t *testing.T) {
	data := make([]byte, 255)
	scrambled := Scramble(append([]byte(nil), data...))
	same := true
	for i := range data {
		if scrambled[i] != data[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("scrambling an all-zero buffer should not leave it unchanged")
	}
}

func TestPNTable_PeriodAndNonTrivial(t *testing.T) {
	// Scrambling 510 bytes of zeros yields the table itself twice in a row
	// (XOR with zero is identity): the table must repeat every 255 bytes
	// and must not be constant.
	zeros := make([]byte, 255*2)
	out := Scramble(append([]byte(nil), zeros...))
	for i := 0; i < 255; i++ {
		if out[i] != out[i+255] {
			t.Fatalf("PN table does not repeat with period 255 at offset %d", i)
		}
	}

	allSame := true
	for i := 1; i < 255; i++ {
		if out[i] != out[0] {
			allSame = false
			break
		}
	}
	if allSame {
		t.Error("PN table should not be constant")
	}
}
