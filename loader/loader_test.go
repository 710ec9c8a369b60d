package loader

import "testing"

func newMem() []byte { return make([]byte, 0x10000) }

func TestLoadBinaryPlacesBytesAtBase(t *testing.T) {
	mem := newMem()
	if err := LoadBinary(mem, []byte{0xAA, 0xBB, 0xCC}, 0x0100); err != nil {
		t.Fatalf("LoadBinary: %v", err)
	}
	if mem[0x0100] != 0xAA || mem[0x0101] != 0xBB || mem[0x0102] != 0xCC {
		t.Fatalf("bytes not placed at base: %x %x %x", mem[0x0100], mem[0x0101], mem[0x0102])
	}
}

func TestLoadBinaryRejectsOversizedImage(t *testing.T) {
	mem := newMem()
	oversized := make([]byte, 0x10001)
	if err := LoadBinary(mem, oversized, 0); err == nil {
		t.Fatalf("expected ErrImageTooLarge, got nil")
	}
}

const sampleHex = ":10010000214001112700C300000000000000000092\n" +
	":00000001FF\n"

func TestLoadIntelHexIsIdempotent(t *testing.T) {
	mem1 := newMem()
	if err := LoadIntelHex(mem1, []byte(sampleHex)); err != nil {
		t.Fatalf("first load: %v", err)
	}
	mem2 := newMem()
	if err := LoadIntelHex(mem2, []byte(sampleHex)); err != nil {
		t.Fatalf("second load: %v", err)
	}
	for i := range mem1 {
		if mem1[i] != mem2[i] {
			t.Fatalf("loads diverged at 0x%04X: %x vs %x", i, mem1[i], mem2[i])
		}
	}
	if mem1[0x0100] != 0x21 {
		t.Fatalf("expected data at 0x0100, got 0x%02X", mem1[0x0100])
	}
}

func TestLoadIntelHexRejectsBadChecksum(t *testing.T) {
	mem := newMem()
	bad := ":10010000214001112700C300000000000000000091\n"
	if err := LoadIntelHex(mem, []byte(bad)); err == nil {
		t.Fatalf("expected checksum error")
	}
}

func TestDetectBySuffix(t *testing.T) {
	if got := Detect("game.COM", nil); got != SystemCPM {
		t.Fatalf("Detect(.COM) = %v, want SystemCPM", got)
	}
	if got := Detect("monitor.hex", nil); got != SystemBasicSBC {
		t.Fatalf("Detect(.hex) = %v, want SystemBasicSBC", got)
	}
}

func TestIsIntelHex(t *testing.T) {
	if !IsIntelHex([]byte(":10")) {
		t.Fatalf("expected IsIntelHex true for leading colon")
	}
	if IsIntelHex([]byte{0x00, 0x01}) {
		t.Fatalf("expected IsIntelHex false for binary data")
	}
}
