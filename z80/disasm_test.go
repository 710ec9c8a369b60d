package z80

import "testing"

func readerFor(bytes ...byte) Reader {
	return func(addr uint16) byte {
		if int(addr) < len(bytes) {
			return bytes[addr]
		}
		return 0
	}
}

func TestDisassembleBaseForms(t *testing.T) {
	cases := []struct {
		bytes []byte
		want  string
		size  int
	}{
		{[]byte{0x00}, "NOP", 1},
		{[]byte{0x76}, "HALT", 1},
		{[]byte{0x3E, 0x15}, "LD A,0x15", 2},
		{[]byte{0xC6, 0x27}, "ADD A, 0x27", 2},
		{[]byte{0xCD, 0x10, 0x00}, "CALL 0x0010", 3},
		{[]byte{0xC9}, "RET", 1},
	}
	for _, tc := range cases {
		text, size := Disassemble(readerFor(tc.bytes...), 0)
		if size != tc.size {
			t.Errorf("%v: size = %d, want %d", tc.bytes, size, tc.size)
		}
		if text != tc.want {
			t.Errorf("%v: text = %q, want %q", tc.bytes, text, tc.want)
		}
	}
}

func TestDisassembleCBForm(t *testing.T) {
	text, size := Disassemble(readerFor(0xCB, 0x7F), 0)
	if text != "BIT 7,A" || size != 2 {
		t.Errorf("CB 7F = %q/%d, want \"BIT 7,A\"/2", text, size)
	}
}

func TestDisassembleIndexedForm(t *testing.T) {
	text, size := Disassemble(readerFor(0xDD, 0x7E, 0xFB), 0)
	if text != "LD A,(IX-5)" || size != 3 {
		t.Errorf("DD 7E FB = %q/%d, want \"LD A,(IX-5)\"/3", text, size)
	}
}

func TestDisassembleEDForm(t *testing.T) {
	text, size := Disassemble(readerFor(0xED, 0xB0), 0)
	if text != "LDIR" || size != 2 {
		t.Errorf("ED B0 = %q/%d, want \"LDIR\"/2", text, size)
	}
}
