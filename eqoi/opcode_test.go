package eqoi

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		b    byte
		want Tag
	}{
		{0x00, TagIndex},
		{0x1f, TagIndex},
		{0x20, TagDiff3},
		{0x3f, TagDiff3},
		{0x40, TagDiff},
		{0x7f, TagDiff},
		{0x80, TagLuma},
		{0xbf, TagLuma},
		{0xc0, TagDiff2},
		{0xdf, TagDiff2},
		{0xe0, TagRun},
		{0xfe, TagRun},
		{0xff, TagRGB},
	}

	for _, tt := range tests {
		if got := Classify(tt.b); got != tt.want {
			t.Errorf("Classify(%#02x) = %s, want %s", tt.b, got, tt.want)
		}
	}
}

func TestClassifyCoversEveryByte(t *testing.T) {
	counts := make(map[Tag]int)
	for v := 0; v < 256; v++ {
		tag := Classify(byte(v))
		if tag.Len() == 0 {
			t.Fatalf("Classify(%#02x) returned unknown tag %s", v, tag)
		}
		counts[tag]++
	}

	want := map[Tag]int{
		TagIndex: 32,
		TagDiff3: 32,
		TagDiff:  64,
		TagLuma:  64,
		TagDiff2: 32,
		TagRun:   31,
		TagRGB:   1,
	}
	for tag, n := range want {
		if counts[tag] != n {
			t.Errorf("%s covers %d byte values, want %d", tag, counts[tag], n)
		}
	}
}

func TestFitsAndSignExtend(t *testing.T) {
	for bits := uint(2); bits <= 7; bits++ {
		lo := -(1 << (bits - 1))
		hi := (1 << (bits - 1)) - 1
		for v := 0; v < 256; v++ {
			signed := int(int8(uint8(v)))
			want := signed >= lo && signed <= hi
			if got := fits(uint8(v), bits); got != want {
				t.Errorf("fits(%#02x, %d) = %v, want %v", v, bits, got, want)
			}
			if want {
				field := uint8(v) & (1<<bits - 1)
				if got := signExtend(field, bits); got != uint8(v) {
					t.Errorf("signExtend(%#02x, %d) = %#02x, want %#02x", field, bits, got, v)
				}
			}
		}
	}
}

func TestTagString(t *testing.T) {
	if TagDiff2.String() != "DIFF2" {
		t.Errorf("TagDiff2.String() = %q", TagDiff2.String())
	}
	if Tag(200).String() != "Tag(200)" {
		t.Errorf("Tag(200).String() = %q", Tag(200).String())
	}
}
