package eqoi

import "fmt"

// Opcode tags as written to the stream
const (
	OpIndex = byte(0x00) // 000xxxxx
	OpDiff3 = byte(0x20) // 001xxxxx
	OpDiff  = byte(0x40) // 01xxxxxx
	OpLuma  = byte(0x80) // 10xxxxxx
	OpDiff2 = byte(0xc0) // 110xxxxx
	OpRun   = byte(0xe0) // 111xxxxx
	OpRGB   = byte(0xff) // 11111111

	// mask2 and mask3 select 2-bit and 3-bit tags
	mask2 = byte(0xc0)
	mask3 = byte(0xe0)

	// MaxRun is the longest run a single RUN opcode can carry
	MaxRun = 31
)

// Tag identifies the opcode a leading byte starts
type Tag uint8

const (
	TagRGB Tag = iota
	TagDiff2
	TagRun
	TagIndex
	TagDiff3
	TagDiff
	TagLuma

	numTags
)

var tagNames = [numTags]string{
	TagRGB:   "RGB",
	TagDiff2: "DIFF2",
	TagRun:   "RUN",
	TagIndex: "INDEX",
	TagDiff3: "DIFF3",
	TagDiff:  "DIFF",
	TagLuma:  "LUMA",
}

var tagLengths = [numTags]int{
	TagRGB:   4,
	TagDiff2: 3,
	TagRun:   1,
	TagIndex: 1,
	TagDiff3: 2,
	TagDiff:  1,
	TagLuma:  2,
}

// Tags lists every tag in decoder priority order
var Tags = [...]Tag{TagDiff2, TagRGB, TagRun, TagIndex, TagDiff3, TagDiff, TagLuma}

func (t Tag) String() string {
	if t < numTags {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// Len returns the total opcode length in bytes, leading byte included
func (t Tag) Len() int {
	if t < numTags {
		return tagLengths[t]
	}
	return 0
}

// Classify maps a leading byte to its opcode.
// The checks run in a fixed order because 0xff (RGB) is also a 111xxxxx
// pattern; every byte value maps to exactly one tag.
func Classify(b byte) Tag {
	switch {
	case b&mask3 == OpDiff2:
		return TagDiff2
	case b == OpRGB:
		return TagRGB
	case b&mask3 == OpRun:
		return TagRun
	case b&mask3 == OpIndex:
		return TagIndex
	case b&mask3 == OpDiff3:
		return TagDiff3
	case b&mask2 == OpDiff:
		return TagDiff
	default:
		return TagLuma
	}
}

// fits reports whether the 8-bit delta v is representable as a bits-wide
// two's-complement value: the top 9-bits bits of v are all zero or all one.
func fits(v uint8, bits uint) bool {
	m := byte(0xff) << (bits - 1)
	return v&m == m || v&m == 0
}

// signExtend widens a bits-wide two's-complement field to 8 bits
func signExtend(v uint8, bits uint) uint8 {
	if v&(1<<(bits-1)) != 0 {
		v |= byte(0xff) << bits
	}
	return v
}
