package eqoi

import (
	"fmt"
	"strings"
)

// Stats counts the opcodes of one encoded or decoded stream
type Stats struct {
	Ops    [numTags]int // opcodes per tag
	Pixels int          // pixels covered by the stream
	RunLen int          // pixels covered by RUN opcodes
	Bytes  int          // compressed bytes
}

func (s *Stats) record(t Tag) {
	s.Ops[t]++
	s.Bytes += t.Len()
}

// Count returns the number of opcodes with the given tag
func (s Stats) Count(t Tag) int {
	if t >= numTags {
		return 0
	}
	return s.Ops[t]
}

// Opcodes returns the total number of opcodes
func (s Stats) Opcodes() int {
	n := 0
	for _, c := range s.Ops {
		n += c
	}
	return n
}

// Ratio returns compressed size over raw size
func (s Stats) Ratio() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.Bytes) / float64(s.Pixels*BytesPerPixel)
}

// String renders a one-line histogram in decoder priority order
func (s Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pixels=%d bytes=%d ratio=%.4f", s.Pixels, s.Bytes, s.Ratio())
	for _, t := range Tags {
		fmt.Fprintf(&sb, " %s=%d", t, s.Ops[t])
	}
	return sb.String()
}
