package container

import (
	"bufio"
	"fmt"
	"io"
)

// WriteMemh writes data as one two-digit hex byte per line, the format read by
// Verilog $readmemh
func WriteMemh(w io.Writer, data []byte) error {
	bw := bufio.NewWriter(w)
	for _, b := range data {
		if _, err := fmt.Fprintf(bw, "%02x\n", b); err != nil {
			return err
		}
	}
	return bw.Flush()
}
