// Command eqoi encodes images to enhanced QOI streams, decodes them back and
// compares the results.
//
// Usage:
//
//	eqoi encode [-order bgr|rgb] [-zstd] [-memh file] <in image> <out.eqoi>
//	eqoi decode [-order bgr|rgb] <in.eqoi> <out.bmp|out.png>
//	eqoi compare <a> <b>
//	eqoi stats [-order bgr|rgb] <in image>
//
// Image pixels are handed to the codec as R,G,B bytes. With the default bgr
// order the codec reads those bytes as B,G,R, which is what the hardware
// reference model sees; -order rgb reads them as they are.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cocosip/go-eqoi-codec/container"
	"github.com/cocosip/go-eqoi-codec/eqoi"
)

// errImagesDiffer makes compare exit non-zero
var errImagesDiffer = errors.New("images differ")

func main() {
	log.SetFlags(0)
	log.SetPrefix("eqoi: ")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  eqoi encode [-order bgr|rgb] [-zstd] [-memh file] <in image> <out.eqoi>")
	fmt.Fprintln(w, "  eqoi decode [-order bgr|rgb] <in.eqoi> <out.bmp|out.png>")
	fmt.Fprintln(w, "  eqoi compare <a> <b>")
	fmt.Fprintln(w, "  eqoi stats [-order bgr|rgb] <in image>")
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		usage(stdout)
		return flag.ErrHelp
	}

	switch args[0] {
	case "encode":
		return runEncode(args[1:], stdout)
	case "decode":
		return runDecode(args[1:], stdout)
	case "compare":
		return runCompare(args[1:], stdout)
	case "stats":
		return runStats(args[1:], stdout)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(stdout)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// orderFlag registers -order on fs
func orderFlag(fs *flag.FlagSet) *string {
	return fs.String("order", "bgr", "channel order the codec reads raw pixels in (bgr or rgb)")
}

func parseArgs(fs *flag.FlagSet, args []string, want int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != want {
		fs.Usage()
		return nil, fmt.Errorf("%s: want %d arguments, got %d", fs.Name(), want, fs.NArg())
	}
	return fs.Args(), nil
}

func runEncode(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(stdout)
	order := orderFlag(fs)
	packed := fs.Bool("zstd", false, "wrap the framed stream in zstd")
	memh := fs.String("memh", "", "also write the opcode stream as a $readmemh hex file")
	rest, err := parseArgs(fs, args, 2)
	if err != nil {
		return err
	}

	params, err := parameters(*order)
	if err != nil {
		return err
	}
	img, err := loadImage(rest[0])
	if err != nil {
		return err
	}
	raw, width, height := rawPixels(img)
	fmt.Fprintf(stdout, "input image (w%d h%d)\n", width, height)

	encoder, err := eqoi.NewEncoder(width, height, params.Order)
	if err != nil {
		return err
	}
	encoded, err := encoder.Encode(raw)
	if err != nil {
		return err
	}
	stats := encoder.Stats()
	fmt.Fprintf(stdout, "compressed %d -> %d bytes, ratio = %f\n", len(raw), len(encoded), stats.Ratio())

	header, err := container.NewHeader(width, height, encoded)
	if err != nil {
		return err
	}
	if err := writeFile(rest[1], func(w io.Writer) error {
		if *packed {
			return container.WritePacked(w, header, encoded)
		}
		return container.Write(w, header, encoded)
	}); err != nil {
		return err
	}

	if *memh != "" {
		if err := writeFile(*memh, func(w io.Writer) error {
			return container.WriteMemh(w, encoded)
		}); err != nil {
			return err
		}
	}
	return nil
}

func runDecode(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stdout)
	order := orderFlag(fs)
	rest, err := parseArgs(fs, args, 2)
	if err != nil {
		return err
	}

	params, err := parameters(*order)
	if err != nil {
		return err
	}
	f, err := os.Open(rest[0])
	if err != nil {
		return err
	}
	header, encoded, err := container.ReadAuto(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read %s: %w", rest[0], err)
	}

	width, height := int(header.Width), int(header.Height)
	raw, err := eqoi.DecodeWithParameters(encoded, width, height, params)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "output image (w%d h%d)\n", width, height)

	return saveImage(rest[1], fromRawPixels(raw, width, height))
}

func runCompare(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	fs.SetOutput(stdout)
	rest, err := parseArgs(fs, args, 2)
	if err != nil {
		return err
	}

	a, err := loadImage(rest[0])
	if err != nil {
		return err
	}
	b, err := loadImage(rest[1])
	if err != nil {
		return err
	}
	rawA, wa, ha := rawPixels(a)
	rawB, wb, hb := rawPixels(b)
	fmt.Fprintf(stdout, "file1 size = %dx%d\n", wa, ha)
	fmt.Fprintf(stdout, "file2 size = %dx%d\n", wb, hb)
	if wa != wb || ha != hb {
		return fmt.Errorf("%w: sizes %dx%d and %dx%d", errImagesDiffer, wa, ha, wb, hb)
	}

	differ := 0
	for i := 0; i < len(rawA); i += 3 {
		if rawA[i] != rawB[i] || rawA[i+1] != rawB[i+1] || rawA[i+2] != rawB[i+2] {
			differ++
		}
	}
	if differ > 0 {
		return fmt.Errorf("%w: %d different pixels", errImagesDiffer, differ)
	}
	fmt.Fprintln(stdout, "the two files are the same")
	return nil
}

func runStats(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(stdout)
	order := orderFlag(fs)
	rest, err := parseArgs(fs, args, 1)
	if err != nil {
		return err
	}

	params, err := parameters(*order)
	if err != nil {
		return err
	}
	img, err := loadImage(rest[0])
	if err != nil {
		return err
	}
	raw, width, height := rawPixels(img)

	encoder, err := eqoi.NewEncoder(width, height, params.Order)
	if err != nil {
		return err
	}
	if _, err := encoder.Encode(raw); err != nil {
		return err
	}
	stats := encoder.Stats()

	fmt.Fprintf(stdout, "%dx%d %s\n", width, height, stats)
	for _, tag := range eqoi.Tags {
		share := 0.0
		if n := stats.Opcodes(); n > 0 {
			share = 100 * float64(stats.Count(tag)) / float64(n)
		}
		fmt.Fprintf(stdout, "  %-6s %8d  %5.1f%%\n", tag, stats.Count(tag), share)
	}
	fmt.Fprintf(stdout, "  run pixels %d\n", stats.RunLen)
	return nil
}

func parameters(order string) (*eqoi.Parameters, error) {
	o, err := eqoi.ParseChannelOrder(order)
	if err != nil {
		return nil, err
	}
	return eqoi.NewParameters().WithOrder(o), nil
}

// writeFile creates path and hands it to write, reporting the first error
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
