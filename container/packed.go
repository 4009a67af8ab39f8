package container

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic starts every zstd frame
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

var zstdEncPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(
			nil,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		)
		if err != nil {
			panic(err)
		}
		return enc
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(
			nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true),
		)
		if err != nil {
			panic(err)
		}
		return dec
	},
}

// IsPacked reports whether data starts with a zstd frame
func IsPacked(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

// WritePacked writes the framed stream wrapped in a single zstd frame
func WritePacked(w io.Writer, header Header, payload []byte) error {
	var framed bytes.Buffer
	framed.Grow(HeaderSize + len(payload))
	if err := Write(&framed, header, payload); err != nil {
		return err
	}

	enc := zstdEncPool.Get().(*zstd.Encoder)
	packed := enc.EncodeAll(framed.Bytes(), nil)
	zstdEncPool.Put(enc)

	if _, err := w.Write(packed); err != nil {
		return fmt.Errorf("write packed stream: %w", err)
	}
	return nil
}

// ReadPacked reads a zstd-wrapped framed stream
func ReadPacked(r io.Reader) (Header, []byte, error) {
	packed, err := io.ReadAll(r)
	if err != nil {
		return Header{}, nil, fmt.Errorf("read packed stream: %w", err)
	}
	return unpack(packed)
}

func unpack(packed []byte) (Header, []byte, error) {
	dec := zstdDecPool.Get().(*zstd.Decoder)
	framed, err := dec.DecodeAll(packed, nil)
	zstdDecPool.Put(dec)
	if err != nil {
		return Header{}, nil, fmt.Errorf("zstd decode: %w", err)
	}
	return Read(bytes.NewReader(framed))
}

// ReadAuto reads either a plain or a zstd-wrapped framed stream
func ReadAuto(r io.Reader) (Header, []byte, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(zstdMagic))
	if err == nil && IsPacked(magic) {
		return ReadPacked(br)
	}
	return Read(br)
}
