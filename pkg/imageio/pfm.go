package imageio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
)

// WritePFM writes the mean linear radiance as a little-endian color PFM.
// PFM stores rows bottom to top.
func WritePFM(w io.Writer, src Radiance) error {
	width, height := src.Size()
	bw := bufio.NewWriter(w)
	// A negative scale marks little-endian data
	if _, err := fmt.Fprintf(bw, "PF\n%d %d\n-1.0\n", width, height); err != nil {
		return err
	}

	row := make([]byte, width*3*4)
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			sum, n := src.Sum(x, y)
			if n > 0 {
				sum = sum.Divide(float64(n))
			}
			offset := x * 12
			binary.LittleEndian.PutUint32(row[offset:], math.Float32bits(float32(sum.X)))
			binary.LittleEndian.PutUint32(row[offset+4:], math.Float32bits(float32(sum.Y)))
			binary.LittleEndian.PutUint32(row[offset+8:], math.Float32bits(float32(sum.Z)))
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePFMZstd writes a PFM compressed as a single zstd stream
func WritePFMZstd(w io.Writer, src Radiance) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("imageio: creating zstd encoder: %w", err)
	}
	if err := WritePFM(enc, src); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
