package imageio

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
)

// WritePPM writes a plain-text (P3) PPM
func WritePPM(w io.Writer, src Radiance) error {
	width, height := src.Size()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := ToneMap(src.Sum(x, y))
			fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B)
		}
	}
	return bw.Flush()
}

// WritePNG writes an 8-bit PNG
func WritePNG(w io.Writer, src Radiance) error {
	return png.Encode(w, ToRGBA(src))
}
