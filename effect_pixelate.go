// effect_pixelate.go - Block pixelation engine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

// PixelationEngine flattens square blocks of the frame to one representative
// color each, reducing the effective resolution without changing the frame
// dimensions.
type PixelationEngine struct{}

// NewPixelationEngine creates the engine. Stateless; one instance serves the
// whole session.
func NewPixelationEngine() *PixelationEngine {
	return &PixelationEngine{}
}

// Apply partitions the frame into blockSize x blockSize blocks and replaces
// every block with its exact average color. Partial blocks at the right and
// bottom edges are clamped to the frame bounds. A blockSize <= 1 returns an
// untouched copy.
func (e *PixelationEngine) Apply(frame *Frame, blockSize int) *Frame {
	if blockSize <= 1 {
		return frame.Clone()
	}

	gridW := (frame.Width + blockSize - 1) / blockSize
	gridH := (frame.Height + blockSize - 1) / blockSize

	out := NewFrame(frame.Width, frame.Height)
	for gy := 0; gy < gridH; gy++ {
		y0 := gy * blockSize
		y1 := min(y0+blockSize, frame.Height)
		for gx := 0; gx < gridW; gx++ {
			x0 := gx * blockSize
			x1 := min(x0+blockSize, frame.Width)

			var sumR, sumG, sumB, sumA, n int
			for y := y0; y < y1; y++ {
				i := (y*frame.Width + x0) * 4
				for x := x0; x < x1; x++ {
					sumR += int(frame.Pix[i])
					sumG += int(frame.Pix[i+1])
					sumB += int(frame.Pix[i+2])
					sumA += int(frame.Pix[i+3])
					i += 4
					n++
				}
			}

			avg := Color{
				R: byte(sumR / n),
				G: byte(sumG / n),
				B: byte(sumB / n),
				A: byte(sumA / n),
			}
			for y := y0; y < y1; y++ {
				i := (y*frame.Width + x0) * 4
				for x := x0; x < x1; x++ {
					out.Pix[i] = avg.R
					out.Pix[i+1] = avg.G
					out.Pix[i+2] = avg.B
					out.Pix[i+3] = avg.A
					i += 4
				}
			}
		}
	}
	return out
}
