// effect_scale.go - Block-average downsampling and nearest-neighbor upsampling

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

// downsampleBlockAverage shrinks a frame to targetW x targetH. Every output
// pixel is the integer average of the source rectangle it covers, so the
// result is an exact box filter rather than a point sample.
func downsampleBlockAverage(src *Frame, targetW, targetH int) *Frame {
	if targetW < 1 {
		targetW = 1
	}
	if targetH < 1 {
		targetH = 1
	}
	if targetW >= src.Width && targetH >= src.Height {
		return src.Clone()
	}

	dst := NewFrame(targetW, targetH)
	for ty := 0; ty < targetH; ty++ {
		sy0 := ty * src.Height / targetH
		sy1 := (ty + 1) * src.Height / targetH
		if sy1 <= sy0 {
			sy1 = sy0 + 1
		}
		for tx := 0; tx < targetW; tx++ {
			sx0 := tx * src.Width / targetW
			sx1 := (tx + 1) * src.Width / targetW
			if sx1 <= sx0 {
				sx1 = sx0 + 1
			}

			var sumR, sumG, sumB, sumA, n int
			for sy := sy0; sy < sy1; sy++ {
				row := (sy*src.Width + sx0) * 4
				for sx := sx0; sx < sx1; sx++ {
					sumR += int(src.Pix[row])
					sumG += int(src.Pix[row+1])
					sumB += int(src.Pix[row+2])
					sumA += int(src.Pix[row+3])
					row += 4
					n++
				}
			}
			dst.Set(tx, ty, Color{
				R: byte(sumR / n),
				G: byte(sumG / n),
				B: byte(sumB / n),
				A: byte(sumA / n),
			})
		}
	}
	return dst
}

// upsampleNearest stretches a frame to targetW x targetH by nearest-neighbor
// replication.
func upsampleNearest(src *Frame, targetW, targetH int) *Frame {
	if targetW == src.Width && targetH == src.Height {
		return src.Clone()
	}
	dst := NewFrame(targetW, targetH)
	for ty := 0; ty < targetH; ty++ {
		sy := ty * src.Height / targetH
		if sy >= src.Height {
			sy = src.Height - 1
		}
		for tx := 0; tx < targetW; tx++ {
			sx := tx * src.Width / targetW
			if sx >= src.Width {
				sx = src.Width - 1
			}
			si := (sy*src.Width + sx) * 4
			di := (ty*targetW + tx) * 4
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}
