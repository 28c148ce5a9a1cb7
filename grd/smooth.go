// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grd

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// SmoothGauss smooths an aa-field in place with a Gaussian kernel of standard
// deviation sigma (in metres), truncated at two sigma. Only nodes with
// mask[i][j] true are updated, and masked-out neighbours contribute neither
// weight nor value, so excluded regions do not bleed into the result.
func (g *Grid) SmoothGauss(f [][]float64, mask [][]bool, sigma float64) {
	if sigma <= 0 {
		return
	}
	nr := int(math.Ceil(2 * sigma / g.Dx))
	if nr < 1 {
		nr = 1
	}
	f0 := la.MatAlloc(g.Nx, g.Ny)
	la.MatCopy(f0, 1, f)
	twoSigSq := 2 * sigma * sigma
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			if mask != nil && !mask[i][j] {
				continue
			}
			var sum, wtot float64
			for di := -nr; di <= nr; di++ {
				ii := i + di
				if ii < 0 || ii >= g.Nx {
					continue
				}
				for dj := -nr; dj <= nr; dj++ {
					jj := j + dj
					if jj < 0 || jj >= g.Ny {
						continue
					}
					if mask != nil && !mask[ii][jj] {
						continue
					}
					rsq := float64(di*di)*g.Dx*g.Dx + float64(dj*dj)*g.Dy*g.Dy
					w := math.Exp(-rsq / twoSigSq)
					sum += w * f0[ii][jj]
					wtot += w
				}
			}
			if wtot > 0 {
				f[i][j] = sum / wtot
			}
		}
	}
}
