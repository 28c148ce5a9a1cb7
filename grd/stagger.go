// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grd

// StagAaAcx staggers an aa-field to acx-nodes by arithmetic mean. The last
// column has no right neighbour and keeps the aa value.
func (g *Grid) StagAaAcx(res, aa [][]float64) {
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			if i < g.Nx-1 {
				res[i][j] = 0.5 * (aa[i][j] + aa[i+1][j])
			} else {
				res[i][j] = aa[i][j]
			}
		}
	}
}

// StagAaAcy staggers an aa-field to acy-nodes by arithmetic mean
func (g *Grid) StagAaAcy(res, aa [][]float64) {
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			if j < g.Ny-1 {
				res[i][j] = 0.5 * (aa[i][j] + aa[i][j+1])
			} else {
				res[i][j] = aa[i][j]
			}
		}
	}
}

// StagAaAb staggers an aa-field to ab-nodes (corners) by 4-point average
func (g *Grid) StagAaAb(res, aa [][]float64) {
	for i := 0; i < g.Nx; i++ {
		ip1 := imin(i+1, g.Nx-1)
		for j := 0; j < g.Ny; j++ {
			jp1 := imin(j+1, g.Ny-1)
			res[i][j] = 0.25 * (aa[i][j] + aa[ip1][j] + aa[i][jp1] + aa[ip1][jp1])
		}
	}
}

// UnstagAbAa averages the four ab-corners surrounding each aa-node
func (g *Grid) UnstagAbAa(res, ab [][]float64) {
	for i := 0; i < g.Nx; i++ {
		im1 := imax(i-1, 0)
		for j := 0; j < g.Ny; j++ {
			jm1 := imax(j-1, 0)
			res[i][j] = 0.25 * (ab[im1][jm1] + ab[i][jm1] + ab[im1][j] + ab[i][j])
		}
	}
}

// UnstagAcxAa averages the two acx-faces adjacent to each aa-node
func (g *Grid) UnstagAcxAa(res, acx [][]float64) {
	for i := 0; i < g.Nx; i++ {
		im1 := imax(i-1, 0)
		for j := 0; j < g.Ny; j++ {
			res[i][j] = 0.5 * (acx[im1][j] + acx[i][j])
		}
	}
}

// UnstagAcyAa averages the two acy-faces adjacent to each aa-node
func (g *Grid) UnstagAcyAa(res, acy [][]float64) {
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			jm1 := imax(j-1, 0)
			res[i][j] = 0.5 * (acy[i][jm1] + acy[i][j])
		}
	}
}

// StagAaAcxIce staggers an aa-field to acx-nodes preferring ice-covered
// neighbours: at an ice margin the covered side is selected one-sidedly
// instead of averaging against the ice-free value. Used for the F-integrals.
func (g *Grid) StagAaAcxIce(res, aa, Hice [][]float64) {
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			if i == g.Nx-1 {
				res[i][j] = aa[i][j]
				continue
			}
			h0, h1 := Hice[i][j], Hice[i+1][j]
			switch {
			case h0 > 0 && h1 > 0:
				res[i][j] = 0.5 * (aa[i][j] + aa[i+1][j])
			case h0 > 0:
				res[i][j] = aa[i][j]
			case h1 > 0:
				res[i][j] = aa[i+1][j]
			default:
				res[i][j] = 0.5 * (aa[i][j] + aa[i+1][j])
			}
		}
	}
}

// StagAaAcyIce is the y-face analogue of StagAaAcxIce
func (g *Grid) StagAaAcyIce(res, aa, Hice [][]float64) {
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			if j == g.Ny-1 {
				res[i][j] = aa[i][j]
				continue
			}
			h0, h1 := Hice[i][j], Hice[i][j+1]
			switch {
			case h0 > 0 && h1 > 0:
				res[i][j] = 0.5 * (aa[i][j] + aa[i][j+1])
			case h0 > 0:
				res[i][j] = aa[i][j]
			case h1 > 0:
				res[i][j] = aa[i][j+1]
			default:
				res[i][j] = 0.5 * (aa[i][j] + aa[i][j+1])
			}
		}
	}
}

func imin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
