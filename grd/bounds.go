// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grd

// Bounds selects the map-plane boundary policy
type Bounds string

const (
	ZeroGrad Bounds = "zero-gradient" // copy nearest interior value outward
	Periodic Bounds = "periodic"      // wrap-around with staggered halos
	Infinite Bounds = "infinite"      // border values are held as prescribed
)

// ApplyAa applies the boundary policy to an aa-field
func (g *Grid) ApplyAa(b Bounds, f [][]float64) {
	nx, ny := g.Nx, g.Ny
	switch b {
	case ZeroGrad:
		for j := 0; j < ny; j++ {
			f[0][j] = f[1][j]
			f[nx-1][j] = f[nx-2][j]
		}
		for i := 0; i < nx; i++ {
			f[i][0] = f[i][1]
			f[i][ny-1] = f[i][ny-2]
		}
	case Periodic:
		for j := 0; j < ny; j++ {
			f[0][j] = f[nx-2][j]
			f[nx-1][j] = f[1][j]
		}
		for i := 0; i < nx; i++ {
			f[i][0] = f[i][ny-2]
			f[i][ny-1] = f[i][1]
		}
	case Infinite:
		// border values are prescribed by the caller
	}
}

// ApplyAcx applies the boundary policy to an x-staggered field. Under the
// periodic policy the staggered component carries a 3-cell halo along its own
// axis (x) and a 2-cell halo along the transverse axis (y); this asymmetry
// follows from the face offset and must not be symmetrized.
func (g *Grid) ApplyAcx(b Bounds, f [][]float64) {
	nx, ny := g.Nx, g.Ny
	switch b {
	case ZeroGrad:
		for j := 0; j < ny; j++ {
			f[0][j] = f[1][j]
			f[nx-2][j] = f[nx-3][j]
			f[nx-1][j] = f[nx-2][j]
		}
		for i := 0; i < nx; i++ {
			f[i][0] = f[i][1]
			f[i][ny-1] = f[i][ny-2]
		}
	case Periodic:
		for j := 0; j < ny; j++ {
			f[0][j] = f[nx-3][j]
			f[nx-2][j] = f[1][j]
			f[nx-1][j] = f[2][j]
		}
		for i := 0; i < nx; i++ {
			f[i][0] = f[i][ny-2]
			f[i][ny-1] = f[i][1]
		}
	case Infinite:
	}
}

// ApplyAcy applies the boundary policy to a y-staggered field; the transpose
// of ApplyAcx
func (g *Grid) ApplyAcy(b Bounds, f [][]float64) {
	nx, ny := g.Nx, g.Ny
	switch b {
	case ZeroGrad:
		for i := 0; i < nx; i++ {
			f[i][0] = f[i][1]
			f[i][ny-2] = f[i][ny-3]
			f[i][ny-1] = f[i][ny-2]
		}
		for j := 0; j < ny; j++ {
			f[0][j] = f[1][j]
			f[nx-1][j] = f[nx-2][j]
		}
	case Periodic:
		for i := 0; i < nx; i++ {
			f[i][0] = f[i][ny-3]
			f[i][ny-2] = f[i][1]
			f[i][ny-1] = f[i][2]
		}
		for j := 0; j < ny; j++ {
			f[0][j] = f[nx-2][j]
			f[nx-1][j] = f[1][j]
		}
	case Infinite:
	}
}

// WrapX resolves an x-index according to the boundary policy
func (g *Grid) WrapX(b Bounds, i int) int {
	if b == Periodic {
		if i < 0 {
			return i + g.Nx
		}
		if i >= g.Nx {
			return i - g.Nx
		}
		return i
	}
	return imax(0, imin(i, g.Nx-1))
}

// WrapY resolves a y-index according to the boundary policy
func (g *Grid) WrapY(b Bounds, j int) int {
	if b == Periodic {
		if j < 0 {
			return j + g.Ny
		}
		if j >= g.Ny {
			return j - g.Ny
		}
		return j
	}
	return imax(0, imin(j, g.Ny-1))
}
