// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grd implements the staggered C-grid used by the velocity solvers
//
// Node flavours on the map plane:
//
//	aa  -- cell centres (thickness, viscosity, bed elevation, ...)
//	acx -- x-staggered faces; acx(i,j) sits between aa(i,j) and aa(i+1,j)
//	acy -- y-staggered faces; acy(i,j) sits between aa(i,j) and aa(i,j+1)
//	ab  -- corners; ab(i,j) sits between aa(i,j) and aa(i+1,j+1)
//
// All 2-D arrays have shape [nx][ny] regardless of flavour; the flavour is
// carried by the name of the field and by which helper produced it. The
// vertical axis is a terrain-following sigma coordinate zeta in [0,1] with
// zeta=0 at the ice base and zeta=1 at the surface.
package grd

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Grid holds the regular map-plane grid and the vertical sigma axis
type Grid struct {
	Nx, Ny int       // number of aa-nodes in x and y
	Nz     int       // number of vertical layer-centre samples
	Dx, Dy float64   // grid spacing [m]
	ZetaAa []float64 // [nz] layer-centre samples; ZetaAa[0]=0 (base), ZetaAa[nz-1]=1 (surface)
	ZetaAc []float64 // [nz-1] interface samples between layer centres
}

// New returns a new grid. zetaAa must be strictly increasing from 0 to 1.
func New(nx, ny int, dx, dy float64, zetaAa []float64) (g *Grid, err error) {
	nz := len(zetaAa)
	if nx < 3 || ny < 3 {
		return nil, chk.Err("grid needs at least 3x3 aa-nodes. %dx%d is invalid", nx, ny)
	}
	if nz < 2 {
		return nil, chk.Err("vertical axis needs at least 2 samples. %d is invalid", nz)
	}
	if zetaAa[0] != 0 || zetaAa[nz-1] != 1 {
		return nil, chk.Err("zeta_aa must span [0,1]. [%g,%g] is invalid", zetaAa[0], zetaAa[nz-1])
	}
	for k := 1; k < nz; k++ {
		if zetaAa[k] <= zetaAa[k-1] {
			return nil, chk.Err("zeta_aa must be strictly increasing. zeta_aa[%d]=%g follows %g", k, zetaAa[k], zetaAa[k-1])
		}
	}
	g = &Grid{Nx: nx, Ny: ny, Nz: nz, Dx: dx, Dy: dy}
	g.ZetaAa = make([]float64, nz)
	copy(g.ZetaAa, zetaAa)
	g.ZetaAc = make([]float64, nz-1)
	for k := 0; k < nz-1; k++ {
		g.ZetaAc[k] = 0.5 * (zetaAa[k] + zetaAa[k+1])
	}
	return
}

// NewUniform returns a grid with nz equally spaced vertical samples
func NewUniform(nx, ny, nz int, dx, dy float64) (g *Grid, err error) {
	return New(nx, ny, dx, dy, utl.LinSpace(0, 1, nz))
}
