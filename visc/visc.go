// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package visc implements the 3-D effective viscosity of ice under Glen's
// flow law, together with its depth integral and the F-integrals coupling
// basal and depth-averaged velocities
package visc

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/tgoelles/yelmo/grd"
)

// Engine computes effective strain rates and viscosities on the staggered
// grid. Strain-rate components are evaluated on ab (corner) nodes, where the
// horizontal derivatives of the face velocities are naturally collocated, and
// the resulting viscosity is averaged back to aa-nodes. The corner pathway
// damps checkerboard modes at low strain rates that destabilize the
// fixed-point iteration when viscosity is collocated at aa directly.
type Engine struct {

	// configuration
	g       *grd.Grid
	nGlen   float64 // Glen flow-law exponent
	eps0sq  float64 // squared strain-rate floor [1/a²]
	viscMin float64 // viscosity floor [Pa a]

	// scratch, one layer at a time
	viscAb [][]float64 // viscosity on ab-nodes
	attAb  [][]float64 // rate factor averaged to ab-nodes
}

// New returns a new viscosity engine. eps0 is the strain-rate floor (squared
// internally before addition) and viscMin the viscosity floor applied at
// every node.
func New(g *grd.Grid, nGlen, eps0, viscMin float64) (o *Engine) {
	o = &Engine{g: g, nGlen: nGlen, eps0sq: eps0 * eps0, viscMin: viscMin}
	o.viscAb = la.MatAlloc(g.Nx, g.Ny)
	o.attAb = la.MatAlloc(g.Nx, g.Ny)
	return
}

// CalcViscEff computes the 3-D effective viscosity [Pa a] on aa-nodes from
// the depth-averaged velocity, the vertical shear profile and the rate
// factor:
//
//	visc = 1/2 * eps_sq^((1-n)/(2n)) * ATT^(-1/n)
//
// with the effective strain rate squared
//
//	eps_sq = dudx² + dvdy² + dudx*dvdy + 1/4*(dudy+dvdx)² +
//	         1/4*duxdz² + 1/4*duydz² + eps_0²
//
// assembled on ab-nodes. All components honour visc >= visc_min and
// eps_sq >= eps_0².
func (o *Engine) CalcViscEff(viscEff [][][]float64, uxBar, uyBar [][]float64, duxdz, duydz, ATT [][][]float64) {
	g := o.g
	nx, ny := g.Nx, g.Ny
	p := (1.0 - o.nGlen) / (2.0 * o.nGlen)

	for k := 0; k < g.Nz; k++ {

		// strain rates and viscosity on ab-nodes
		for i := 0; i < nx; i++ {
			im1 := iclip(i-1, nx)
			ip1 := iclip(i+1, nx)
			for j := 0; j < ny; j++ {
				jm1 := iclip(j-1, ny)
				jp1 := iclip(j+1, ny)

				// normal strain rates: 4-point averaged centred differences
				dudx := (uxBar[ip1][j] - uxBar[im1][j] + uxBar[ip1][jp1] - uxBar[im1][jp1]) / (4.0 * g.Dx)
				dvdy := (uyBar[i][jp1] - uyBar[i][jm1] + uyBar[ip1][jp1] - uyBar[ip1][jm1]) / (4.0 * g.Dy)

				// cross terms, naturally collocated on the corner
				dudy := (uxBar[i][jp1] - uxBar[i][j]) / g.Dy
				dvdx := (uyBar[ip1][j] - uyBar[i][j]) / g.Dx

				// vertical shear averaged from the faces to the corner
				dudz := 0.5 * (duxdz[i][j][k] + duxdz[i][jp1][k])
				dvdz := 0.5 * (duydz[i][j][k] + duydz[ip1][j][k])

				epsSq := dudx*dudx + dvdy*dvdy + dudx*dvdy +
					0.25*(dudy+dvdx)*(dudy+dvdx) +
					0.25*dudz*dudz + 0.25*dvdz*dvdz + o.eps0sq

				o.attAb[i][j] = 0.25 * (ATT[i][j][k] + ATT[ip1][j][k] + ATT[i][jp1][k] + ATT[ip1][jp1][k])
				o.viscAb[i][j] = 0.5 * math.Pow(epsSq, p) * math.Pow(o.attAb[i][j], -1.0/o.nGlen)
			}
		}

		// unstagger to aa-nodes
		for i := 0; i < nx; i++ {
			im1 := iclip(i-1, nx)
			for j := 0; j < ny; j++ {
				jm1 := iclip(j-1, ny)
				viscEff[i][j][k] = 0.25 * (o.viscAb[im1][jm1] + o.viscAb[i][jm1] + o.viscAb[im1][j] + o.viscAb[i][j])
			}
		}

		// domain corners: average of the two edge neighbours to suppress extremes
		for _, c := range [4][4]int{
			{0, 0, 1, 1},
			{nx - 1, 0, nx - 2, 1},
			{0, ny - 1, 1, ny - 2},
			{nx - 1, ny - 1, nx - 2, ny - 2},
		} {
			i, j, ii, jj := c[0], c[1], c[2], c[3]
			viscEff[i][j][k] = 0.5 * (viscEff[ii][j][k] + viscEff[i][jj][k])
		}

		// floor
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				if viscEff[i][j][k] < o.viscMin {
					viscEff[i][j][k] = o.viscMin
				}
			}
		}
	}
}

// CalcViscInt computes the depth-integrated viscosity [Pa a m]:
//
//	visc_eff_int = H_ice * int_0^1 visc_eff dzeta
//
// At ice-free nodes the raw depth integral is kept (not multiplied by the
// zero thickness) so the momentum operator stays well defined.
func (o *Engine) CalcViscInt(viscInt [][]float64, viscEff [][][]float64, Hice [][]float64) {
	for i := 0; i < o.g.Nx; i++ {
		for j := 0; j < o.g.Ny; j++ {
			vint := o.g.TrapzZeta(viscEff[i][j])
			if Hice[i][j] > 0 {
				viscInt[i][j] = vint * Hice[i][j]
			} else {
				viscInt[i][j] = vint
			}
		}
	}
}

func iclip(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
