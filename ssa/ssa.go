// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ssa implements the depth-integrated (shelfy-stream) momentum
// solver: the 2-D elliptic system for the depth-averaged ice velocity on the
// staggered C-grid
//
//	d/dx[2 N (2 du/dx + dv/dy)] + d/dy[N (du/dy + dv/dx)] - beta_eff u = -taud_x
//	d/dy[2 N (2 dv/dy + du/dx)] + d/dx[N (du/dy + dv/dx)] - beta_eff v = -taud_y
//
// with N the depth-integrated effective viscosity on aa-nodes. The sparse
// linear solve is delegated to a pluggable backend (see solver.go).
package ssa

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/tgoelles/yelmo/grd"
)

// System assembles and solves the momentum equations. Face velocities with a
// positive mask entry that have not been frozen by convergence pruning are
// unknowns; all other faces are held at their current values (Dirichlet).
type System struct {

	// configuration
	g        *grd.Grid
	bounds   grd.Bounds
	velMax   float64 // cap on solved velocity components [m/a]
	writeLog bool

	// linear solver backend
	ls LinSol

	// scratch
	eqx, eqy [][]int     // equation numbers per face; -1 = held fixed
	nAb      [][]float64 // visc_eff_int averaged to ab-nodes
	kb       *la.Triplet
	fb, wb   []float64
}

// NewSystem returns a new momentum system with the given linear-solver
// backend
func NewSystem(g *grd.Grid, bounds grd.Bounds, solverOpt string, velMax float64, writeLog bool) (o *System, err error) {
	o = &System{g: g, bounds: bounds, velMax: velMax, writeLog: writeLog}
	o.ls, err = NewLinSol(solverOpt)
	if err != nil {
		return nil, err
	}
	nx, ny := g.Nx, g.Ny
	o.eqx = utl.IntsAlloc(nx, ny)
	o.eqy = utl.IntsAlloc(nx, ny)
	o.nAb = la.MatAlloc(nx, ny)
	nmax := 2 * nx * ny
	o.kb = new(la.Triplet)
	o.kb.Init(nmax, nmax, nmax*12)
	o.fb = make([]float64, nmax)
	o.wb = make([]float64, nmax)
	return
}

// Clean releases linear-solver resources
func (o *System) Clean() {
	o.ls.Clean()
}

// Solve assembles the momentum system for the faces flagged in solveAcx and
// solveAcy and solves for the depth-averaged velocity, updating uxBar and
// uyBar in place. Solved components are capped at ±velMax. Returns the L2
// norm of the linear residual for diagnostic logging.
func (o *System) Solve(uxBar, uyBar, viscInt, betaEffAcx, betaEffAcy, taudAcx, taudAcy [][]float64, solveAcx, solveAcy [][]bool) (resid float64, err error) {
	g := o.g
	nx, ny := g.Nx, g.Ny

	// equation numbering
	neq := 0
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			o.eqx[i][j] = -1
			o.eqy[i][j] = -1
			if solveAcx[i][j] {
				o.eqx[i][j] = neq
				neq++
			}
			if solveAcy[i][j] {
				o.eqy[i][j] = neq
				neq++
			}
		}
	}
	if neq == 0 {
		return 0, nil
	}

	// viscosity on corners
	g.StagAaAb(o.nAb, viscInt)

	// assemble
	o.kb.Init(neq, neq, neq*12)
	fb := o.fb[:neq]
	wb := o.wb[:neq]
	la.VecFill(fb, 0)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if o.eqx[i][j] >= 0 {
				o.putXEq(i, j, uxBar, uyBar, viscInt, betaEffAcx, taudAcx, fb)
			}
			if o.eqy[i][j] >= 0 {
				o.putYEq(i, j, uxBar, uyBar, viscInt, betaEffAcy, taudAcy, fb)
			}
		}
	}

	// solve
	err = o.ls.Init(o.kb)
	if err != nil {
		return 0, chk.Err("momentum solver initialisation failed:\n%v", err)
	}
	err = o.ls.Solve(wb, fb)
	if err != nil {
		return 0, chk.Err("momentum solve failed:\n%v", err)
	}

	// residual norm
	r := make([]float64, neq)
	la.VecCopy(r, -1, fb)
	la.SpMatVecMulAdd(r, 1, o.kb.ToMatrix(nil), wb) // r = K*w - f
	resid = la.VecNorm(r)

	// write back with velocity cap
	ncapped := 0
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if e := o.eqx[i][j]; e >= 0 {
				uxBar[i][j], ncapped = o.cap(wb[e], ncapped)
			}
			if e := o.eqy[i][j]; e >= 0 {
				uyBar[i][j], ncapped = o.cap(wb[e], ncapped)
			}
		}
	}
	if ncapped > 0 && o.writeLog {
		io.Pfyel("ssa: velocity cap ±%g m/a applied at %d faces\n", o.velMax, ncapped)
	}

	// boundary policy on the updated fields
	g.ApplyAcx(o.bounds, uxBar)
	g.ApplyAcy(o.bounds, uyBar)
	return
}

// cap clamps a solved component to ±velMax
func (o *System) cap(u float64, ncapped int) (float64, int) {
	if math.Abs(u) > o.velMax {
		return math.Copysign(o.velMax, u), ncapped + 1
	}
	return u, ncapped
}

// putXEq assembles the x-momentum equation at acx(i,j). Coefficients are the
// negated divergence terms so the diagonal stays positive; the right-hand
// side is the driving stress. Neighbours without an equation contribute
// their held value to the right-hand side.
func (o *System) putXEq(i, j int, uxBar, uyBar, viscInt, betaEffAcx, taudAcx [][]float64, fb []float64) {
	g := o.g
	dx2 := g.Dx * g.Dx
	dy2 := g.Dy * g.Dy
	dxy := g.Dx * g.Dy
	eq := o.eqx[i][j]

	ip1 := g.WrapX(o.bounds, i+1)
	im1 := g.WrapX(o.bounds, i-1)
	jp1 := g.WrapY(o.bounds, j+1)
	jm1 := g.WrapY(o.bounds, j-1)

	n1 := viscInt[i][j]   // aa west of the face
	n2 := viscInt[ip1][j] // aa east of the face
	nUp := o.nAb[i][j]    // corner north of the face
	nDn := o.nAb[i][jm1]  // corner south of the face

	// u couplings
	o.putX(eq, i, j, 4*n2/dx2+4*n1/dx2+nUp/dy2+nDn/dy2+betaEffAcx[i][j], uxBar, fb)
	o.putX(eq, ip1, j, -4*n2/dx2, uxBar, fb)
	o.putX(eq, im1, j, -4*n1/dx2, uxBar, fb)
	o.putX(eq, i, jp1, -nUp/dy2, uxBar, fb)
	o.putX(eq, i, jm1, -nDn/dy2, uxBar, fb)

	// v couplings on the four surrounding faces
	o.putY(eq, ip1, j, -(2*n2+nUp)/dxy, uyBar, fb)
	o.putY(eq, ip1, jm1, (2*n2+nDn)/dxy, uyBar, fb)
	o.putY(eq, i, j, (2*n1+nUp)/dxy, uyBar, fb)
	o.putY(eq, i, jm1, -(2*n1+nDn)/dxy, uyBar, fb)

	fb[eq] += taudAcx[i][j]
}

// putYEq assembles the y-momentum equation at acy(i,j); the transpose of
// putXEq
func (o *System) putYEq(i, j int, uxBar, uyBar, viscInt, betaEffAcy, taudAcy [][]float64, fb []float64) {
	g := o.g
	dx2 := g.Dx * g.Dx
	dy2 := g.Dy * g.Dy
	dxy := g.Dx * g.Dy
	eq := o.eqy[i][j]

	ip1 := g.WrapX(o.bounds, i+1)
	im1 := g.WrapX(o.bounds, i-1)
	jp1 := g.WrapY(o.bounds, j+1)
	jm1 := g.WrapY(o.bounds, j-1)

	n1 := viscInt[i][j]   // aa south of the face
	n2 := viscInt[i][jp1] // aa north of the face
	nEa := o.nAb[i][j]    // corner east of the face
	nWe := o.nAb[im1][j]  // corner west of the face

	// v couplings
	o.putY(eq, i, j, 4*n2/dy2+4*n1/dy2+nEa/dx2+nWe/dx2+betaEffAcy[i][j], uyBar, fb)
	o.putY(eq, i, jp1, -4*n2/dy2, uyBar, fb)
	o.putY(eq, i, jm1, -4*n1/dy2, uyBar, fb)
	o.putY(eq, ip1, j, -nEa/dx2, uyBar, fb)
	o.putY(eq, im1, j, -nWe/dx2, uyBar, fb)

	// u couplings on the four surrounding faces
	o.putX(eq, i, jp1, -(2*n2+nEa)/dxy, uxBar, fb)
	o.putX(eq, im1, jp1, (2*n2+nWe)/dxy, uxBar, fb)
	o.putX(eq, i, j, (2*n1+nEa)/dxy, uxBar, fb)
	o.putX(eq, im1, j, -(2*n1+nWe)/dxy, uxBar, fb)

	fb[eq] += taudAcy[i][j]
}

// putX adds one coupling to an x-face value: into the matrix when the face
// is an unknown, otherwise onto the right-hand side
func (o *System) putX(eq, i, j int, coef float64, uxBar [][]float64, fb []float64) {
	if col := o.eqx[i][j]; col >= 0 {
		o.kb.Put(eq, col, coef)
	} else {
		fb[eq] -= coef * uxBar[i][j]
	}
}

// putY adds one coupling to a y-face value
func (o *System) putY(eq, i, j int, coef float64, uyBar [][]float64, fb []float64) {
	if col := o.eqy[i][j]; col >= 0 {
		o.kb.Put(eq, col, coef)
	} else {
		fb[eq] -= coef * uyBar[i][j]
	}
}
