// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diva

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/tgoelles/yelmo/ana"
	"github.com/tgoelles/yelmo/grd"
	"github.com/tgoelles/yelmo/inp"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// slabCase builds a uniform grounded slab on a periodic domain together with
// the matching analytical solution
func slabCase(tst *testing.T, prms inp.DivaParams, ub float64) (o *Solver, s *State, slab *ana.SiaSlab, g *grd.Grid) {
	cst := inp.NewConstants()
	g, err := grd.NewUniform(7, 7, 51, 10e3, 10e3)
	if err != nil {
		tst.Fatalf("cannot create grid: %v\n", err)
	}
	o, err = New(g, prms, cst)
	if err != nil {
		tst.Fatalf("cannot create solver: %v\n", err)
	}

	H, alpha, att := 1000.0, 1e-3, 1e-16
	slab = &ana.SiaSlab{H: H, A: att, N: prms.NGlen, Rho: cst.RhoIce, Grav: cst.G, Alpha: alpha, Ub: ub}

	s = NewState(g, prms.BetaConst)
	la.MatFill(s.Hice, H)
	la.MatFill(s.Hgrnd, H)
	la.MatFill(s.FGrnd, 1.0)
	la.MatFill(s.FGrndAcx, 1.0)
	la.MatFill(s.FGrndAcy, 1.0)
	la.MatFill(s.Zsl, -9999.0)
	la.MatFill(s.TaudAcx, slab.Taud())
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				s.ATT[i][j][k] = att
			}
		}
	}
	s.InitMask(g)
	return
}

func slabParams() (p inp.DivaParams) {
	p = inp.Default()
	p.SsaSolverOpt = "dense"
	p.Boundaries = "periodic"
	p.SsaIterMax = 500
	p.SsaIterConv = 1e-9
	p.SsaVelMax = 1e5
	return
}

func Test_diva01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diva01. uniform slab, no slip: SIA profile recovered")

	prms := slabParams()
	prms.NoSlip = true
	o, s, slab, g := slabCase(tst, prms, 0)
	defer o.Clean()

	err := o.Solve(s)
	if err != nil {
		tst.Errorf("solve failed: %v\n", err)
		return
	}
	if !s.Converged {
		tst.Errorf("solve did not converge after %d iterations\n", s.SsaIterNow)
		return
	}

	i, j := 3, 3
	usurf := slab.Usurf()

	// basal velocity vanishes at every face
	for ii := 0; ii < g.Nx; ii++ {
		for jj := 0; jj < g.Ny; jj++ {
			if math.Abs(s.UxB[ii][jj]) > 1e-10*math.Abs(s.UxBar[i][j]) {
				tst.Errorf("no-slip basal velocity not zero at (%d,%d): %g\n", ii, jj, s.UxB[ii][jj])
				return
			}
		}
	}

	// bottom of the 3-D velocity equals the basal velocity
	chk.Float64(tst, "ux(0) = ux_b", 1e-14, s.Ux[i][j][0], s.UxB[i][j])

	// no shear at the surface
	chk.Float64(tst, "duxdz(top)", 1e-15, s.Duxdz[i][j][g.Nz-1], 0)

	// surface velocity within 0.5% of the analytical slab value
	chk.Float64(tst, "usurf", 5e-3*usurf, s.Ux[i][j][g.Nz-1], usurf)

	// basal stress carries the full driving stress
	chk.Float64(tst, "taub = taud", 1e-3*slab.Taud(), s.TaubAcx[i][j], slab.Taud())
}

func Test_diva02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diva02. uniform slab, sliding: SIA increment and depth average")

	prms := slabParams()
	prms.BetaMethod = "linear"
	prms.BetaConst = 100.0 // Pa a/m
	o, s, slab, g := slabCase(tst, prms, 0)
	defer o.Clean()

	err := o.Solve(s)
	if err != nil {
		tst.Errorf("solve failed: %v\n", err)
		return
	}
	if !s.Converged {
		tst.Errorf("solve did not converge after %d iterations\n", s.SsaIterNow)
		return
	}

	i, j := 3, 3
	ubWant := slab.Taud() / prms.BetaConst
	udef := slab.Udef()

	// basal velocity matches the linear-drag balance
	chk.Float64(tst, "ux_b", 1e-3*ubWant, s.UxB[i][j], ubWant)

	// surface velocity exceeds the basal velocity by the SIA shear increment
	chk.Float64(tst, "usurf - ub", 1e-2*udef, s.Ux[i][j][g.Nz-1]-s.UxB[i][j], udef)

	// the depth-averaged velocity matches the depth average of the
	// reconstructed profile
	ubarProf := g.TrapzZeta(s.Ux[i][j])
	chk.Float64(tst, "ubar consistency", 1e-3*s.UxBar[i][j], ubarProf, s.UxBar[i][j])

	// convergence pruning froze part of the solve region along the way
	first, last := o.Log[0], o.Log[len(o.Log)-1]
	if last.NSolved >= first.NSolved {
		tst.Errorf("pruning did not reduce the solve region: %d >= %d\n", last.NSolved, first.NSolved)
		return
	}
}

func Test_diva03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diva03. idempotence: a second call keeps the converged state")

	prms := slabParams()
	prms.BetaMethod = "linear"
	prms.BetaConst = 100.0
	o, s, _, g := slabCase(tst, prms, 0)
	defer o.Clean()

	err := o.Solve(s)
	if err != nil {
		tst.Errorf("solve failed: %v\n", err)
		return
	}
	uxSave := la.MatAlloc(g.Nx, g.Ny)
	la.MatCopy(uxSave, 1, s.UxBar)

	err = o.Solve(s)
	if err != nil {
		tst.Errorf("second solve failed: %v\n", err)
		return
	}
	if s.SsaIterNow > 1 {
		tst.Errorf("second call performed %d iterations\n", s.SsaIterNow)
		return
	}
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			if math.Abs(s.UxBar[i][j]-uxSave[i][j]) > 1e-12*math.Max(math.Abs(uxSave[i][j]), 1.0) {
				tst.Errorf("velocity changed at (%d,%d): %g != %g\n", i, j, s.UxBar[i][j], uxSave[i][j])
				return
			}
		}
	}
}

func Test_diva04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diva04. Glen-law self-similarity under no slip")

	prms := slabParams()
	prms.NoSlip = true
	o1, s1, _, g := slabCase(tst, prms, 0)
	defer o1.Clean()
	err := o1.Solve(s1)
	if err != nil {
		tst.Errorf("solve failed: %v\n", err)
		return
	}

	// scale ATT by alpha and taud by alpha^(-1/n): same velocities
	alpha := 10.0
	o2, s2, _, _ := slabCase(tst, prms, 0)
	defer o2.Clean()
	fac := math.Pow(alpha, -1.0/prms.NGlen)
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			s2.TaudAcx[i][j] *= fac
			for k := 0; k < g.Nz; k++ {
				s2.ATT[i][j][k] *= alpha
			}
		}
	}
	err = o2.Solve(s2)
	if err != nil {
		tst.Errorf("scaled solve failed: %v\n", err)
		return
	}

	i, j := 3, 3
	chk.Float64(tst, "ubar self-similar", 1e-3*math.Abs(s1.UxBar[i][j]), s2.UxBar[i][j], s1.UxBar[i][j])
	chk.Float64(tst, "usurf self-similar", 1e-3*math.Abs(s1.Ux[i][j][g.Nz-1]), s2.Ux[i][j][g.Nz-1], s1.Ux[i][j][g.Nz-1])
}

func Test_diva05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diva05. floating shelf: zero drag and a linear profile preserved")

	cst := inp.NewConstants()
	prms := inp.Default()
	prms.SsaSolverOpt = "dense"
	prms.Boundaries = "infinite"
	prms.BetaGlStag = "subgrid"
	prms.SsaIterMax = 50
	prms.SsaIterConv = 1e-9
	prms.NGlen = 1 // Newtonian shelf: uniform viscosity keeps the profile exactly linear
	g, err := grd.NewUniform(9, 5, 11, 10e3, 10e3)
	if err != nil {
		tst.Errorf("cannot create grid: %v\n", err)
		return
	}
	o, err := New(g, prms, cst)
	if err != nil {
		tst.Errorf("cannot create solver: %v\n", err)
		return
	}
	defer o.Clean()

	// marine geometry: bed far below floatation, everything afloat
	H, att := 400.0, 1e-6
	s := NewState(g, prms.BetaConst)
	la.MatFill(s.Hice, H)
	la.MatFill(s.Zbed, -500.0)
	la.MatFill(s.Hw, 500.0)
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				s.ATT[i][j][k] = att
			}
		}
	}

	// linear velocity profile increasing seaward, prescribed on the borders
	uGl, du := 100.0, 20.0
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			s.UxBar[i][j] = uGl + du*float64(i)
		}
	}
	s.InitMask(g)

	err = o.Solve(s)
	if err != nil {
		tst.Errorf("solve failed: %v\n", err)
		return
	}

	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			// friction vanishes on every shelf face
			chk.Float64(tst, "beta_acx", 1e-15, s.BetaAcx[i][j], 0)
			chk.Float64(tst, "beta_eff_acx", 1e-15, s.BetaEffAcx[i][j], 0)
			chk.Float64(tst, "taub_acx", 1e-15, s.TaubAcx[i][j], 0)

			// without basal stress the basal velocity equals the average
			chk.Float64(tst, "ux_b = ux_bar", 1e-12, s.UxB[i][j], s.UxBar[i][j])

			// the linear profile is an exact solution and is preserved
			want := uGl + du*float64(i)
			chk.Float64(tst, "linear profile", 1e-6*want, s.UxBar[i][j], want)
		}
	}
}

func Test_diva06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diva06. graceful degradation: ssa_iter_max=1 returns the relaxed iterate")

	// reference run with full relaxation
	prms := slabParams()
	prms.BetaMethod = "linear"
	prms.BetaConst = 100.0
	prms.SsaIterMax = 1
	prms.SsaIterRel = 1.0
	oFull, sFull, _, g := slabCase(tst, prms, 0)
	defer oFull.Clean()
	err := oFull.Solve(sFull)
	if err != nil {
		tst.Errorf("solve failed: %v\n", err)
		return
	}
	if sFull.SsaIterNow != 1 {
		tst.Errorf("ssa_iter_now = %d, want 1\n", sFull.SsaIterNow)
		return
	}
	if sFull.Converged {
		tst.Errorf("a single iteration from a cold start must not report convergence\n")
		return
	}

	// the relaxed run returns rel times the unrelaxed first iterate
	rel := 0.5
	prms.SsaIterRel = rel
	oRel, sRel, _, _ := slabCase(tst, prms, 0)
	defer oRel.Clean()
	err = oRel.Solve(sRel)
	if err != nil {
		tst.Errorf("solve failed: %v\n", err)
		return
	}
	for i := 1; i <= g.Nx-3; i++ {
		for j := 1; j <= g.Ny-2; j++ {
			chk.Float64(tst, "relaxed iterate", 1e-12*math.Max(math.Abs(sFull.UxBar[i][j]), 1e-12), sRel.UxBar[i][j], rel*sFull.UxBar[i][j])
		}
	}
}
