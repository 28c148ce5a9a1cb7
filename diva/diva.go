// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diva implements the coordinator of the Depth-Integrated Viscosity
// Approximation (Goldberg 2011; Arthern et al. 2015; Lipscomb et al. 2019):
// a fixed-point iteration over the 3-D effective viscosity coupling the
// depth-integrated momentum solve with the basal drag and the reconstruction
// of vertical shear, basal velocity and the full 3-D horizontal velocity
package diva

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/tgoelles/yelmo/grd"
	"github.com/tgoelles/yelmo/inp"
	"github.com/tgoelles/yelmo/mdl/drag"
	"github.com/tgoelles/yelmo/ssa"
	"github.com/tgoelles/yelmo/visc"
)

// pruneTol is the per-face relative error below which a face is dropped from
// the solve region after the first iteration. Dropping is advisory: frozen
// faces stop updating but keep their values.
const pruneTol = 1e-5

// velTol floors the denominator of relative velocity errors [m/a]
const velTol = 1e-2

// Solver coordinates one velocity solve. It owns the component engines and
// all scratch storage; the model fields live in the State passed to Solve.
type Solver struct {

	// configuration
	g      *grd.Grid
	prms   inp.DivaParams
	cst    inp.Constants
	bounds grd.Bounds

	// component engines
	ve  *visc.Engine
	be  *drag.Engine
	sys *ssa.System

	// iteration log
	Log []IterInfo

	// scratch
	uxPrev, uyPrev     [][]float64
	f2, f2acx, f2acy   [][]float64
	f1cum              [][][]float64
	f1aa, f1ac         [][]float64
	solveAcx, solveAcy [][]bool
}

// New validates the configuration and returns a new DIVA coordinator. Any
// configuration error is fatal and reported before the first iteration.
func New(g *grd.Grid, prms inp.DivaParams, cst inp.Constants) (o *Solver, err error) {
	err = prms.Validate()
	if err != nil {
		return nil, chk.Err("diva configuration is invalid:\n%v", err)
	}
	o = &Solver{g: g, prms: prms, cst: cst, bounds: grd.Bounds(prms.Boundaries)}

	// viscosity engine
	o.ve = visc.New(g, prms.NGlen, prms.Eps0, prms.ViscMin)

	// drag engine
	dprms := drag.Params{
		Method:    prms.BetaMethod,
		LawPrms:   lawPrms(prms),
		UseNeff:   prms.BetaNeff,
		Neff:      neffPrms(prms),
		GlScale:   prms.BetaGlScale,
		GlStag:    prms.BetaGlStag,
		GlF:       prms.BetaGlF,
		HGrndLim:  prms.HGrndLim,
		BetaMin:   prms.BetaMin,
		ZstarNorm: prms.ZstarNorm,
		NSmooth:   prms.NSmooth,
		UBMin:     prms.UBMin,
		NoSlip:    prms.NoSlip,
	}
	o.be, err = drag.NewEngine(g, dprms, cst.RhoIce, cst.RhoSw, cst.G)
	if err != nil {
		return nil, chk.Err("diva configuration is invalid:\n%v", err)
	}

	// momentum system
	o.sys, err = ssa.NewSystem(g, o.bounds, prms.SsaSolverOpt, prms.SsaVelMax, prms.SsaWriteLog)
	if err != nil {
		return nil, chk.Err("diva configuration is invalid:\n%v", err)
	}

	// scratch
	nx, ny := g.Nx, g.Ny
	o.uxPrev = la.MatAlloc(nx, ny)
	o.uyPrev = la.MatAlloc(nx, ny)
	o.f2 = la.MatAlloc(nx, ny)
	o.f2acx = la.MatAlloc(nx, ny)
	o.f2acy = la.MatAlloc(nx, ny)
	o.f1cum = utl.Deep3alloc(nx, ny, g.Nz)
	o.f1aa = la.MatAlloc(nx, ny)
	o.f1ac = la.MatAlloc(nx, ny)
	o.solveAcx = make([][]bool, nx)
	o.solveAcy = make([][]bool, nx)
	for i := 0; i < nx; i++ {
		o.solveAcx[i] = make([]bool, ny)
		o.solveAcy[i] = make([]bool, ny)
	}
	return
}

// Clean releases solver resources
func (o *Solver) Clean() {
	o.sys.Clean()
}

// lawPrms builds the sliding-law parameter set from the input block
func lawPrms(p inp.DivaParams) dbf.Params {
	switch p.BetaMethod {
	case "power":
		return []*dbf.P{&dbf.P{N: "q", V: p.BetaQ}}
	case "coulomb":
		return []*dbf.P{
			&dbf.P{N: "q", V: p.BetaQ},
			&dbf.P{N: "u0", V: p.BetaU0},
		}
	}
	return nil
}

// neffPrms builds the effective-pressure parameter set from the input block
func neffPrms(p inp.DivaParams) drag.NeffParams {
	n := drag.DefaultNeffParams()
	if p.NeffMethod != "" {
		n.Method = p.NeffMethod
	}
	n.P = p.NeffP
	return n
}

// Solve runs the fixed-point iteration until the L2-relative velocity change
// drops below ssa_iter_conv or ssa_iter_max is reached. Non-convergence is
// not fatal: the latest iterate is kept and reported through State.Converged.
func (o *Solver) Solve(s *State) (err error) {
	g := o.g
	nx, ny := g.Nx, g.Ny
	o.Log = o.Log[:0]
	s.Converged = false

	if o.prms.SsaWriteLog {
		io.Pf("%4s%14s%14s%10s\n", "it", "resid", "conv", "nsolved")
	}

	it := 0
	for it = 1; it <= o.prms.SsaIterMax; it++ {

		// save the previous iterate
		la.MatCopy(o.uxPrev, 1, s.UxBar)
		la.MatCopy(o.uyPrev, 1, s.UyBar)

		// vertical shear from the previous basal stress and viscosity
		o.calcShear(s)

		// effective viscosity, depth integral and F2
		o.ve.CalcViscEff(s.ViscEff, s.UxBar, s.UyBar, s.Duxdz, s.Duydz, s.ATT)
		o.ve.CalcViscInt(s.ViscEffInt, s.ViscEff, s.Hice)
		o.ve.CalcF(o.f2, s.ViscEff, s.Hice, 2)
		g.StagAaAcxIce(o.f2acx, o.f2, s.Hice)
		g.StagAaAcyIce(o.f2acy, o.f2, s.Hice)

		// basal friction and effective friction
		o.be.CalcBeta(s.Beta, s.CBed, s.UxB, s.UyB, s.Hice, s.Hgrnd, s.FGrnd, s.Zbed, s.Zsl, s.Hw)
		la.MatCopy(s.NeffAa, 1, o.be.NeffAa)
		o.be.Stag(s.BetaAcx, s.BetaAcy, s.Beta, s.FGrnd, s.FGrndAcx, s.FGrndAcy)
		o.be.CalcBetaEff(s.BetaEff, s.Beta, o.f2)
		o.be.CalcBetaEffAc(s.BetaEffAcx, s.BetaEffAcy, s.BetaAcx, s.BetaAcy, o.f2acx, o.f2acy)

		// drop converged faces from the solve region
		if it > 1 {
			o.prune(s)
		}
		nsolved := o.buildSolveFlags(s)

		// momentum solve
		s.SsaResid, err = o.sys.Solve(s.UxBar, s.UyBar, s.ViscEffInt, s.BetaEffAcx, s.BetaEffAcy,
			s.TaudAcx, s.TaudAcy, o.solveAcx, o.solveAcy)
		if err != nil {
			return chk.Err("momentum solve failed at iteration %d:\n%v", it, err)
		}

		// relaxation towards the previous iterate
		rel := o.prms.SsaIterRel
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				if o.solveAcx[i][j] {
					s.UxBar[i][j] = rel*s.UxBar[i][j] + (1.0-rel)*o.uxPrev[i][j]
				}
				if o.solveAcy[i][j] {
					s.UyBar[i][j] = rel*s.UyBar[i][j] + (1.0-rel)*o.uyPrev[i][j]
				}
			}
		}
		g.ApplyAcx(o.bounds, s.UxBar)
		g.ApplyAcy(o.bounds, s.UyBar)

		// convergence measure over the solve region, in a fixed order
		conv := o.calcErrors(s)

		// basal stress and basal velocity
		o.calcBasal(s)

		o.Log = append(o.Log, IterInfo{It: it, Resid: s.SsaResid, Conv: conv, NSolved: nsolved})
		if o.prms.SsaWriteLog {
			io.Pf("%4d%14.6e%14.6e%10d\n", it, s.SsaResid, conv, nsolved)
		}

		if conv < o.prms.SsaIterConv {
			s.Converged = true
			break
		}
	}
	if it > o.prms.SsaIterMax {
		it = o.prms.SsaIterMax
	}
	s.SsaIterNow = it

	if !s.Converged && o.prms.SsaWriteLog {
		io.Pfred("diva: no convergence after %d iterations; keeping the latest iterate\n", s.SsaIterNow)
	}
	if o.prms.SsaWriteLog {
		o.printSummary()
	}

	// 3-D reconstruction and diagnostics
	o.reconstruct(s)
	o.be.DiagnoseBetaDiva(s.BetaDiva, s.Beta)
	return
}

// calcShear updates the vertical-shear profile from the basal stress:
//
//	duxdz(zeta) = taub_acx/visc_ac * (1 - zeta)
//
// with the viscosity averaged from aa-columns onto the face, one-sided at
// ice margins. The (1-zeta) factor enforces the no-shear surface boundary.
func (o *Solver) calcShear(s *State) {
	g := o.g
	nx, ny := g.Nx, g.Ny
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < g.Nz; k++ {
				fac := 1.0 - g.ZetaAa[k]
				vx := o.viscFaceX(s, i, j, k)
				s.Duxdz[i][j][k] = s.TaubAcx[i][j] / vx * fac
				vy := o.viscFaceY(s, i, j, k)
				s.Duydz[i][j][k] = s.TaubAcy[i][j] / vy * fac
			}
		}
	}
}

// viscFaceX returns the effective viscosity on acx(i,j) at layer k,
// one-sided at ice margins and floored at visc_min
func (o *Solver) viscFaceX(s *State, i, j, k int) float64 {
	g := o.g
	v := s.ViscEff[i][j][k]
	if i < g.Nx-1 {
		h0, h1 := s.Hice[i][j], s.Hice[i+1][j]
		switch {
		case h0 > 0 && h1 > 0:
			v = 0.5 * (s.ViscEff[i][j][k] + s.ViscEff[i+1][j][k])
		case h1 > 0:
			v = s.ViscEff[i+1][j][k]
		case h0 > 0:
			v = s.ViscEff[i][j][k]
		default:
			v = 0.5 * (s.ViscEff[i][j][k] + s.ViscEff[i+1][j][k])
		}
	}
	return math.Max(v, o.prms.ViscMin)
}

// viscFaceY returns the effective viscosity on acy(i,j) at layer k
func (o *Solver) viscFaceY(s *State, i, j, k int) float64 {
	g := o.g
	v := s.ViscEff[i][j][k]
	if j < g.Ny-1 {
		h0, h1 := s.Hice[i][j], s.Hice[i][j+1]
		switch {
		case h0 > 0 && h1 > 0:
			v = 0.5 * (s.ViscEff[i][j][k] + s.ViscEff[i][j+1][k])
		case h1 > 0:
			v = s.ViscEff[i][j+1][k]
		case h0 > 0:
			v = s.ViscEff[i][j][k]
		default:
			v = 0.5 * (s.ViscEff[i][j][k] + s.ViscEff[i][j+1][k])
		}
	}
	return math.Max(v, o.prms.ViscMin)
}

// prune drops faces whose relative error fell below pruneTol from the solve
// region by marking the mask negative; their values stay fixed from here on
func (o *Solver) prune(s *State) {
	for i := 0; i < o.g.Nx; i++ {
		for j := 0; j < o.g.Ny; j++ {
			if s.SsaMaskAcx[i][j] > 0 && math.Abs(s.SsaErrAcx[i][j]) < pruneTol {
				s.SsaMaskAcx[i][j] = -1
			}
			if s.SsaMaskAcy[i][j] > 0 && math.Abs(s.SsaErrAcy[i][j]) < pruneTol {
				s.SsaMaskAcy[i][j] = -1
			}
		}
	}
}

// buildSolveFlags translates the masks into the per-face solve flags and
// zeroes velocities on fully ice-free faces
func (o *Solver) buildSolveFlags(s *State) (nsolved int) {
	for i := 0; i < o.g.Nx; i++ {
		for j := 0; j < o.g.Ny; j++ {
			o.solveAcx[i][j] = s.SsaMaskAcx[i][j] > 0
			o.solveAcy[i][j] = s.SsaMaskAcy[i][j] > 0
			if o.solveAcx[i][j] {
				nsolved++
			}
			if o.solveAcy[i][j] {
				nsolved++
			}
			iceX := s.Hice[i][j] > 0 || (i < o.g.Nx-1 && s.Hice[i+1][j] > 0)
			if !iceX {
				s.UxBar[i][j] = 0
			}
			iceY := s.Hice[i][j] > 0 || (j < o.g.Ny-1 && s.Hice[i][j+1] > 0)
			if !iceY {
				s.UyBar[i][j] = 0
			}
		}
	}
	return
}

// calcErrors computes the L2-relative convergence measure over the solve
// region and records the per-face relative L1 error. Reductions run in a
// fixed order so the iteration is bit-reproducible.
func (o *Solver) calcErrors(s *State) (conv float64) {
	var du2, u2 float64
	for i := 0; i < o.g.Nx; i++ {
		for j := 0; j < o.g.Ny; j++ {
			if o.solveAcx[i][j] {
				d := s.UxBar[i][j] - o.uxPrev[i][j]
				du2 += d * d
				u2 += s.UxBar[i][j] * s.UxBar[i][j]
				s.SsaErrAcx[i][j] = math.Abs(d) / math.Max(math.Abs(s.UxBar[i][j]), velTol)
			}
			if o.solveAcy[i][j] {
				d := s.UyBar[i][j] - o.uyPrev[i][j]
				du2 += d * d
				u2 += s.UyBar[i][j] * s.UyBar[i][j]
				s.SsaErrAcy[i][j] = math.Abs(d) / math.Max(math.Abs(s.UyBar[i][j]), velTol)
			}
		}
	}
	if u2 == 0 {
		return 0
	}
	return math.Sqrt(du2) / math.Sqrt(u2)
}

// calcBasal updates the basal stress and basal velocity from the new
// depth-averaged velocity:
//
//	taub = beta_eff * u_bar
//	u_b  = u_bar - taub*F2
//
// Under no-slip, beta_eff = 1/F2 on each face and u_b vanishes identically.
func (o *Solver) calcBasal(s *State) {
	for i := 0; i < o.g.Nx; i++ {
		for j := 0; j < o.g.Ny; j++ {
			s.TaubAcx[i][j] = s.BetaEffAcx[i][j] * s.UxBar[i][j]
			s.TaubAcy[i][j] = s.BetaEffAcy[i][j] * s.UyBar[i][j]
			s.UxB[i][j] = s.UxBar[i][j] - s.TaubAcx[i][j]*o.f2acx[i][j]
			s.UyB[i][j] = s.UyBar[i][j] - s.TaubAcy[i][j]*o.f2acy[i][j]
		}
	}
}

// reconstruct builds the 3-D horizontal velocity from the basal velocity and
// the cumulative F1 integrals:
//
//	ux(zeta_k) = ux_b + taub_acx * F1(zeta_k)
//
// staggered one-sidedly at ice margins, and derives the internal velocity
// ux_i = ux - ux_b. The bottom layer equals the basal velocity exactly.
func (o *Solver) reconstruct(s *State) {
	g := o.g
	nx, ny := g.Nx, g.Ny
	o.ve.CalcF1Cum(o.f1cum, s.ViscEff, s.Hice)
	for k := 0; k < g.Nz; k++ {

		// x-faces
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				o.f1aa[i][j] = o.f1cum[i][j][k]
			}
		}
		g.StagAaAcxIce(o.f1ac, o.f1aa, s.Hice)
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				s.Ux[i][j][k] = s.UxB[i][j] + s.TaubAcx[i][j]*o.f1ac[i][j]
				s.UxI[i][j][k] = s.Ux[i][j][k] - s.UxB[i][j]
			}
		}

		// y-faces
		g.StagAaAcyIce(o.f1ac, o.f1aa, s.Hice)
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				s.Uy[i][j][k] = s.UyB[i][j] + s.TaubAcy[i][j]*o.f1ac[i][j]
				s.UyI[i][j][k] = s.Uy[i][j][k] - s.UyB[i][j]
			}
		}
	}
}
