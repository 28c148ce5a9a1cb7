// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drag

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"

	"github.com/tgoelles/yelmo/grd"
)

// Staggering policies for beta at grounding-line faces
const (
	StagSimple   = "simple"   // arithmetic mean of the two adjacent aa-nodes
	StagUpstream = "upstream" // grounded neighbour wins; fully floating face is zero
	StagSubgrid  = "subgrid"  // blend by the grounded area fraction of the face
)

// Grounding-zone scalings of beta
const (
	ScaleNone  = "none"
	ScaleHgrnd = "hgrnd" // beta *= min(H_grnd, H_grnd_lim)/H_grnd_lim
	ScaleZstar = "zstar" // beta *= max(0, H_ice - H_float) [/ H_ice]
)

// Params configures the beta engine
type Params struct {
	Method    string     // sliding law name; see the 'drag' model database
	LawPrms   dbf.Params // parameters handed to the sliding law
	UseNeff   bool       // multiply beta by effective pressure
	Neff      NeffParams // effective-pressure method
	GlScale   string     // grounding-zone scaling of beta
	GlStag    string     // staggering policy at grounding-line faces
	GlF       float64    // fractional damping next to floating cells, in [0,1]
	HGrndLim  float64    // thickness scale of the "hgrnd" scaling [m]
	BetaMin   float64    // floor on beta over grounded ice [Pa a/m]
	ZstarNorm bool       // normalize the Zstar scaling by H_ice
	NSmooth   float64    // Gaussian smoothing standard deviation in cells; 0 disables
	UBMin     float64    // floor on the sliding speed [m/a]
	NoSlip    bool       // no-slip basal boundary condition
}

// Engine computes the basal friction fields for one velocity solve. It owns
// only scratch storage; all model fields belong to the caller.
type Engine struct {

	// configuration
	prms  Params
	g     *grd.Grid
	model Model

	// physical constants
	rhoIce, rhoSw, grav float64

	// scratch
	NeffAa   [][]float64 // [nx][ny] effective pressure [bar], kept for diagnostics
	uB       [][]float64 // [nx][ny] sliding speed on aa-nodes
	grounded [][]bool    // [nx][ny] grounded-and-icy mask for smoothing
}

// NewEngine validates the configuration and returns a new beta engine
func NewEngine(g *grd.Grid, prms Params, rhoIce, rhoSw, grav float64) (o *Engine, err error) {
	switch prms.GlStag {
	case StagSimple, StagUpstream, StagSubgrid:
	default:
		return nil, chk.Err("beta staggering policy %q is invalid", prms.GlStag)
	}
	switch prms.GlScale {
	case ScaleNone, ScaleHgrnd, ScaleZstar:
	default:
		return nil, chk.Err("beta grounding-zone scaling %q is invalid", prms.GlScale)
	}
	if prms.HGrndLim <= 0 {
		return nil, chk.Err("H_grnd_lim must be positive. %g is invalid", prms.HGrndLim)
	}
	if prms.GlF < 0 || prms.GlF > 1 {
		return nil, chk.Err("beta_gl_f must be within [0,1]. %g is invalid", prms.GlF)
	}
	if prms.UBMin <= 0 {
		return nil, chk.Err("u_b_min must be positive. %g is invalid", prms.UBMin)
	}
	err = prms.Neff.Validate()
	if err != nil {
		return
	}
	o = &Engine{prms: prms, g: g, rhoIce: rhoIce, rhoSw: rhoSw, grav: grav}
	o.model, err = New(prms.Method)
	if err != nil {
		return nil, err
	}
	err = o.model.Init(prms.LawPrms)
	if err != nil {
		return nil, err
	}
	o.NeffAa = la.MatAlloc(g.Nx, g.Ny)
	o.uB = la.MatAlloc(g.Nx, g.Ny)
	o.grounded = make([][]bool, g.Nx)
	for i := 0; i < g.Nx; i++ {
		o.grounded[i] = make([]bool, g.Ny)
	}
	return
}

// CalcBeta computes beta on aa-nodes: sliding law, effective pressure,
// grounding-zone scalings, floors and smoothing, in that order.
func (o *Engine) CalcBeta(beta, cBed, uxB, uyB, Hice, Hgrnd, fGrnd, zBed, zSl, Hw [][]float64) {
	nx, ny := o.g.Nx, o.g.Ny

	// sliding speed on aa-nodes from neighbouring faces, with floor
	for i := 0; i < nx; i++ {
		im1 := imax(i-1, 0)
		for j := 0; j < ny; j++ {
			jm1 := imax(j-1, 0)
			ux := 0.5 * (uxB[im1][j] + uxB[i][j])
			uy := 0.5 * (uyB[i][jm1] + uyB[i][j])
			o.uB[i][j] = math.Max(o.prms.UBMin, math.Sqrt(ux*ux+uy*uy))
		}
	}

	// sliding law and effective pressure
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			o.NeffAa[i][j] = o.prms.Neff.Neff(Hice[i][j], zBed[i][j], zSl[i][j], Hw[i][j], o.rhoIce, o.rhoSw, o.grav)
			beta[i][j] = o.model.Beta(cBed[i][j], o.uB[i][j])
			if o.prms.UseNeff {
				beta[i][j] *= o.NeffAa[i][j]
			}
		}
	}

	// fractional damping next to fully floating cells
	if o.prms.GlF < 1 {
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				if o.nextToFloating(fGrnd, i, j) {
					beta[i][j] *= o.prms.GlF
				}
			}
		}
	}

	// grounding-zone scaling
	switch o.prms.GlScale {
	case ScaleHgrnd:
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				beta[i][j] *= math.Min(Hgrnd[i][j], o.prms.HGrndLim) / o.prms.HGrndLim
			}
		}
	case ScaleZstar:
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				var fScale float64
				if zBed[i][j] >= zSl[i][j] {
					fScale = Hice[i][j]
				} else {
					fScale = math.Max(0, Hice[i][j]-(zSl[i][j]-zBed[i][j])*o.rhoSw/o.rhoIce)
				}
				if o.prms.ZstarNorm && Hice[i][j] > 0 {
					fScale /= Hice[i][j]
				}
				beta[i][j] *= fScale
			}
		}
	}

	// floors: beta >= beta_min wherever grounded, zero wherever fully floating
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if fGrnd[i][j] > 0 {
				beta[i][j] = math.Max(beta[i][j], o.prms.BetaMin)
			} else {
				beta[i][j] = 0
			}
			o.grounded[i][j] = fGrnd[i][j] > 0 && Hice[i][j] > 0
		}
	}

	// smoothing over grounded cells only
	if o.prms.NSmooth > 0 {
		o.g.SmoothGauss(beta, o.grounded, o.prms.NSmooth*o.g.Dx)
	}
}

// Stag staggers beta from aa-nodes to acx/acy faces under the configured
// grounding-line policy
func (o *Engine) Stag(betaAcx, betaAcy, beta, fGrnd, fGrndAcx, fGrndAcy [][]float64) {
	nx, ny := o.g.Nx, o.g.Ny
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if i < nx-1 {
				betaAcx[i][j] = o.stagFace(beta[i][j], beta[i+1][j], fGrnd[i][j], fGrnd[i+1][j], fGrndAcx[i][j])
			} else {
				betaAcx[i][j] = beta[i][j]
			}
			if j < ny-1 {
				betaAcy[i][j] = o.stagFace(beta[i][j], beta[i][j+1], fGrnd[i][j], fGrnd[i][j+1], fGrndAcy[i][j])
			} else {
				betaAcy[i][j] = beta[i][j]
			}
		}
	}
}

// stagFace staggers one face given the two adjacent aa-values and grounded
// fractions
func (o *Engine) stagFace(b0, b1, f0, f1, fAc float64) float64 {
	switch o.prms.GlStag {
	case StagSimple:
		return 0.5 * (b0 + b1)
	case StagUpstream:
		if f0 == 0 && f1 == 0 {
			return 0
		}
		if f0 > 0 && f1 == 0 {
			return b0
		}
		if f1 > 0 && f0 == 0 {
			return b1
		}
		return 0.5 * (b0 + b1)
	default: // StagSubgrid
		if f0 == 0 && f1 == 0 {
			return 0
		}
		if f0 > 0 && f1 > 0 {
			return 0.5 * (b0 + b1)
		}
		bGrnd, bFloat := b0, b1
		if f1 > 0 {
			bGrnd, bFloat = b1, b0
		}
		return fAc*bGrnd + (1-fAc)*bFloat
	}
}

// CalcBetaEff computes the effective friction for the depth-integrated solve
// (Goldberg 2011; Lipscomb et al. 2019) on aa-nodes:
//
//	no-slip:   beta_eff = 1 / F2
//	otherwise: beta_eff = beta / (1 + beta*F2)
func (o *Engine) CalcBetaEff(betaEff, beta, F2 [][]float64) {
	for i := 0; i < o.g.Nx; i++ {
		for j := 0; j < o.g.Ny; j++ {
			if o.prms.NoSlip {
				betaEff[i][j] = 1.0 / F2[i][j]
			} else {
				betaEff[i][j] = beta[i][j] / (1.0 + beta[i][j]*F2[i][j])
			}
		}
	}
}

// CalcBetaEffAc computes the effective friction directly on faces from the
// staggered beta and the staggered F2. Evaluating on faces keeps the DIVA
// basal-velocity identity u_b = u_bar - beta_eff*u_bar*F2 exact per face; in
// particular u_b vanishes identically under no-slip.
func (o *Engine) CalcBetaEffAc(betaEffAcx, betaEffAcy, betaAcx, betaAcy, F2acx, F2acy [][]float64) {
	for i := 0; i < o.g.Nx; i++ {
		for j := 0; j < o.g.Ny; j++ {
			if o.prms.NoSlip {
				betaEffAcx[i][j] = 1.0 / F2acx[i][j]
				betaEffAcy[i][j] = 1.0 / F2acy[i][j]
			} else {
				betaEffAcx[i][j] = betaAcx[i][j] / (1.0 + betaAcx[i][j]*F2acx[i][j])
				betaEffAcy[i][j] = betaAcy[i][j] / (1.0 + betaAcy[i][j]*F2acy[i][j])
			}
		}
	}
}

// DiagnoseBetaDiva fills the diagnostic friction field with a copy of beta.
// No inversion of the sliding law from the basal stress and velocity is
// performed.
func (o *Engine) DiagnoseBetaDiva(betaDiva, beta [][]float64) {
	la.MatCopy(betaDiva, 1, beta)
}

// nextToFloating reports whether the 4-neighbourhood of aa-node (i,j)
// contains a fully floating cell
func (o *Engine) nextToFloating(fGrnd [][]float64, i, j int) bool {
	if i > 0 && fGrnd[i-1][j] == 0 {
		return true
	}
	if i < o.g.Nx-1 && fGrnd[i+1][j] == 0 {
		return true
	}
	if j > 0 && fGrnd[i][j-1] == 0 {
		return true
	}
	if j < o.g.Ny-1 && fGrnd[i][j+1] == 0 {
		return true
	}
	return false
}

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
