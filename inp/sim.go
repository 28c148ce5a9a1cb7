// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
)

// DivaParams holds all options and numerical parameters controlling one
// depth-integrated velocity solve. The enum-valued fields are validated
// against closed sets before any iteration is run.
type DivaParams struct {

	// momentum solver
	SsaSolverOpt string  `json:"ssa_solver_opt"` // linear solver backend; e.g. "umfpack", "dense"
	Boundaries   string  `json:"boundaries"`     // "zero-gradient", "periodic" or "infinite"
	SsaVelMax    float64 `json:"ssa_vel_max"`    // cap on solved velocity components [m/a]
	SsaIterMax   int     `json:"ssa_iter_max"`   // max number of fixed-point iterations
	SsaIterRel   float64 `json:"ssa_iter_rel"`   // relaxation factor in (0,1]
	SsaIterConv  float64 `json:"ssa_iter_conv"`  // L2-relative convergence tolerance
	SsaWriteLog  bool    `json:"ssa_write_log"`  // print the iteration table

	// basal drag
	NoSlip      bool    `json:"no_slip"`       // no-slip basal boundary condition
	BetaMethod  string  `json:"beta_method"`   // sliding law: "linear", "power" or "coulomb"
	BetaConst   float64 `json:"beta_const"`    // constant friction for uniform beds [Pa a/m]
	BetaQ       float64 `json:"beta_q"`        // sliding exponent q = 1/m_drag
	BetaU0      float64 `json:"beta_u0"`       // regularization speed u_0 [m/a]
	BetaGlScale string  `json:"beta_gl_scale"` // grounding-zone scaling: "none", "hgrnd" or "zstar"
	BetaGlStag  string  `json:"beta_gl_stag"`  // staggering policy: "simple", "upstream" or "subgrid"
	BetaGlF     float64 `json:"beta_gl_f"`     // fractional damping at the grounding line, in [0,1]
	HGrndLim    float64 `json:"h_grnd_lim"`    // thickness scale for the "hgrnd" scaling [m]
	BetaMin     float64 `json:"beta_min"`      // lower bound on beta over grounded ice [Pa a/m]
	BetaNeff    bool    `json:"beta_neff"`     // multiply beta by effective pressure
	NeffMethod  string  `json:"neff_method"`   // effective-pressure method: "ovb", "leguy" or "till"
	NeffP       float64 `json:"neff_p"`        // ocean-connectivity exponent p in [0,1]
	ZstarNorm   bool    `json:"zstar_norm"`    // normalize the Zstar scaling by H_ice
	NSmooth     float64 `json:"n_smooth"`      // Gaussian smoothing standard deviation in cells; 0 disables
	UBMin       float64 `json:"u_b_min"`       // floor on sliding speed [m/a]

	// rheology
	NGlen   float64 `json:"n_glen"`   // Glen flow-law exponent
	Eps0    float64 `json:"eps_0"`    // strain-rate floor [1/a]
	ViscMin float64 `json:"visc_min"` // viscosity floor [Pa a]
}

// Default returns parameters suitable for a cold start on a new domain
func Default() (p DivaParams) {
	p.SsaSolverOpt = "umfpack"
	p.Boundaries = "zero-gradient"
	p.SsaVelMax = 5000.0
	p.SsaIterMax = 100
	p.SsaIterRel = 0.7
	p.SsaIterConv = 1e-2
	p.BetaMethod = "linear"
	p.BetaConst = 1e3
	p.BetaQ = 1.0
	p.BetaU0 = 100.0
	p.BetaGlScale = "none"
	p.BetaGlStag = "subgrid"
	p.BetaGlF = 1.0
	p.HGrndLim = 50.0
	p.BetaMin = 10.0
	p.NeffMethod = "leguy"
	p.NeffP = 1.0
	p.NSmooth = 0.0
	p.UBMin = 1e-3
	p.NGlen = 3.0
	p.Eps0 = 1e-8
	p.ViscMin = 1e3
	return
}

// Read reads parameters from a JSON file
func Read(filepath string) (p DivaParams, err error) {
	p = Default()
	buf, err := os.ReadFile(filepath)
	if err != nil {
		err = chk.Err("cannot read parameters file %q:\n%v", filepath, err)
		return
	}
	err = json.Unmarshal(buf, &p)
	if err != nil {
		err = chk.Err("cannot unmarshal parameters file %q:\n%v", filepath, err)
	}
	return
}

// Validate checks enum values and parameter ranges. It must be called (and
// must succeed) before the first iteration of a solve.
func (o *DivaParams) Validate() (err error) {
	switch o.Boundaries {
	case "zero-gradient", "periodic", "infinite":
	default:
		return chk.Err("boundaries option %q is invalid", o.Boundaries)
	}
	switch o.BetaMethod {
	case "linear", "power", "coulomb":
	default:
		return chk.Err("beta_method %q is invalid", o.BetaMethod)
	}
	switch o.BetaGlScale {
	case "none", "hgrnd", "zstar":
	default:
		return chk.Err("beta_gl_scale %q is invalid", o.BetaGlScale)
	}
	switch o.BetaGlStag {
	case "simple", "upstream", "subgrid":
	default:
		return chk.Err("beta_gl_stag %q is invalid", o.BetaGlStag)
	}
	if o.HGrndLim <= 0 {
		return chk.Err("h_grnd_lim must be positive. %g is invalid", o.HGrndLim)
	}
	if o.BetaGlF < 0 || o.BetaGlF > 1 {
		return chk.Err("beta_gl_f must be within [0,1]. %g is invalid", o.BetaGlF)
	}
	if o.NeffP < 0 || o.NeffP > 1 {
		return chk.Err("neff_p must be within [0,1]. %g is invalid", o.NeffP)
	}
	if o.SsaIterRel <= 0 || o.SsaIterRel > 1 {
		return chk.Err("ssa_iter_rel must be within (0,1]. %g is invalid", o.SsaIterRel)
	}
	if o.SsaIterMax < 1 {
		return chk.Err("ssa_iter_max must be at least 1. %d is invalid", o.SsaIterMax)
	}
	if o.NGlen <= 0 {
		return chk.Err("n_glen must be positive. %g is invalid", o.NGlen)
	}
	return
}
