// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. default parameters are valid")

	p := Default()
	err := p.Validate()
	if err != nil {
		tst.Errorf("default parameters failed validation: %v\n", err)
		return
	}
	chk.Float64(tst, "ssa_iter_rel", 1e-15, p.SsaIterRel, 0.7)
	chk.Float64(tst, "eps_0", 1e-23, p.Eps0, 1e-8)
	chk.Float64(tst, "visc_min", 1e-12, p.ViscMin, 1e3)
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. invalid configurations are fatal")

	for _, tc := range []struct {
		set  func(p *DivaParams)
		desc string
	}{
		{func(p *DivaParams) { p.HGrndLim = 0 }, "h_grnd_lim = 0"},
		{func(p *DivaParams) { p.HGrndLim = -10 }, "h_grnd_lim < 0"},
		{func(p *DivaParams) { p.BetaGlF = 1.5 }, "beta_gl_f > 1"},
		{func(p *DivaParams) { p.BetaGlF = -0.1 }, "beta_gl_f < 0"},
		{func(p *DivaParams) { p.BetaMethod = "plastic" }, "unknown beta_method"},
		{func(p *DivaParams) { p.BetaGlStag = "fancy" }, "unknown beta_gl_stag"},
		{func(p *DivaParams) { p.Boundaries = "open" }, "unknown boundaries"},
		{func(p *DivaParams) { p.SsaIterRel = 0 }, "ssa_iter_rel = 0"},
		{func(p *DivaParams) { p.SsaIterRel = 1.2 }, "ssa_iter_rel > 1"},
	} {
		p := Default()
		tc.set(&p)
		if err := p.Validate(); err == nil {
			tst.Errorf("expected validation error for %s\n", tc.desc)
			return
		}
	}
}

func Test_consts01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("consts01. physical constants")

	c := NewConstants()
	chk.Float64(tst, "rho_sw/rho_ice", 1e-12, c.RhoSw/c.RhoIce, 1028.0/910.0)
	chk.Float64(tst, "sec_year", 1e-12, c.SecYear, 31536000.0)
}
