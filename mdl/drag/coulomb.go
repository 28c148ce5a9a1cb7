// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drag

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Coulomb implements the regularized Coulomb sliding law:
//
//	beta := c_bed * ( |u_b| / (|u_b| + u_0) )^q / |u_b|
//
// For |u_b| >> u_0 the basal stress saturates at c_bed; for |u_b| << u_0 the
// law behaves like a power law with exponent q.
type Coulomb struct {
	q  float64 // sliding exponent q = 1/m
	u0 float64 // regularization speed [m/a]
}

// add model to factory
func init() {
	allocators["coulomb"] = func() Model { return new(Coulomb) }
}

// Init initialises model
func (o *Coulomb) Init(prms dbf.Params) (err error) {
	o.q = 0.2
	o.u0 = 100.0
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "q":
			o.q = p.V
		case "u0":
			o.u0 = p.V
		default:
			return chk.Err("coulomb: parameter named %q is incorrect", p.N)
		}
	}
	if o.u0 <= 0 {
		return chk.Err("coulomb: regularization speed u0 must be positive. %g is invalid", o.u0)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Coulomb) GetPrms(example bool) dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "q", V: 0.2},
		&dbf.P{N: "u0", V: 100},
	}
}

// Beta returns the friction coefficient
func (o Coulomb) Beta(cBed, uB float64) float64 {
	return cBed * math.Pow(uB/(uB+o.u0), o.q) / uB
}
