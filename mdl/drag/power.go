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

// Power implements the power sliding law with exponent q = 1/m:
//
//	beta := c_bed^q * |u_b|^(q-1)
//
// so that the basal stress is tau_b = beta*|u_b| = (c_bed*|u_b|)^q. q=1
// recovers the linear law.
type Power struct {
	q float64 // sliding exponent q = 1/m
}

// add model to factory
func init() {
	allocators["power"] = func() Model { return new(Power) }
}

// Init initialises model
func (o *Power) Init(prms dbf.Params) (err error) {
	o.q = 1.0
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "q":
			o.q = p.V
		default:
			return chk.Err("power: parameter named %q is incorrect", p.N)
		}
	}
	if o.q <= 0 || o.q > 1 {
		return chk.Err("power: exponent q must be within (0,1]. %g is invalid", o.q)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Power) GetPrms(example bool) dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "q", V: 1.0 / 3.0},
	}
}

// Beta returns the friction coefficient
func (o Power) Beta(cBed, uB float64) float64 {
	return math.Pow(cBed, o.q) * math.Pow(uB, o.q-1.0)
}
