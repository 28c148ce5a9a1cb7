// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drag

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Effective-pressure methods. All return N_eff in bar (1 bar = 1e5 Pa),
// floored at zero.
const (
	NeffOverburden = "ovb"   // full ice overburden, dry bed
	NeffLeguy      = "leguy" // Leguy et al. (2014) ocean-connectivity parameterization
	NeffTill       = "till"  // saturation-dependent till strength (Bueler & van Pelt 2015)
)

// NeffParams holds the parameters of the effective-pressure methods
type NeffParams struct {
	Method string  // one of the Neff* method names
	P      float64 // connectivity exponent in [0,1]; 0 = sealed bed, 1 = full ocean connection
	Delta  float64 // till: fraction of overburden at full saturation
	E0     float64 // till: reference void ratio
	Cc     float64 // till: compressibility coefficient
	HwMax  float64 // till: water column at full saturation [m]
}

// DefaultNeffParams returns defaults for the effective-pressure methods
func DefaultNeffParams() NeffParams {
	return NeffParams{
		Method: NeffLeguy,
		P:      1.0,
		Delta:  0.04,
		E0:     0.69,
		Cc:     0.12,
		HwMax:  2.0,
	}
}

// Validate checks the parameters
func (o *NeffParams) Validate() (err error) {
	switch o.Method {
	case NeffOverburden, NeffLeguy, NeffTill:
	default:
		return chk.Err("neff method %q is invalid", o.Method)
	}
	if o.P < 0 || o.P > 1 {
		return chk.Err("neff connectivity exponent p must be within [0,1]. %g is invalid", o.P)
	}
	if o.HwMax <= 0 {
		return chk.Err("neff H_w_max must be positive. %g is invalid", o.HwMax)
	}
	return
}

// Neff computes the effective pressure [bar] at one aa-node.
//
//	Hice      -- ice thickness [m]
//	zBed, zSl -- bed elevation and sea level [m]
//	Hw        -- basal water column [m]; used by the till method only
//	rhoIce, rhoSw, g -- physical constants
func (o *NeffParams) Neff(Hice, zBed, zSl, Hw, rhoIce, rhoSw, g float64) float64 {
	pIce := rhoIce * g * Hice
	var pW float64
	switch o.Method {
	case NeffOverburden:
		pW = 0
	case NeffLeguy:
		Hfloat := math.Max(0, (rhoSw/rhoIce)*(zSl-zBed))
		if Hice < Hfloat {
			pW = pIce
		} else if Hice > 0 {
			pW = pIce * (1 - math.Pow(1-math.Min(1, Hfloat/Hice), o.P))
		}
	case NeffTill:
		s := math.Min(1, Hw/o.HwMax)
		n := o.Delta * pIce * math.Pow(10, (o.E0/o.Cc)*(1-s))
		return 1e-5 * math.Min(pIce, n)
	}
	n := 1e-5 * (pIce - pW)
	if n < 0 {
		n = 0
	}
	return n
}
