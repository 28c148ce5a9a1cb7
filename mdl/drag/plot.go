// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drag

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// Plot plots the basal stress tau_b = beta(|u_b|)*|u_b| of a sliding law over
// a range of sliding speeds
//  cBed     -- bed coefficient handed to the law
//  ub0, ubf -- speed range [m/a]; sampled logarithmically when useLog is true
//  args     -- plot arguments; e.g. "'b.-'"
func Plot(mdl Model, cBed, ub0, ubf float64, npts int, useLog bool, args, label string) (Ub, Taub []float64) {
	if useLog {
		Ub = utl.LinSpace(math.Log10(ub0), math.Log10(ubf), npts)
		for i := range Ub {
			Ub[i] = math.Pow(10, Ub[i])
		}
	} else {
		Ub = utl.LinSpace(ub0, ubf, npts)
	}
	Taub = make([]float64, npts)
	for i, ub := range Ub {
		Taub[i] = mdl.Beta(cBed, ub) * ub
	}
	plt.Plot(Ub, Taub, io.Sf("%s, label='%s', clip_on=0", args, label))
	return
}

// PlotEnd finalizes the plot
func PlotEnd(show bool) {
	plt.Gll("$|u_b|$ [m/a]", "$\\tau_b$ [Pa]", "")
	if show {
		plt.Show()
	}
}
