// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grd

// TrapzZeta integrates a column of layer-centre samples over zeta in [0,1]
// using the trapezoid rule on the (possibly non-uniform) ZetaAa axis
func (g *Grid) TrapzZeta(vals []float64) (res float64) {
	for k := 0; k < g.Nz-1; k++ {
		res += 0.5 * (vals[k] + vals[k+1]) * (g.ZetaAa[k+1] - g.ZetaAa[k])
	}
	return
}

// TrapzZetaCum computes the partial integrals from the base up to each
// layer-centre sample; res[0] = 0 and res[nz-1] equals TrapzZeta(vals)
func (g *Grid) TrapzZetaCum(res, vals []float64) {
	res[0] = 0
	for k := 1; k < g.Nz; k++ {
		res[k] = res[k-1] + 0.5*(vals[k-1]+vals[k])*(g.ZetaAa[k]-g.ZetaAa[k-1])
	}
}
