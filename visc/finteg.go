// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visc

import "math"

// CalcF computes the DIVA coupling integral with exponent n:
//
//	F_n = int_0^1 (H_ice/visc_eff) * (1-zeta)^n dzeta
//
// per aa-column via trapezoid. At ice-free columns H/visc_eff is replaced
// by 1/visc_min — H=0 would annihilate the integral, so this floor keeps
// F_n positive and the downstream effective friction finite.
func (o *Engine) CalcF(F [][]float64, viscEff [][][]float64, Hice [][]float64, n int) {
	g := o.g
	vals := make([]float64, g.Nz)
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			H := Hice[i][j]
			if H > 0 {
				for k := 0; k < g.Nz; k++ {
					vals[k] = H / viscEff[i][j][k] * math.Pow(1.0-g.ZetaAa[k], float64(n))
				}
			} else {
				for k := 0; k < g.Nz; k++ {
					vals[k] = 1.0 / o.viscMin * math.Pow(1.0-g.ZetaAa[k], float64(n))
				}
			}
			F[i][j] = g.TrapzZeta(vals)
		}
	}
}

// CalcF1Cum computes the partial integrals of the F1 integrand from the base
// up to each layer centre:
//
//	F1(zeta_k) = int_0^zeta_k (H_ice/visc_eff) * (1-zeta') dzeta'
//
// used to reconstruct the 3-D horizontal velocity. F1cum[i][j][0] is zero,
// so the reconstructed velocity at the base equals the basal velocity.
func (o *Engine) CalcF1Cum(F1cum [][][]float64, viscEff [][][]float64, Hice [][]float64) {
	g := o.g
	vals := make([]float64, g.Nz)
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			H := Hice[i][j]
			if H > 0 {
				for k := 0; k < g.Nz; k++ {
					vals[k] = H / viscEff[i][j][k] * (1.0 - g.ZetaAa[k])
				}
			} else {
				for k := 0; k < g.Nz; k++ {
					vals[k] = 1.0 / o.viscMin * (1.0 - g.ZetaAa[k])
				}
			}
			g.TrapzZetaCum(F1cum[i][j], vals)
		}
	}
}
