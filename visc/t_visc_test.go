// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visc

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/tgoelles/yelmo/grd"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func viscTestGrid(tst *testing.T, nx, ny, nz int) *grd.Grid {
	g, err := grd.NewUniform(nx, ny, nz, 1000, 1000)
	if err != nil {
		tst.Fatalf("cannot create grid: %v\n", err)
	}
	return g
}

func Test_visc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("visc01. stagnant ice: strain-rate floor controls viscosity")

	g := viscTestGrid(tst, 5, 5, 3)
	nGlen, eps0, viscMin := 3.0, 1e-8, 1e3
	o := New(g, nGlen, eps0, viscMin)

	uxBar := la.MatAlloc(5, 5)
	uyBar := la.MatAlloc(5, 5)
	duxdz := utl.Deep3alloc(5, 5, 3)
	duydz := utl.Deep3alloc(5, 5, 3)
	ATT := utl.Deep3alloc(5, 5, 3)
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			for k := 0; k < 3; k++ {
				ATT[i][j][k] = 1e-16
			}
		}
	}
	viscEff := utl.Deep3alloc(5, 5, 3)
	o.CalcViscEff(viscEff, uxBar, uyBar, duxdz, duydz, ATT)

	// eps_sq = eps_0² exactly, so the viscosity is uniform and analytic
	want := 0.5 * math.Pow(eps0*eps0, (1.0-nGlen)/(2.0*nGlen)) * math.Pow(1e-16, -1.0/nGlen)
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			for k := 0; k < 3; k++ {
				chk.Float64(tst, "uniform visc", 1e-6*want, viscEff[i][j][k], want)
				if viscEff[i][j][k] < viscMin {
					tst.Errorf("visc_eff below floor at (%d,%d,%d)\n", i, j, k)
					return
				}
			}
		}
	}
}

func Test_visc02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("visc02. lateral shear flow has the analytic effective viscosity")

	g := viscTestGrid(tst, 7, 7, 3)
	nGlen, eps0, viscMin := 3.0, 1e-8, 1e3
	o := New(g, nGlen, eps0, viscMin)

	// ux = c*y: the only nonzero strain component is dudy = c
	c := 1e-3 // 1/a
	uxBar := la.MatAlloc(7, 7)
	uyBar := la.MatAlloc(7, 7)
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			uxBar[i][j] = c * float64(j) * g.Dy
		}
	}
	duxdz := utl.Deep3alloc(7, 7, 3)
	duydz := utl.Deep3alloc(7, 7, 3)
	ATT := utl.Deep3alloc(7, 7, 3)
	att := 1e-16
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			for k := 0; k < 3; k++ {
				ATT[i][j][k] = att
			}
		}
	}
	viscEff := utl.Deep3alloc(7, 7, 3)
	o.CalcViscEff(viscEff, uxBar, uyBar, duxdz, duydz, ATT)

	epsSq := 0.25*c*c + eps0*eps0
	want := 0.5 * math.Pow(epsSq, (1.0-nGlen)/(2.0*nGlen)) * math.Pow(att, -1.0/nGlen)
	chk.Float64(tst, "interior visc", 1e-8*want, viscEff[3][3][1], want)
}

func Test_visc03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("visc03. depth integral and ice-free floor")

	g := viscTestGrid(tst, 5, 5, 11)
	o := New(g, 3.0, 1e-8, 1e3)

	viscEff := utl.Deep3alloc(5, 5, 11)
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			for k := 0; k < 11; k++ {
				viscEff[i][j][k] = 1e6
			}
		}
	}
	Hice := la.MatAlloc(5, 5)
	la.MatFill(Hice, 1000.0)
	Hice[2][2] = 0 // one ice-free node

	viscInt := la.MatAlloc(5, 5)
	o.CalcViscInt(viscInt, viscEff, Hice)
	chk.Float64(tst, "icy column", 1e-6, viscInt[1][1], 1e6*1000.0)
	// ice-free: raw depth integral, nonzero
	chk.Float64(tst, "ice-free column", 1e-9, viscInt[2][2], 1e6)
}

func Test_finteg01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("finteg01. F-integrals of a uniform column")

	g := viscTestGrid(tst, 4, 4, 101)
	viscMin := 1e3
	o := New(g, 3.0, 1e-8, viscMin)

	H, eta := 1000.0, 1e6
	viscEff := utl.Deep3alloc(4, 4, 101)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 101; k++ {
				viscEff[i][j][k] = eta
			}
		}
	}
	Hice := la.MatAlloc(4, 4)
	la.MatFill(Hice, H)
	Hice[3][3] = 0

	// F1 = (H/eta) * int (1-z) dz = H/(2 eta); F2 = H/(3 eta)
	F1 := la.MatAlloc(4, 4)
	F2 := la.MatAlloc(4, 4)
	o.CalcF(F1, viscEff, Hice, 1)
	o.CalcF(F2, viscEff, Hice, 2)
	chk.Float64(tst, "F1", 1e-6*H/eta, F1[1][1], H/(2*eta))
	chk.Float64(tst, "F2", 1e-4*H/eta, F2[1][1], H/(3*eta))

	// ice-free floor is evaluated with visc_min and is nonzero
	chk.Float64(tst, "F2 ice-free", 1e-4/viscMin, F2[3][3], 1.0/(3*viscMin))

	// cumulative F1 starts at zero and ends at the full integral
	F1cum := utl.Deep3alloc(4, 4, 101)
	o.CalcF1Cum(F1cum, viscEff, Hice)
	chk.Float64(tst, "F1cum base", 1e-15, F1cum[1][1][0], 0)
	chk.Float64(tst, "F1cum surface", 1e-12, F1cum[1][1][100], F1[1][1])
}
