// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diva

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/tgoelles/yelmo/grd"
)

// State holds every field of one velocity solve. The coordinator owns all
// fields exclusively for the lifetime of a Solve call; the outer model fills
// the static fields and the initial iterate before the call and reads the
// updated fields afterwards.
//
// All 2-D arrays have shape [nx][ny]; 3-D arrays [nx][ny][nz]. The node
// flavour of each field follows its name.
type State struct {

	// static fields, supplied by the outer model
	Hice     [][]float64   // aa. ice thickness [m]
	Hgrnd    [][]float64   // aa. overburden above floatation [m]
	FGrnd    [][]float64   // aa. grounded area fraction in [0,1]
	FGrndAcx [][]float64   // acx. grounded fraction on x-faces
	FGrndAcy [][]float64   // acy. grounded fraction on y-faces
	Zbed     [][]float64   // aa. bed elevation [m]
	Zsl      [][]float64   // aa. sea level [m]
	Hw       [][]float64   // aa. basal water column [m]
	CBed     [][]float64   // aa. bed roughness handed to the sliding law
	ATT      [][][]float64 // aa x nz. rate factor [1/(a Pa^n)]
	TaudAcx  [][]float64   // acx. driving stress [Pa]
	TaudAcy  [][]float64   // acy. driving stress [Pa]

	// velocity iterate (warm start in, solution out)
	UxBar [][]float64   // acx. depth-averaged velocity [m/a]
	UyBar [][]float64   // acy
	UxB   [][]float64   // acx. basal velocity [m/a]
	UyB   [][]float64   // acy
	Ux    [][][]float64 // acx x nz. 3-D horizontal velocity [m/a]
	Uy    [][][]float64 // acy x nz
	UxI   [][][]float64 // acx x nz. internal (deformational) velocity ux - ux_b
	UyI   [][][]float64 // acy x nz
	Duxdz [][][]float64 // acx x nz. vertical shear [1/a]
	Duydz [][][]float64 // acy x nz

	// stresses and viscosity
	TaubAcx    [][]float64   // acx. basal stress [Pa]
	TaubAcy    [][]float64   // acy
	ViscEff    [][][]float64 // aa x nz. effective viscosity [Pa a]
	ViscEffInt [][]float64   // aa. depth-integrated viscosity [Pa a m]

	// basal friction
	Beta       [][]float64 // aa. friction coefficient [Pa a/m]
	BetaAcx    [][]float64 // acx
	BetaAcy    [][]float64 // acy
	BetaEff    [][]float64 // aa. effective friction for DIVA
	BetaEffAcx [][]float64 // acx
	BetaEffAcy [][]float64 // acy
	BetaDiva   [][]float64 // aa. diagnostic friction; a copy of Beta
	NeffAa     [][]float64 // aa. effective pressure [bar] (diagnostic)

	// solver region and convergence tracking
	SsaMaskAcx [][]int     // acx. positive = solve; zero/negative = hold fixed
	SsaMaskAcy [][]int     // acy
	SsaErrAcx  [][]float64 // acx. per-face relative L1 error of the last iteration
	SsaErrAcy  [][]float64 // acy
	SsaIterNow int         // iterations performed by the last Solve call
	SsaResid   float64     // linear residual norm of the last momentum solve
	Converged  bool        // whether the last Solve met ssa_iter_conv
}

// NewState allocates all fields of a solve on the given grid. The bed
// roughness is initialised to cBed0 everywhere; every other field starts at
// zero (a cold start).
func NewState(g *grd.Grid, cBed0 float64) (s *State) {
	nx, ny, nz := g.Nx, g.Ny, g.Nz
	s = new(State)

	s.Hice = la.MatAlloc(nx, ny)
	s.Hgrnd = la.MatAlloc(nx, ny)
	s.FGrnd = la.MatAlloc(nx, ny)
	s.FGrndAcx = la.MatAlloc(nx, ny)
	s.FGrndAcy = la.MatAlloc(nx, ny)
	s.Zbed = la.MatAlloc(nx, ny)
	s.Zsl = la.MatAlloc(nx, ny)
	s.Hw = la.MatAlloc(nx, ny)
	s.CBed = la.MatAlloc(nx, ny)
	la.MatFill(s.CBed, cBed0)
	s.ATT = utl.Deep3alloc(nx, ny, nz)
	s.TaudAcx = la.MatAlloc(nx, ny)
	s.TaudAcy = la.MatAlloc(nx, ny)

	s.UxBar = la.MatAlloc(nx, ny)
	s.UyBar = la.MatAlloc(nx, ny)
	s.UxB = la.MatAlloc(nx, ny)
	s.UyB = la.MatAlloc(nx, ny)
	s.Ux = utl.Deep3alloc(nx, ny, nz)
	s.Uy = utl.Deep3alloc(nx, ny, nz)
	s.UxI = utl.Deep3alloc(nx, ny, nz)
	s.UyI = utl.Deep3alloc(nx, ny, nz)
	s.Duxdz = utl.Deep3alloc(nx, ny, nz)
	s.Duydz = utl.Deep3alloc(nx, ny, nz)

	s.TaubAcx = la.MatAlloc(nx, ny)
	s.TaubAcy = la.MatAlloc(nx, ny)
	s.ViscEff = utl.Deep3alloc(nx, ny, nz)
	s.ViscEffInt = la.MatAlloc(nx, ny)

	s.Beta = la.MatAlloc(nx, ny)
	s.BetaAcx = la.MatAlloc(nx, ny)
	s.BetaAcy = la.MatAlloc(nx, ny)
	s.BetaEff = la.MatAlloc(nx, ny)
	s.BetaEffAcx = la.MatAlloc(nx, ny)
	s.BetaEffAcy = la.MatAlloc(nx, ny)
	s.BetaDiva = la.MatAlloc(nx, ny)
	s.NeffAa = la.MatAlloc(nx, ny)

	s.SsaMaskAcx = utl.IntsAlloc(nx, ny)
	s.SsaMaskAcy = utl.IntsAlloc(nx, ny)
	s.SsaErrAcx = la.MatAlloc(nx, ny)
	s.SsaErrAcy = la.MatAlloc(nx, ny)
	return
}

// InitMask marks every interior face adjacent to ice as part of the solve
// region. Faces on the domain border stay fixed; they are filled by the
// boundary policy instead.
func (s *State) InitMask(g *grd.Grid) {
	nx, ny := g.Nx, g.Ny
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			s.SsaMaskAcx[i][j] = 0
			s.SsaMaskAcy[i][j] = 0
			if i >= 1 && i <= nx-3 && j >= 1 && j <= ny-2 {
				if s.Hice[i][j] > 0 || s.Hice[i+1][j] > 0 {
					s.SsaMaskAcx[i][j] = 1
				}
			}
			if j >= 1 && j <= ny-3 && i >= 1 && i <= nx-2 {
				if s.Hice[i][j] > 0 || s.Hice[i][j+1] > 0 {
					s.SsaMaskAcy[i][j] = 1
				}
			}
		}
	}
}
