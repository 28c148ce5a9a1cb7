// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions for verifying the velocity
// solvers
package ana

import "math"

// SiaSlab implements the shallow-ice solution of an infinite uniform slab on
// an inclined bed: plug-free laminar flow with Glen rheology
//
//	u(zeta) = u_b + (2A/(n+1)) * (rho*g*alpha)^n * H^(n+1) * (1 - (1-zeta)^(n+1))
type SiaSlab struct {
	H     float64 // ice thickness [m]
	A     float64 // rate factor [1/(a Pa^n)]
	N     float64 // Glen exponent
	Rho   float64 // ice density [kg/m³]
	Grav  float64 // gravitational acceleration [m/s²]
	Alpha float64 // surface slope [-]
	Ub    float64 // basal sliding velocity [m/a]
}

// Taud returns the driving stress rho*g*H*alpha [Pa]
func (o *SiaSlab) Taud() float64 {
	return o.Rho * o.Grav * o.H * o.Alpha
}

// Udef returns the surface deformational velocity increment [m/a]
func (o *SiaSlab) Udef() float64 {
	return 2.0 * o.A / (o.N + 1.0) * math.Pow(o.Rho*o.Grav*o.Alpha, o.N) * math.Pow(o.H, o.N+1.0)
}

// U returns the horizontal velocity at relative height zeta in [0,1]
func (o *SiaSlab) U(zeta float64) float64 {
	return o.Ub + o.Udef()*(1.0-math.Pow(1.0-zeta, o.N+1.0))
}

// Usurf returns the surface velocity
func (o *SiaSlab) Usurf() float64 {
	return o.Ub + o.Udef()
}

// Ubar returns the depth-averaged velocity
func (o *SiaSlab) Ubar() float64 {
	// int_0^1 (1-(1-z)^(n+1)) dz = (n+1)/(n+2)
	return o.Ub + o.Udef()*(o.N+1.0)/(o.N+2.0)
}

// ShelfU returns the velocity of an unconfined floating slab at distance x
// from the grounding line, where the strain rate is the uniform analytic
// spreading rate of Weertman (1957); the profile is linear in x
//
//	u(x) = u_gl + A * (rho*g*H/4 * (1 - rho/rho_sw))^n * x
func ShelfU(uGl, x, H, A, n, rho, rhoSw, grav float64) float64 {
	eps := A * math.Pow(0.25*rho*grav*H*(1.0-rho/rhoSw), n)
	return uGl + eps*x
}
