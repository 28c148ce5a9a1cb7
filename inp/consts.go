// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

// Constants holds process-wide physical constants. It is read-only after
// NewConstants and must be threaded explicitly through every component.
type Constants struct {
	G       float64 `json:"g"`        // gravitational acceleration [m/s²]
	RhoIce  float64 `json:"rho_ice"`  // density of ice [kg/m³]
	RhoSw   float64 `json:"rho_sw"`   // density of seawater [kg/m³]
	RhoW    float64 `json:"rho_w"`    // density of fresh water [kg/m³]
	T0      float64 `json:"T0"`       // melting point at standard pressure [K]
	LIce    float64 `json:"L_ice"`    // latent heat of fusion of ice [J/kg]
	SecYear float64 `json:"sec_year"` // seconds per year [s]
}

// NewConstants returns the default set of physical constants
func NewConstants() Constants {
	return Constants{
		G:       9.81,
		RhoIce:  910.0,
		RhoSw:   1028.0,
		RhoW:    1000.0,
		T0:      273.15,
		LIce:    333500.0,
		SecYear: 31536000.0,
	}
}
