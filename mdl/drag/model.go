// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package drag implements basal friction: sliding-law models producing the
// scalar drag coefficient beta, the effective-pressure models scaling it, and
// the engine that assembles, smooths and staggers the beta fields
package drag

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines the interface for sliding laws. Beta returns the friction
// coefficient [Pa a/m] at one aa-node given the bed coefficient cBed and the
// sliding speed uB [m/a]; uB is floored by the caller and strictly positive.
type Model interface {
	Init(prms dbf.Params) error      // Init initialises this model
	GetPrms(example bool) dbf.Params // gets (an example) of parameters
	Beta(cBed, uB float64) float64   // Beta returns the friction coefficient
}

// New returns a new sliding-law model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'drag' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}
